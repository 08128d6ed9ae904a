// Package main captures the pointer inside a desktop window, or a whole
// display when fullscreen, and forwards the normalized events downstream.
package main

import (
	"context"
	"image"

	"github.com/edaniels/golog"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"gitlab.com/avarf/getenvs"
	"go.uber.org/multierr"
	"go.viam.com/utils"

	"github.com/edaniels/gopointer"
	"github.com/edaniels/gopointer/pkg/input"
	"github.com/edaniels/gopointer/pkg/platform"
	"github.com/edaniels/gopointer/pkg/source/window"
)

func main() {
	utils.ContextualMain(mainWithArgs, logger)
}

var logger = golog.Global().Named("window")

// Arguments for the command.
type Arguments struct {
	VNCAddress  string `flag:"vnc,usage=vnc server address"`
	VNCPassword string `flag:"vnc-password,usage=vnc server password"`
	Forward     string `flag:"forward,usage=websocket url to forward mouse events to"`
	Config      string `flag:"config,usage=yaml or toml tuning file"`
	Fullscreen  bool   `flag:"fullscreen,usage=capture a whole display"`
	Display     int    `flag:"display,usage=display to capture when fullscreen"`
}

func mainWithArgs(ctx context.Context, args []string, logger golog.Logger) (err error) {
	var argsParsed Arguments
	if err := utils.ParseFlags(args, &argsParsed); err != nil {
		return err
	}
	if argsParsed.VNCAddress == "" {
		argsParsed.VNCAddress = getenvs.GetEnvString("VNC_SERVER", "")
	}
	if argsParsed.VNCPassword == "" {
		argsParsed.VNCPassword = getenvs.GetEnvString("VNC_PASSWORD", "")
	}
	if argsParsed.Config == "" {
		argsParsed.Config = getenvs.GetEnvString("POINTER_CONFIG", "")
	}

	sessionConfig := gopointer.DefaultSessionConfig
	if argsParsed.Config != "" {
		tuning, err := gopointer.LoadTuning(argsParsed.Config)
		if err != nil {
			return err
		}
		sessionConfig = tuning.Apply(sessionConfig)
	}

	g := &game{ctx: ctx, surface: &input.RemoteSurface{}}
	if argsParsed.Fullscreen {
		display, err := platform.NewDisplaySurface(argsParsed.Display)
		if err != nil {
			return err
		}
		g.display = display
		ebiten.SetFullscreen(true)
	} else {
		ebiten.SetWindowSize(800, 600)
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	ebiten.SetWindowTitle("pointer capture")

	sink, closeSink, err := gopointer.OpenDownstream(ctx, gopointer.DownstreamConfig{
		VNCAddress:  argsParsed.VNCAddress,
		VNCPassword: argsParsed.VNCPassword,
		ForwardURL:  argsParsed.Forward,
	}, logger)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Combine(err, closeSink())
	}()

	sessionConfig.Surface = g.surface
	sessionConfig.Sink = sink
	sessionConfig.Logger = logger
	g.session, err = gopointer.NewSession(sessionConfig)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Combine(err, g.session.Close())
	}()

	if err := ebiten.RunGame(g); err != nil && err != ebiten.Termination {
		return err
	}
	return nil
}

// Sample.Pressed order.
var sampledButtons = [window.NumButtons]ebiten.MouseButton{
	ebiten.MouseButtonLeft,
	ebiten.MouseButtonMiddle,
	ebiten.MouseButtonRight,
	ebiten.MouseButton3,
	ebiten.MouseButton4,
}

type game struct {
	ctx     context.Context
	session *gopointer.Session
	display *platform.DisplaySurface
	surface *input.RemoteSurface
	poller  window.Poller
}

// Update samples the pointer once per tick. The surface is refreshed here
// too since the session reads it from its own goroutine.
func (g *game) Update() error {
	if g.ctx.Err() != nil || ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	var rect image.Rectangle
	if g.display != nil {
		rect = g.display.Rect()
	} else {
		x, y := ebiten.WindowPosition()
		w, h := ebiten.WindowSize()
		rect = image.Rect(x, y, x+w, y+h)
	}
	g.surface.Set(rect)

	x, y := ebiten.CursorPosition()
	sample := window.Sample{X: rect.Min.X + x, Y: rect.Min.Y + y}
	for i, b := range sampledButtons {
		sample.Pressed[i] = ebiten.IsMouseButtonPressed(b)
	}
	// ebiten reports scrolling up as positive
	sample.WheelX, sample.WheelY = ebiten.Wheel()
	sample.WheelY = -sample.WheelY

	for _, ev := range g.poller.Convert(sample) {
		if err := g.session.Dispatch(g.ctx, ev); err != nil {
			return err
		}
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	ebitenutil.DebugPrint(screen, "capturing pointer, esc to quit")
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

// Package main captures the pointer inside a terminal and forwards the
// normalized events downstream.
package main

import (
	"context"
	"image"

	"github.com/edaniels/golog"
	"github.com/gdamore/tcell/v2"
	"gitlab.com/avarf/getenvs"
	"go.uber.org/multierr"
	"go.viam.com/utils"

	"github.com/edaniels/gopointer"
	"github.com/edaniels/gopointer/pkg/input"
	"github.com/edaniels/gopointer/pkg/source/terminal"
)

func main() {
	utils.ContextualMain(mainWithArgs, logger)
}

var (
	defaultCellWidth  = 8
	defaultCellHeight = 16
	logger            = golog.Global().Named("term")
)

// Arguments for the command.
type Arguments struct {
	VNCAddress  string `flag:"vnc,usage=vnc server address"`
	VNCPassword string `flag:"vnc-password,usage=vnc server password"`
	Forward     string `flag:"forward,usage=websocket url to forward mouse events to"`
	Config      string `flag:"config,usage=yaml or toml tuning file"`
	CellWidth   int    `flag:"cell-width,usage=pixels per terminal column"`
	CellHeight  int    `flag:"cell-height,usage=pixels per terminal row"`
}

func mainWithArgs(ctx context.Context, args []string, logger golog.Logger) (err error) {
	var argsParsed Arguments
	if err := utils.ParseFlags(args, &argsParsed); err != nil {
		return err
	}
	if argsParsed.CellWidth <= 0 {
		argsParsed.CellWidth = defaultCellWidth
	}
	if argsParsed.CellHeight <= 0 {
		argsParsed.CellHeight = defaultCellHeight
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

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	// the terminal's own cells are the surface so positions map 1:1 onto it
	sessionConfig.Surface = input.SurfaceFunc(func() image.Rectangle {
		w, h := screen.Size()
		return image.Rect(0, 0, w*argsParsed.CellWidth, h*argsParsed.CellHeight)
	})
	sessionConfig.Sink = sink
	sessionConfig.Logger = logger
	session, err := gopointer.NewSession(sessionConfig)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Combine(err, session.Close())
	}()

	conv := &terminal.Converter{
		CellWidth:  argsParsed.CellWidth,
		CellHeight: argsParsed.CellHeight,
	}
	return terminal.Run(ctx, screen, conv, session, logger)
}

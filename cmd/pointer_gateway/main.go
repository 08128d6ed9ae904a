// Package main serves a pointer capture page and forwards the normalized
// events to a VNC server or a websocket.
package main

import (
	"context"

	"github.com/edaniels/golog"
	"gitlab.com/avarf/getenvs"
	"go.uber.org/multierr"
	"go.viam.com/utils"

	"github.com/edaniels/gopointer"
)

func main() {
	utils.ContextualMain(mainWithArgs, logger)
}

var (
	defaultPort = 5555
	logger      = golog.Global().Named("gateway")
)

// Arguments for the command.
type Arguments struct {
	Port        utils.NetPortFlag `flag:"0"`
	VNCAddress  string            `flag:"vnc,usage=vnc server address"`
	VNCPassword string            `flag:"vnc-password,usage=vnc server password"`
	Forward     string            `flag:"forward,usage=websocket url to forward mouse events to"`
	Config      string            `flag:"config,usage=yaml or toml tuning file"`
}

func mainWithArgs(ctx context.Context, args []string, logger golog.Logger) error {
	var argsParsed Arguments
	if err := utils.ParseFlags(args, &argsParsed); err != nil {
		return err
	}
	if argsParsed.Port == 0 {
		argsParsed.Port = utils.NetPortFlag(defaultPort)
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

	return runServer(
		ctx,
		int(argsParsed.Port),
		sessionConfig,
		gopointer.DownstreamConfig{
			VNCAddress:  argsParsed.VNCAddress,
			VNCPassword: argsParsed.VNCPassword,
			ForwardURL:  argsParsed.Forward,
		},
		logger,
	)
}

func runServer(
	ctx context.Context,
	port int,
	sessionConfig gopointer.SessionConfig,
	downstream gopointer.DownstreamConfig,
	logger golog.Logger,
) (err error) {
	sink, closeSink, err := gopointer.OpenDownstream(ctx, downstream, logger)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Combine(err, closeSink())
	}()

	sessionConfig.Sink = sink
	server, err := gopointer.NewInputServer(gopointer.InputServerConfig{
		Port:    port,
		Session: sessionConfig,
		Logger:  logger,
	})
	if err != nil {
		return err
	}
	if err := server.Start(); err != nil {
		return err
	}
	defer func() { err = multierr.Combine(err, server.Stop(context.Background())) }()

	<-ctx.Done()
	return nil
}

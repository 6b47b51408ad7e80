package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/nergy-se/agilerun/pkg/api/v1/config"
	"github.com/nergy-se/agilerun/pkg/app"
	"github.com/nergy-se/agilerun/pkg/controller"
	"github.com/nergy-se/agilerun/pkg/controller/boinc"
	"github.com/nergy-se/agilerun/pkg/controller/dummy"
	"github.com/nergy-se/agilerun/pkg/controller/relay"
	"github.com/nergy-se/agilerun/pkg/logging"
	"github.com/nergy-se/agilerun/pkg/modbusclient"
	"github.com/nergy-se/agilerun/pkg/octopus"
	"github.com/nergy-se/agilerun/pkg/version"
	"github.com/sirupsen/logrus"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGQUIT, syscall.SIGTERM)
	defer stop()
	err := Run(ctx)
	if err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}

func Run(ctx context.Context) error {
	config, err := config.Load(os.Args[1:])
	if err != nil {
		return err
	}
	if config.Mode == "" {
		config.Mode = "oneshot"
	}

	err = logging.Setup(config.LogLevel, config.LogFile, config.LogConsole)
	if err != nil {
		return err
	}
	logrus.Infof("starting agilerun %s", version.Read())

	err = config.Validate()
	if err != nil {
		return err
	}

	ctrl, closer, err := newController(config)
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer()
	}

	source := octopus.NewCached(octopus.New(config, nil), config.RatesTTL, config.ConsumptionTTL)
	return app.New(config, source).WithController(ctrl).Run(ctx)
}

func newController(c *config.Config) (controller.Controller, func() error, error) {
	switch c.Driver {
	case config.DriverBoinc:
		path, err := c.BoincPath(runtime.GOOS)
		if err != nil {
			if errors.Is(err, config.ErrUnknownPlatform) {
				logrus.Errorf("configuration error: %s", err)
			} else {
				return nil, nil, err
			}
		}
		logrus.Debugf("using boinc client at %s", path)
		return boinc.New(path), nil, nil
	case config.DriverRelay:
		client := modbusclient.Dial(c.RelayAddress, byte(c.RelaySlave))
		return relay.New(client, uint16(c.RelayCoil)), client.Close, nil
	case config.DriverDummy:
		return dummy.New(), nil, nil
	}
	return nil, nil, fmt.Errorf("unknown driver %q", c.Driver)
}

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nergy-se/agilerun/pkg/api/v1/config"
	"github.com/nergy-se/agilerun/pkg/app"
	"github.com/nergy-se/agilerun/pkg/logging"
	"github.com/nergy-se/agilerun/pkg/metrics"
	"github.com/nergy-se/agilerun/pkg/mqtt"
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
		config.Mode = "continuous"
	}

	err = logging.Setup(config.LogLevel, config.LogFile, config.LogConsole)
	if err != nil {
		return err
	}
	info := version.Read()
	logrus.Infof("starting agile-exporter %s", info)

	err = config.Validate()
	if err != nil {
		return err
	}
	err = config.ValidateMeter()
	if err != nil {
		return err
	}

	registry := metrics.New(info)
	srv, err := registry.Serve(config.MetricsAddress)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logrus.Errorf("error stopping metrics server: %s", err)
		}
	}()

	source := octopus.NewCached(octopus.New(config, nil), config.RatesTTL, config.ConsumptionTTL)
	a := app.New(config, source).WithPublisher(registry)

	if config.MQTTAddress != "" {
		broker, err := mqtt.Start(config.MQTTAddress, config.MQTTTopicPrefix)
		if err != nil {
			return err
		}
		defer broker.Close()
		a.WithPublisher(broker)
	}

	return a.Run(ctx)
}

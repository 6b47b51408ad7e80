package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nergy-se/agilerun/pkg/api/v1/config"
	"github.com/nergy-se/agilerun/pkg/controller"
	"github.com/nergy-se/agilerun/pkg/octopus"
	"github.com/nergy-se/agilerun/pkg/price"
	"github.com/nergy-se/agilerun/pkg/slot"
	"github.com/nergy-se/agilerun/pkg/state"
	"github.com/sirupsen/logrus"
)

type App struct {
	config      *config.Config
	source      octopus.Source
	controllers []controller.Controller
	publishers  []controller.Publisher
	now         func() time.Time
}

func New(config *config.Config, source octopus.Source) *App {
	return &App{
		config: config,
		source: source,
		now:    time.Now,
	}
}

func (a *App) WithController(c controller.Controller) *App {
	a.controllers = append(a.controllers, c)
	return a
}

func (a *App) WithPublisher(p controller.Publisher) *App {
	a.publishers = append(a.publishers, p)
	return a
}

// Run performs one cycle in oneshot mode. In continuous mode it runs a cycle
// immediately and then once per half-hour slot until ctx is done or the
// upstream API fails.
func (a *App) Run(ctx context.Context) error {
	if a.config.Mode != config.ModeContinuous {
		return a.RunOnce()
	}
	return a.controllerLoop(ctx)
}

func (a *App) controllerLoop(ctx context.Context) error {
	if err := a.cycle(); err != nil {
		return err
	}

	delay := nextDelay(a.now().UTC(), a.config.Settle)
	timer := time.NewTimer(delay)
	defer timer.Stop()
	logrus.Debug("scheduling next run in ", delay)
	for {
		select {
		case <-timer.C:
			if err := a.cycle(); err != nil {
				return err
			}
			delay = nextDelay(a.now().UTC(), a.config.Settle)
			timer.Reset(delay)
			logrus.Debug("scheduling next run in ", delay)
		case <-ctx.Done():
			return nil
		}
	}
}

// cycle runs once and only returns errors that should stop the loop.
func (a *App) cycle() error {
	err := a.RunOnce()
	if err == nil {
		return nil
	}
	var upstream *octopus.UpstreamError
	if errors.As(err, &upstream) {
		return err
	}
	logrus.Error(err)
	return nil
}

// RunOnce aligns the clock, fetches, locates the current price and applies it
// to every controller and publisher.
func (a *App) RunOnce() error {
	now := a.now().UTC()
	slotStart := slot.RoundDown(now)
	logrus.Debugf("The time is %s, rounded to %s", now.Format(time.RFC3339), slot.Format(slotStart))

	rates, err := a.source.FetchRates()
	if err != nil {
		return fmt.Errorf("unable to get rates: %w", err)
	}

	current := price.Locate(rates, slotStart)
	logrus.Debugf("Current price %.2f", current.IncVat)
	allow := controller.Allow(current.IncVat, a.config.PriceThreshold)

	var errs []error
	if len(a.controllers) > 0 {
		runtime := slot.RunWindow(now)
		if allow {
			logrus.Infof("Price %.2f less than threshold %.2f", current.IncVat, a.config.PriceThreshold)
		} else {
			logrus.Infof("Price %.2f is greater than threshold %.2f", current.IncVat, a.config.PriceThreshold)
		}
		logrus.Debugf("Time client will be run for: %s", runtime)

		for _, c := range a.controllers {
			if err := c.AllowCompute(allow, runtime); err != nil {
				errs = append(errs, err)
			}
		}
	}

	if len(a.publishers) > 0 {
		s := state.State{
			Slot:        slotStart,
			PriceIncVat: state.Pointer(current.IncVat),
			PriceExcVat: state.Pointer(current.ExcVat),
			PriceFound:  state.Pointer(current.Found()),
		}
		if len(a.controllers) > 0 {
			s.RunMode = state.Pointer(controller.RunMode(allow))
		}

		if a.config.MPAN != "" {
			records, err := a.source.FetchConsumption()
			if err != nil {
				return fmt.Errorf("unable to get consumption: %w", err)
			}
			if r, ok := yesterday(records); ok {
				logrus.Debugf("Located consumption: %s %.3f", slot.Format(time.Time(r.IntervalStart)), r.Consumption)
				s.ConsumptionYesterday = state.Pointer(r.Consumption)
			} else {
				logrus.Warn("no consumption records returned")
			}
		}

		for _, p := range a.publishers {
			if err := p.Publish(s); err != nil {
				errs = append(errs, err)
			}
		}
	}

	return errors.Join(errs...)
}

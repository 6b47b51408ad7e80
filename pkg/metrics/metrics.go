package metrics

import (
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/nergy-se/agilerun/pkg/state"
	"github.com/nergy-se/agilerun/pkg/version"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// Registry owns the exported gauges. Values are overwritten every cycle and
// never reset.
type Registry struct {
	registry             *prometheus.Registry
	priceIncVat          prometheus.Gauge
	priceExcVat          prometheus.Gauge
	consumptionYesterday prometheus.Gauge
}

func New(info version.Info) *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
		priceIncVat: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "current_electricity_price_inc_vat",
			Help: "Current Electricity price including VAT",
		}),
		priceExcVat: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "current_electricity_price_exc_vat",
			Help: "Current Electricity price excluding VAT",
		}),
		consumptionYesterday: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "electricity_consumption_yesterday",
			Help: "Yesterdays Energy Use.",
		}),
	}

	buildInfo := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "agilerun_build_info",
		Help: "Build information of the running binary.",
	}, []string{"commit", "time"})
	buildInfo.WithLabelValues(info.Commit, info.Time).Set(1)

	r.registry.MustRegister(
		r.priceIncVat,
		r.priceExcVat,
		r.consumptionYesterday,
		buildInfo,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

func (r *Registry) Publish(s state.State) error {
	if s.PriceIncVat != nil {
		r.priceIncVat.Set(*s.PriceIncVat)
	}
	if s.PriceExcVat != nil {
		r.priceExcVat.Set(*s.PriceExcVat)
	}
	if s.ConsumptionYesterday != nil {
		r.consumptionYesterday.Set(*s.ConsumptionYesterday)
	}
	return nil
}

func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Serve binds address and exposes /metrics on it in the background. A failed
// bind is returned.
func (r *Registry) Serve(address string) (*http.Server, error) {
	l, err := net.Listen("tcp", address)
	if err != nil {
		return nil, fmt.Errorf("error listening for metrics on %s: %w", address, err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", r.Handler())
	server := &http.Server{
		Addr:         l.Addr().String(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		logrus.Info("Serving metrics on " + server.Addr)
		if err := server.Serve(l); err != nil && err != http.ErrServerClosed {
			logrus.Errorf("metrics server: %s", err)
		}
	}()
	return server, nil
}

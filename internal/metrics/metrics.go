package metrics

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kbaines/pounce/internal/perr"
)

// Metrics bundles every collector on a private registry, so tests can make
// as many instances as they like without duplicate-registration panics.
type Metrics struct {
	registry *prometheus.Registry

	discoverySeconds  prometheus.Histogram
	discoveredTargets prometheus.Histogram
	modeActivations   *prometheus.CounterVec
	overlayDeltaOps   *prometheus.CounterVec
	overlayFrameSize  prometheus.Gauge
	hotkeyDispatches  prometheus.Counter
	ipcRequests       *prometheus.CounterVec

	logger *zap.Logger
	server *http.Server
}

// New builds the collector set.
func New(logger *zap.Logger) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		discoverySeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "pounce",
			Name:      "discovery_duration_seconds",
			Help:      "Time spent walking the accessibility tree per hint activation.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12),
		}),
		discoveredTargets: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "pounce",
			Name:      "discovered_targets",
			Help:      "Actionable elements found per hint activation.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		}),
		modeActivations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pounce",
			Name:      "mode_activations_total",
			Help:      "Mode activations by mode.",
		}, []string{"mode"}),
		overlayDeltaOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pounce",
			Name:      "overlay_delta_ops_total",
			Help:      "Overlay reconcile operations by kind.",
		}, []string{"op"}),
		overlayFrameSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "pounce",
			Name:      "overlay_last_delta_ops",
			Help:      "Size of the most recent overlay delta.",
		}),
		hotkeyDispatches: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pounce",
			Name:      "hotkey_dispatches_total",
			Help:      "Global hotkey presses dispatched.",
		}),
		ipcRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pounce",
			Name:      "ipc_requests_total",
			Help:      "IPC commands handled, by command and status.",
		}, []string{"command", "status"}),
		logger: logger,
	}
	m.registry.MustRegister(
		m.discoverySeconds,
		m.discoveredTargets,
		m.modeActivations,
		m.overlayDeltaOps,
		m.overlayFrameSize,
		m.hotkeyDispatches,
		m.ipcRequests,
	)
	return m
}

// ModeActivated implements mode.Stats.
func (m *Metrics) ModeActivated(mode string) {
	m.modeActivations.WithLabelValues(mode).Inc()
}

// DiscoveryObserved implements mode.Stats.
func (m *Metrics) DiscoveryObserved(d time.Duration, elements int) {
	m.discoverySeconds.Observe(d.Seconds())
	m.discoveredTargets.Observe(float64(elements))
}

// ObserveDelta implements overlay.Stats.
func (m *Metrics) ObserveDelta(add, update, remove int) {
	m.overlayDeltaOps.WithLabelValues("add").Add(float64(add))
	m.overlayDeltaOps.WithLabelValues("update").Add(float64(update))
	m.overlayDeltaOps.WithLabelValues("remove").Add(float64(remove))
	m.overlayFrameSize.Set(float64(add + update + remove))
}

// HotkeyDispatched counts one global hotkey press.
func (m *Metrics) HotkeyDispatched() {
	m.hotkeyDispatches.Inc()
}

// IPCRequest counts one handled IPC command.
func (m *Metrics) IPCRequest(command, status string) {
	m.ipcRequests.WithLabelValues(command, status).Inc()
}

// Registry exposes the underlying registry for tests.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Serve starts the /metrics endpoint on addr and blocks until ctx is
// cancelled or the listener fails.
func (m *Metrics) Serve(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return perr.Wrap(perr.CodeInternal, "metrics listen", err)
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
	m.server = &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errCh := make(chan error, 1)
	go func() { errCh <- m.server.Serve(ln) }()
	m.logger.Info("metrics endpoint listening", zap.String("addr", ln.Addr().String()))

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = m.server.Shutdown(shutdownCtx)
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return perr.Wrap(perr.CodeInternal, "metrics serve", err)
	}
}

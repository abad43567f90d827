package satcam

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts what the transmitter has done.  There is no server;
// the values are written to a node exporter textfile after each run.
type Metrics struct {
	registry *prometheus.Registry

	playbacks *prometheus.CounterVec // by kind and result
	samples   *prometheus.CounterVec // by kind
	blocks    *prometheus.CounterVec // by mode
	duration  *prometheus.GaugeVec   // seconds of audio in the last playback, by kind
}

func NewMetrics() *Metrics {
	var reg = prometheus.NewRegistry()
	var factory = promauto.With(reg)

	return &Metrics{
		registry: reg,
		playbacks: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "satcam_playbacks_total",
				Help: "Playbacks started, by kind and result",
			},
			[]string{"kind", "result"},
		),
		samples: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "satcam_samples_total",
				Help: "Audio samples generated, ramps included",
			},
			[]string{"kind"},
		),
		blocks: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "satcam_sstv_blocks_total",
				Help: "Picture blocks sent, by SSTV mode",
			},
			[]string{"mode"},
		),
		duration: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "satcam_last_playback_seconds",
				Help: "Length of the audio of the last playback",
			},
			[]string{"kind"},
		),
	}
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) observe(kind string, err error, samples uint64, sampleRate int) {
	if m == nil {
		return
	}

	m.playbacks.WithLabelValues(kind, resultLabel(err)).Inc()
	m.samples.WithLabelValues(kind).Add(float64(samples))

	var d = time.Duration(samples) * time.Second / time.Duration(sampleRate)
	m.duration.WithLabelValues(kind).Set(d.Seconds())
}

func (m *Metrics) block(mode *Mode) {
	if m == nil {
		return
	}
	m.blocks.WithLabelValues(mode.Name).Inc()
}

// WriteTextfile saves the current values in the text exposition format.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	return nil
}

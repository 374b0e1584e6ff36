package prometheus

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/atomic"
)

const (
	signalingNamespace string = "signaling"
)

var (
	initOnce    sync.Once
	initialized atomic.Bool

	MessageCounter *prometheus.CounterVec
)

// Init registers the collectors with the default registry. Recording before Init only updates
// the in-process counters.
func Init(clientID string) {
	initOnce.Do(func() {
		MessageCounter = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   signalingNamespace,
				Subsystem:   "client",
				Name:        "messages",
				ConstLabels: prometheus.Labels{"client_id": clientID},
			},
			[]string{"direction", "content_type"},
		)
		prometheus.MustRegister(MessageCounter)

		initSignalingStats(clientID)

		// recorders only touch the collectors once they are all registered
		initialized.Store(true)
	})
}

func RecordMessage(direction, contentType string) {
	if !initialized.Load() {
		return
	}
	MessageCounter.WithLabelValues(direction, contentType).Inc()
}

package delivery

import (
	"time"

	"github.com/goliatone/go-widgetkit/pkg/interfaces"
)

// NoOpMetrics returns a metrics recorder that drops every observation.
func NoOpMetrics() interfaces.DeliveryMetrics {
	return noopMetrics{}
}

type noopMetrics struct{}

func (noopMetrics) ObserveComposeDuration(string, time.Duration) {}

func (noopMetrics) IncrementComposeError(string) {}

func (noopMetrics) ObserveClasses(string, int, int) {}

package interfaces

import "time"

// DeliveryMetrics records telemetry for widget payload composition.
type DeliveryMetrics interface {
	ObserveComposeDuration(operation string, duration time.Duration)
	IncrementComposeError(operation string)
	ObserveClasses(operation string, delivered, skipped int)
}

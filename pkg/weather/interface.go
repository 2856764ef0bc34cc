package weather

import "context"

// Condition is a coarse lowercase weather category such as "clear", "rain",
// "snow". It is fetched per estimation call and never persisted.
type Condition = string

const ConditionClear Condition = "clear"

// Provider looks up the current weather condition at a coordinate. Callers
// treat any error as non-fatal and fall back to ConditionClear.
type Provider interface {
	GetCondition(ctx context.Context, latitude, longitude float64) (Condition, error)
}

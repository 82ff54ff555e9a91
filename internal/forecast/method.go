package forecast

import "TradePulse/internal/domain/models"

// Method names used in query params and response payloads.
const (
	MethodLinear   = "linear"
	MethodSeasonal = "seasonal"
	MethodML       = "ml"
	MethodEnsemble = "ensemble"
	MethodFallback = "fallback"
)

// Method produces a forecast from an ordered window of quarterly totals.
// Implementations are pure: identical input yields identical output, and no
// method ever returns an error. Insufficient history degrades to a simpler
// method or to an empty prediction set.
type Method interface {
	Name() string
	Forecast(history []models.QuarterlyPoint, horizon int) models.ForecastResult
}

// Registry maps method names to implementations.
type Registry struct {
	methods map[string]Method
}

// NewRegistry builds a registry from the given methods.
func NewRegistry(methods ...Method) *Registry {
	r := &Registry{methods: make(map[string]Method, len(methods))}
	for _, m := range methods {
		r.methods[m.Name()] = m
	}
	return r
}

// Get returns the method registered under name.
func (r *Registry) Get(name string) (Method, bool) {
	m, ok := r.methods[name]
	return m, ok
}

// DefaultRegistry wires the three base methods plus the ensemble with the
// given blend weights.
func DefaultRegistry(weights Weights) *Registry {
	linear := &Linear{}
	seasonal := &Seasonal{Linear: linear}
	ml := &Smoothing{Linear: linear}
	ensemble := &Ensemble{
		Linear:   linear,
		Seasonal: seasonal,
		ML:       ml,
		Weights:  weights,
	}
	return NewRegistry(linear, seasonal, ml, ensemble)
}

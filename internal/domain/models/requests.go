package models

// NextPredictionRequest binds /api/predictions/next query parameters.
// Ensemble is only offered on the live endpoint.
type NextPredictionRequest struct {
	Quarters int    `query:"quarters" default:"4" validate:"gte=1,lte=12"`
	Method   string `query:"method" default:"linear" validate:"oneof=linear seasonal ml"`
}

// LivePredictionRequest binds /api/predictions/live query parameters.
type LivePredictionRequest struct {
	Quarters int    `query:"quarters" default:"4" validate:"gte=1,lte=12"`
	Method   string `query:"method" default:"linear" validate:"oneof=linear seasonal ml ensemble"`
}

// StatsRequest binds flow selection for the stats endpoints.
type StatsRequest struct {
	Flow string `query:"flow" default:"export" validate:"oneof=export import"`
}

// CountriesRequest binds top-partner query parameters.
type CountriesRequest struct {
	Flow  string `query:"flow" default:"export" validate:"oneof=export import"`
	Limit int    `query:"limit" default:"10" validate:"gte=1,lte=100"`
}

// InsightsRequest binds the AI insights query parameters.
type InsightsRequest struct {
	Focus string `query:"focus" default:"exports" validate:"oneof=exports imports balance"`
}

package http

// ErrorBody is the JSON body of every error response.
type ErrorBody struct {
	Error string `json:"error" example:"symbol is required"`
}

// HealthBody is returned by the liveness endpoint.
type HealthBody struct {
	Status string `json:"status" example:"ok"`
}

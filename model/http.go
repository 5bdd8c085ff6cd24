package model

type FitRequestBody struct {
	Weights []int `json:"weights"`
	Total   int   `json:"total"`
	Min     int   `json:"min"`
}

type FitResponse struct {
	Durations []int `json:"durations"`
	Kept      int   `json:"kept"`
	Degraded  bool  `json:"degraded"`
}

type BoundariesResponse struct {
	Boundaries []int `json:"boundaries"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}

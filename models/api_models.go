package models

type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// request to create an analysis
type CreateAnalysisRequest struct {
	Name string `json:"name"`
	AnalysisData
}

// response for analysis create
type CreateAnalysisResponse struct {
	ID string `json:"id"`
}

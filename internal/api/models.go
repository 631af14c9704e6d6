package api

type HealthResponse struct {
	Status string `json:"status" description:"Service status"`
}

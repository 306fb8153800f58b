package stub

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
)

// healthResponse is the response for the health check endpoint.
type healthResponse struct {
	Body struct {
		Status string `json:"status"`
		Links  int    `json:"links"`
	}
}

func registerHealth(api huma.API, svc *Service) {
	huma.Get(api, "/health", func(_ context.Context, _ *struct{}) (*healthResponse, error) {
		resp := &healthResponse{}
		resp.Body.Status = "ok"
		resp.Body.Links = svc.Store().Len()

		return resp, nil
	})
}

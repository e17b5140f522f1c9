// Package geoloads implements the loads port against the geolocation
// service, which tracks haul round trips per driver per job.
package geoloads

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"hauling/internal/core/domain/model/kernel"
	"hauling/internal/core/ports"
)

// Client talks to the geolocation service. It implements
// ports.LoadsService.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewClient creates a loads client for the service at baseURL.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

var _ ports.LoadsService = (*Client)(nil)

type travelsBody struct {
	Total int `json:"total"`
}

// TotalTravels returns how many loads the driver hauled on the job. An
// unknown driver/job combination counts as zero; the geolocation service
// answers 200 with a zero total for pairs it never tracked.
func (c *Client) TotalTravels(ctx context.Context, driverID, jobID kernel.UUID) (int, error) {
	path := fmt.Sprintf("/v1/jobs/%s/drivers/%s/travels", jobID.String(), driverID.String())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return 0, fmt.Errorf("geolocation service returned %d for %s", resp.StatusCode, path)
	}

	var body travelsBody
	if err = json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, err
	}

	return body.Total, nil
}

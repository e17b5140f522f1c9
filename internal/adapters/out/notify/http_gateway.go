package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"hauling/internal/core/domain/model/kernel"
	"hauling/internal/core/ports"
)

// HTTPGateway delivers payloads to the messaging service's REST API.
type HTTPGateway struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewHTTPGateway creates a gateway for the messaging service at baseURL.
func NewHTTPGateway(baseURL, apiKey string) *HTTPGateway {
	return &HTTPGateway{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type pushPayload struct {
	Recipient      string `json:"recipient"`
	Kind           string `json:"kind"`
	JobID          string `json:"jobId,omitempty"`
	ScheduledJobID string `json:"scheduledJobId,omitempty"`
	AssignationID  string `json:"assignationId,omitempty"`
	Message        string `json:"message"`
}

type emailPayload struct {
	Recipient string            `json:"recipient"`
	Template  string            `json:"template"`
	Data      map[string]string `json:"data"`
}

// Push sends one notification to the fan-out endpoint.
func (g *HTTPGateway) Push(ctx context.Context, notification ports.Notification) error {
	payload := pushPayload{
		Recipient: notification.Recipient.String(),
		Kind:      string(notification.Kind),
		Message:   notification.Message,
	}
	if notification.JobID.Validate() == nil {
		payload.JobID = notification.JobID.String()
	}
	if notification.ScheduledJobID.Validate() == nil {
		payload.ScheduledJobID = notification.ScheduledJobID.String()
	}
	if notification.AssignationID.Validate() == nil {
		payload.AssignationID = notification.AssignationID.String()
	}

	return g.post(ctx, "/v1/notifications", payload)
}

// Email sends one templated email request.
func (g *HTTPGateway) Email(
	ctx context.Context,
	recipient kernel.UUID,
	template ports.EmailTemplate,
	data map[string]string,
) error {
	return g.post(ctx, "/v1/emails", emailPayload{
		Recipient: recipient.String(),
		Template:  string(template),
		Data:      data,
	})
}

func (g *HTTPGateway) post(ctx context.Context, path string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("messaging service returned %d for %s", resp.StatusCode, path)
	}
	return nil
}

// Package billing implements the invoice port against the billing service.
// The scheduling core triggers invoice generation at completion; all money
// math lives on the billing side.
package billing

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"hauling/internal/core/domain/model/kernel"
	"hauling/internal/core/ports"
)

// Client talks to the billing service. It implements ports.InvoiceService.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewClient creates a billing client for the service at baseURL.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

var _ ports.InvoiceService = (*Client)(nil)

// GenerateOwnerInvoice creates the owning company's invoice for a finished
// scheduled job. Generation is idempotent on the billing side, so retries
// after a transport failure are safe.
func (c *Client) GenerateOwnerInvoice(ctx context.Context, scheduledJobID kernel.UUID) error {
	return c.post(ctx, "/v1/invoices/schedules/"+scheduledJobID.String())
}

// GenerateDriverInvoice creates a driver's invoice for a finished
// assignation.
func (c *Client) GenerateDriverInvoice(ctx context.Context, assignationID kernel.UUID) error {
	return c.post(ctx, "/v1/invoices/assignations/"+assignationID.String())
}

func (c *Client) post(ctx context.Context, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("billing service returned %d for %s", resp.StatusCode, path)
	}
	return nil
}

// Package directory implements the fleet directory port over the directory
// service's REST API. Drivers, trucks, and owner profiles are resolved per
// request; nothing is cached here because ownership and verification data
// must be current at scheduling time.
package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"hauling/internal/core/domain/model/fleet"
	"hauling/internal/core/domain/model/kernel"
	"hauling/internal/core/ports"
	"hauling/internal/pkg/errs"
)

// Client talks to the directory service. It implements
// ports.DirectoryService.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewClient creates a directory client for the service at baseURL.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

var _ ports.DirectoryService = (*Client)(nil)

type driverBody struct {
	ID        string `json:"id"`
	CompanyID string `json:"companyId"`
	Name      string `json:"name"`
}

type truckBody struct {
	ID        string `json:"id"`
	CompanyID string `json:"companyId"`
	Type      string `json:"type"`
	Subtype   string `json:"subtype"`
	Active    bool   `json:"active"`
}

type ownerProfileBody struct {
	ID          string  `json:"id"`
	CompanyID   string  `json:"companyId"`
	Tier        string  `json:"tier"`
	Verified    bool    `json:"verified"`
	BaseLat     float64 `json:"baseLatitude"`
	BaseLon     float64 `json:"baseLongitude"`
	JobRadiusKm float64 `json:"jobRadiusKm"`
}

type verificationBody struct {
	Verified bool `json:"verified"`
}

type tierPopulationBody struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

type administratorsBody struct {
	IDs []string `json:"ids"`
}

// GetDriver resolves a driver by id.
func (c *Client) GetDriver(ctx context.Context, id kernel.UUID) (fleet.Driver, error) {
	var body driverBody
	if err := c.get(ctx, "/v1/drivers/"+id.String(), "driver", id, &body); err != nil {
		return fleet.Driver{}, err
	}

	return driverFromBody(body)
}

// GetTruck resolves a truck by id, including its active flag and owning
// company.
func (c *Client) GetTruck(ctx context.Context, id kernel.UUID) (fleet.Truck, error) {
	var body truckBody
	if err := c.get(ctx, "/v1/trucks/"+id.String(), "truck", id, &body); err != nil {
		return fleet.Truck{}, err
	}

	return truckFromBody(body)
}

// ListOwnerTrucks lists every truck of an owning company.
func (c *Client) ListOwnerTrucks(ctx context.Context, companyID kernel.UUID) ([]fleet.Truck, error) {
	var bodies []truckBody
	path := "/v1/companies/" + companyID.String() + "/trucks"
	if err := c.get(ctx, path, "company", companyID, &bodies); err != nil {
		return nil, err
	}

	trucks := make([]fleet.Truck, len(bodies))
	for i, body := range bodies {
		truck, err := truckFromBody(body)
		if err != nil {
			return nil, err
		}
		trucks[i] = truck
	}

	return trucks, nil
}

// GetOwnerProfile resolves an owner's visibility profile.
func (c *Client) GetOwnerProfile(ctx context.Context, ownerID kernel.UUID) (fleet.OwnerProfile, error) {
	var body ownerProfileBody
	if err := c.get(ctx, "/v1/owners/"+ownerID.String(), "owner", ownerID, &body); err != nil {
		return fleet.OwnerProfile{}, err
	}

	id, err := kernel.UUIDFromString(body.ID)
	if err != nil {
		return fleet.OwnerProfile{}, err
	}
	companyID, err := kernel.UUIDFromString(body.CompanyID)
	if err != nil {
		return fleet.OwnerProfile{}, err
	}
	base, err := kernel.NewGeoPoint(body.BaseLat, body.BaseLon)
	if err != nil {
		return fleet.OwnerProfile{}, err
	}
	tier, err := fleet.TierFromString(body.Tier)
	if err != nil {
		return fleet.OwnerProfile{}, err
	}

	return fleet.OwnerProfile{
		ID:          id,
		CompanyID:   companyID,
		Tier:        tier,
		Verified:    body.Verified,
		Base:        base,
		JobRadiusKm: body.JobRadiusKm,
	}, nil
}

// IsVerifiedContractor reports whether the contractor's company has passed
// verification.
func (c *Client) IsVerifiedContractor(ctx context.Context, contractorID kernel.UUID) (bool, error) {
	var body verificationBody
	path := "/v1/contractors/" + contractorID.String() + "/verification"
	if err := c.get(ctx, path, "contractor", contractorID, &body); err != nil {
		return false, err
	}

	return body.Verified, nil
}

// CountOwnersByTier returns how many owners currently sit in each priority
// tier.
func (c *Client) CountOwnersByTier(ctx context.Context) (fleet.TierPopulation, error) {
	var body tierPopulationBody
	if err := c.get(ctx, "/v1/owners/tiers", "tiers", nil, &body); err != nil {
		return fleet.TierPopulation{}, err
	}

	return fleet.TierPopulation{
		High:   body.High,
		Medium: body.Medium,
		Low:    body.Low,
	}, nil
}

// ListAdministrators returns the interested-party set for administrative
// fan-out notifications.
func (c *Client) ListAdministrators(ctx context.Context) ([]kernel.UUID, error) {
	var body administratorsBody
	if err := c.get(ctx, "/v1/administrators", "administrators", nil, &body); err != nil {
		return nil, err
	}

	ids := make([]kernel.UUID, len(body.IDs))
	for i, raw := range body.IDs {
		id, err := kernel.UUIDFromString(raw)
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}

	return ids, nil
}

func driverFromBody(body driverBody) (fleet.Driver, error) {
	id, err := kernel.UUIDFromString(body.ID)
	if err != nil {
		return fleet.Driver{}, err
	}
	companyID, err := kernel.UUIDFromString(body.CompanyID)
	if err != nil {
		return fleet.Driver{}, err
	}

	return fleet.Driver{ID: id, CompanyID: companyID, Name: body.Name}, nil
}

func truckFromBody(body truckBody) (fleet.Truck, error) {
	id, err := kernel.UUIDFromString(body.ID)
	if err != nil {
		return fleet.Truck{}, err
	}
	companyID, err := kernel.UUIDFromString(body.CompanyID)
	if err != nil {
		return fleet.Truck{}, err
	}

	return fleet.Truck{
		ID:        id,
		CompanyID: companyID,
		Type:      fleet.TruckType(body.Type),
		Subtype:   body.Subtype,
		Active:    body.Active,
	}, nil
}

func (c *Client) get(ctx context.Context, path, paramName string, id any, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return errs.NewObjectNotFoundError(paramName, id)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("directory service returned %d for %s", resp.StatusCode, path)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

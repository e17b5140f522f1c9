package ports

import (
	"context"

	"hauling/internal/core/domain/model/fleet"
	"hauling/internal/core/domain/model/kernel"
)

// DirectoryService resolves drivers, trucks, and owning companies from the
// external directory. The scheduling core never stores these records; it
// reads them per request and trusts the directory's ownership data.
type DirectoryService interface {
	// GetDriver resolves a driver by id.
	GetDriver(ctx context.Context, id kernel.UUID) (fleet.Driver, error)

	// GetTruck resolves a truck by id, including its active flag and
	// owning company.
	GetTruck(ctx context.Context, id kernel.UUID) (fleet.Truck, error)

	// ListOwnerTrucks lists every truck of an owning company.
	ListOwnerTrucks(ctx context.Context, companyID kernel.UUID) ([]fleet.Truck, error)

	// GetOwnerProfile resolves an owner's visibility profile: priority
	// tier, verification, base location, and job radius.
	GetOwnerProfile(ctx context.Context, ownerID kernel.UUID) (fleet.OwnerProfile, error)

	// IsVerifiedContractor reports whether the contractor's company has
	// passed verification. Unverified contractors cannot post jobs.
	IsVerifiedContractor(ctx context.Context, contractorID kernel.UUID) (bool, error)

	// CountOwnersByTier returns how many owners currently sit in each
	// priority tier. The visibility delay matrix keys off it.
	CountOwnersByTier(ctx context.Context) (fleet.TierPopulation, error)

	// ListAdministrators returns the interested-party set for
	// administrative fan-out notifications.
	ListAdministrators(ctx context.Context) ([]kernel.UUID, error)
}

// Package fleet holds the read models the scheduling core consumes from the
// external directory service: drivers, trucks, and owner profiles. The core
// never mutates these; they are resolved per request through the directory
// port.
package fleet

import "hauling/internal/core/domain/model/kernel"

// TruckType identifies a truck class a requirement slot can ask for, for
// example "10-yard" or "super-dump". Rate tables on slots are indexed by it.
type TruckType string

// Driver is a driver as known to the directory service.
type Driver struct {
	ID        kernel.UUID
	CompanyID kernel.UUID
	Name      string
}

// Truck is a truck as known to the directory service. Active reflects the
// owning company's own enable/disable switch; inactive trucks are never
// schedulable.
type Truck struct {
	ID        kernel.UUID
	CompanyID kernel.UUID
	Type      TruckType
	Subtype   string
	Active    bool
}

// OwnerProfile describes a fleet owner for visibility decisions: priority
// tier, base location, and the radius within which the owner accepts jobs.
type OwnerProfile struct {
	ID          kernel.UUID
	CompanyID   kernel.UUID
	Tier        PriorityTier
	Verified    bool
	Base        kernel.GeoPoint
	JobRadiusKm float64
}

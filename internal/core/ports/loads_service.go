package ports

import (
	"context"

	"hauling/internal/core/domain/model/kernel"
)

// LoadsService exposes the geolocation collaborator's haul counters. The
// core consumes the count as an opaque number when finalizing an
// assignation.
type LoadsService interface {
	// TotalTravels returns how many loads the driver hauled on the job.
	TotalTravels(ctx context.Context, driverID, jobID kernel.UUID) (int, error)
}

// InvoiceService generates invoices for finished work. The core triggers
// generation at completion but never computes money itself.
type InvoiceService interface {
	// GenerateOwnerInvoice creates the owning company's invoice for a
	// finished scheduled job.
	GenerateOwnerInvoice(ctx context.Context, scheduledJobID kernel.UUID) error

	// GenerateDriverInvoice creates a driver's invoice for a finished
	// assignation.
	GenerateDriverInvoice(ctx context.Context, assignationID kernel.UUID) error
}

// Package commands contains the business operations that mutate workflow
// state. Every command follows the same shape: a guarded command value
// validated at construction, and a handler that runs the operation inside a
// unit-of-work transaction, so a failing step rolls back the whole batch.
package commands

import (
	"context"

	"freight/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command
// handlers. Each handler declares the narrowest repository surface it needs.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// BookingRepoFactory provides access to the booking repository within a transaction.
	BookingRepoFactory interface {
		BookingRepository() ports.BookingRepository
	}

	// TripRepoFactory provides access to the trip repository within a transaction.
	TripRepoFactory interface {
		TripRepository() ports.TripRepository
	}

	// VehicleRepoFactory provides access to the vehicle repository within a transaction.
	VehicleRepoFactory interface {
		VehicleRepository() ports.VehicleRepository
	}

	// BranchRepoFactory provides access to the branch repository within a transaction.
	BranchRepoFactory interface {
		BranchRepository() ports.BranchRepository
	}

	// EventRepoFactory provides access to the event repository within a transaction.
	EventRepoFactory interface {
		EventRepository() ports.EventRepository
	}

	// BookingUoW manages transactions for booking intake and status changes.
	BookingUoW interface {
		TxManager
		BookingRepoFactory
		BranchRepoFactory
		EventRepoFactory
	}

	// BookingUoWFactory creates booking unit of work instances.
	BookingUoWFactory interface {
		Create() BookingUoW
	}

	// TripUoW manages transactions for trip creation.
	TripUoW interface {
		TxManager
		TripRepoFactory
		VehicleRepoFactory
		BranchRepoFactory
		EventRepoFactory
	}

	// TripUoWFactory creates trip unit of work instances.
	TripUoWFactory interface {
		Create() TripUoW
	}

	// LoadingUoW manages transactions spanning trips and bookings: the
	// load and unload batches, which must mutate both as one unit.
	LoadingUoW interface {
		TxManager
		TripRepoFactory
		BookingRepoFactory
		VehicleRepoFactory
		EventRepoFactory
	}

	// LoadingUoWFactory creates loading unit of work instances.
	LoadingUoWFactory interface {
		Create() LoadingUoW
	}
)

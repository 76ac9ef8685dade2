// Package logevent contains the append-only audit record written on every
// state-affecting workflow action: article loads and unloads, booking status
// changes, and trip lifecycle events. Events are created by the orchestrator
// and the state machine callers, never mutated or deleted.
package logevent

import (
	"errors"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

// EntityType names the kind of entity an event concerns.
type EntityType string

const (
	EntityBooking EntityType = "booking"
	EntityArticle EntityType = "article"
	EntityTrip    EntityType = "trip"
)

// EventType names what happened.
type EventType string

const (
	EventBookingCreated       EventType = "booking_created"
	EventBookingStatusChanged EventType = "booking_status_changed"
	EventArticleLoaded        EventType = "article_loaded"
	EventArticleUnloaded      EventType = "article_unloaded"
	EventTripCreated          EventType = "trip_created"
	EventTripStatusChanged    EventType = "trip_status_changed"
)

// Event domain errors.
var (
	// ErrEventIsNotConstructed is returned when using an improperly
	// initialized Event.
	ErrEventIsNotConstructed = errors.New("Event must be created via NewEvent constructor")
	// ErrEntityTypeIsRequired is returned for an empty entity type.
	ErrEntityTypeIsRequired = errs.NewValueIsRequiredError("entity type")
	// ErrEventTypeIsRequired is returned for an empty event type.
	ErrEventTypeIsRequired = errs.NewValueIsRequiredError("event type")
)

// Event is one immutable audit record.
type Event struct {
	id         kernel.UUID
	orgID      kernel.UUID
	entityType EntityType
	entityID   kernel.UUID
	eventType  EventType
	detail     string
	actorID    kernel.UUID
	occurredAt time.Time

	guard guard.ConstructorGuard
}

// NewEvent creates an audit record. The detail is a short human-readable
// description; structured state lives in the entities themselves.
func NewEvent(
	orgID kernel.UUID,
	entityType EntityType,
	entityID kernel.UUID,
	eventType EventType,
	detail string,
	actorID kernel.UUID,
	occurredAt time.Time,
) (*Event, error) {
	if err := orgID.Validate(); err != nil {
		return nil, err
	}
	if entityType == "" {
		return nil, ErrEntityTypeIsRequired
	}
	if err := entityID.Validate(); err != nil {
		return nil, err
	}
	if eventType == "" {
		return nil, ErrEventTypeIsRequired
	}
	if err := actorID.Validate(); err != nil {
		return nil, err
	}

	return &Event{
		id:         kernel.NewUUID(),
		orgID:      orgID,
		entityType: entityType,
		entityID:   entityID,
		eventType:  eventType,
		detail:     detail,
		actorID:    actorID,
		occurredAt: occurredAt,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the event was created through the constructor.
func (e *Event) Validate() error {
	if e == nil {
		return ErrEventIsNotConstructed
	}
	return e.guard.Validate(ErrEventIsNotConstructed)
}

// ID returns the event identifier.
func (e *Event) ID() kernel.UUID { return e.id }

// OrgID returns the owning organization.
func (e *Event) OrgID() kernel.UUID { return e.orgID }

// EntityType returns the kind of entity the event concerns.
func (e *Event) EntityType() EntityType { return e.entityType }

// EntityID returns the concerned entity's identifier.
func (e *Event) EntityID() kernel.UUID { return e.entityID }

// EventType returns what happened.
func (e *Event) EventType() EventType { return e.eventType }

// Detail returns the human-readable description.
func (e *Event) Detail() string { return e.detail }

// ActorID returns who caused the event.
func (e *Event) ActorID() kernel.UUID { return e.actorID }

// OccurredAt returns when the event happened.
func (e *Event) OccurredAt() time.Time { return e.occurredAt }

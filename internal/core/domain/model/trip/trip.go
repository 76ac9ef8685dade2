// Package trip contains the Trip aggregate: one vehicle's outward gate pass
// list (OGPL) for a transit leg. The trip owns its own status machine; the
// bookings and articles it carries belong to the booking aggregate and are
// linked to the trip by id only.
package trip

import (
	"errors"
	"fmt"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

// Trip domain errors.
var (
	// ErrTripIsNotConstructed is returned when using an improperly
	// initialized Trip.
	ErrTripIsNotConstructed = errors.New("Trip must be created via NewTrip constructor")
	// ErrOGPLNumberIsRequired is returned for an empty manifest number.
	ErrOGPLNumberIsRequired = errs.NewValueIsRequiredError("ogpl number")
	// ErrDriverNameIsRequired is returned for an empty primary driver name.
	ErrDriverNameIsRequired = errs.NewValueIsRequiredError("primary driver name")
	// ErrDriverMobileIsRequired is returned for an empty primary driver mobile.
	ErrDriverMobileIsRequired = errs.NewValueIsRequiredError("primary driver mobile")
	// ErrSameStation is returned when origin and destination stations coincide.
	ErrSameStation = errs.NewValueIsInvalidError("origin and destination stations must differ")
)

// DriverInfo carries the crew details printed on the manifest.
type DriverInfo struct {
	PrimaryName     string
	PrimaryMobile   string
	SecondaryName   string
	SecondaryMobile string
}

// Validate checks that the mandatory primary driver fields are present.
func (d DriverInfo) Validate() error {
	if d.PrimaryName == "" {
		return ErrDriverNameIsRequired
	}
	if d.PrimaryMobile == "" {
		return ErrDriverMobileIsRequired
	}
	return nil
}

// Trip is the aggregate root for one vehicle manifest.
//
// Invariant (enforced with the repository layer): a vehicle is linked to at
// most one trip in a non-terminal status at any time.
type Trip struct {
	id          kernel.UUID
	ogplNumber  string
	orgID       kernel.UUID
	vehicleID   kernel.UUID
	fromStation kernel.UUID
	toStation   kernel.UUID
	transitDate time.Time
	status      Status
	driver      DriverInfo
	remarks     string
	sealNumber  string
	createdAt   time.Time

	guard guard.ConstructorGuard
}

// NewTrip creates a trip in Created status.
// The OGPL number must already be reserved by the number generator.
func NewTrip(
	id kernel.UUID,
	ogplNumber string,
	orgID kernel.UUID,
	vehicleID kernel.UUID,
	fromStation kernel.UUID,
	toStation kernel.UUID,
	transitDate time.Time,
	driver DriverInfo,
	remarks string,
	sealNumber string,
	createdAt time.Time,
) (*Trip, error) {
	t := &Trip{
		status:      Created,
		transitDate: transitDate,
		remarks:     remarks,
		sealNumber:  sealNumber,
		createdAt:   createdAt,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		t.setID(id),
		t.setOGPLNumber(ogplNumber),
		t.setOrgID(orgID),
		t.setVehicleID(vehicleID),
		t.setStations(fromStation, toStation),
		t.setDriver(driver),
	); err != nil {
		return nil, err
	}

	return t, nil
}

// RestoreTrip reconstructs a trip aggregate from persistent storage.
func RestoreTrip(
	id kernel.UUID,
	ogplNumber string,
	orgID kernel.UUID,
	vehicleID kernel.UUID,
	fromStation kernel.UUID,
	toStation kernel.UUID,
	transitDate time.Time,
	status Status,
	driver DriverInfo,
	remarks string,
	sealNumber string,
	createdAt time.Time,
) (*Trip, error) {
	t := &Trip{
		transitDate: transitDate,
		remarks:     remarks,
		sealNumber:  sealNumber,
		createdAt:   createdAt,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		t.setID(id),
		t.setOGPLNumber(ogplNumber),
		t.setOrgID(orgID),
		t.setVehicleID(vehicleID),
		t.setStations(fromStation, toStation),
		t.setDriver(driver),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	t.status = status
	return t, nil
}

// Validate ensures the trip was created through a constructor.
func (t *Trip) Validate() error {
	if t == nil {
		return ErrTripIsNotConstructed
	}
	return t.guard.Validate(ErrTripIsNotConstructed)
}

// IsEqual compares two trips by identifier.
func (t *Trip) IsEqual(other *Trip) bool {
	return other != nil && t.id.IsEqual(other.id)
}

// ID returns the trip's unique identifier.
func (t *Trip) ID() kernel.UUID {
	return t.id
}

// OGPLNumber returns the manifest number.
func (t *Trip) OGPLNumber() string {
	return t.ogplNumber
}

// OrgID returns the owning organization.
func (t *Trip) OrgID() kernel.UUID {
	return t.orgID
}

// VehicleID returns the assigned vehicle.
func (t *Trip) VehicleID() kernel.UUID {
	return t.vehicleID
}

// FromStation returns the origin branch.
func (t *Trip) FromStation() kernel.UUID {
	return t.fromStation
}

// ToStation returns the destination branch.
func (t *Trip) ToStation() kernel.UUID {
	return t.toStation
}

// TransitDate returns the planned departure date.
func (t *Trip) TransitDate() time.Time {
	return t.transitDate
}

// Status returns the trip's current status.
func (t *Trip) Status() Status {
	return t.status
}

// Driver returns the crew details.
func (t *Trip) Driver() DriverInfo {
	return t.driver
}

// Remarks returns free-form manifest remarks.
func (t *Trip) Remarks() string {
	return t.remarks
}

// SealNumber returns the container seal number, if sealed.
func (t *Trip) SealNumber() string {
	return t.sealNumber
}

// CreatedAt returns the creation time.
func (t *Trip) CreatedAt() time.Time {
	return t.createdAt
}

// IsEditable reports whether articles may still be loaded or unloaded.
func (t *Trip) IsEditable() bool {
	return t.status.IsEditable()
}

// StartLoading moves the trip from Created to Loading on the first
// successful load. A no-op when already Loading.
func (t *Trip) StartLoading() error {
	switch t.status {
	case Created:
		t.status = Loading
		return nil
	case Loading:
		return nil
	default:
		return t.transitionConflict(Loading)
	}
}

// Dispatch sends the vehicle out, moving the trip to InTransit.
func (t *Trip) Dispatch() error {
	if t.status != Loading {
		return t.transitionConflict(InTransit)
	}
	t.status = InTransit
	return nil
}

// Complete finishes the leg. Terminal.
func (t *Trip) Complete() error {
	if t.status != InTransit {
		return t.transitionConflict(Completed)
	}
	t.status = Completed
	return nil
}

// Cancel abandons the manifest. Allowed from any non-terminal status;
// the caller must first unload anything still linked to the trip.
func (t *Trip) Cancel() error {
	if t.status.IsTerminal() {
		return t.transitionConflict(Cancelled)
	}
	t.status = Cancelled
	return nil
}

func (t *Trip) transitionConflict(to Status) error {
	return errs.NewStateConflictError("trip",
		fmt.Sprintf("trip %s cannot move from %s to %s", t.ogplNumber, t.status, to))
}

func (t *Trip) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	t.id = id
	return nil
}

func (t *Trip) setOGPLNumber(ogplNumber string) error {
	if ogplNumber == "" {
		return ErrOGPLNumberIsRequired
	}
	t.ogplNumber = ogplNumber
	return nil
}

func (t *Trip) setOrgID(orgID kernel.UUID) error {
	if err := orgID.Validate(); err != nil {
		return err
	}
	t.orgID = orgID
	return nil
}

func (t *Trip) setVehicleID(vehicleID kernel.UUID) error {
	if err := vehicleID.Validate(); err != nil {
		return err
	}
	t.vehicleID = vehicleID
	return nil
}

func (t *Trip) setStations(fromStation, toStation kernel.UUID) error {
	if err := fromStation.Validate(); err != nil {
		return err
	}
	if err := toStation.Validate(); err != nil {
		return err
	}
	if fromStation.IsEqual(toStation) {
		return ErrSameStation
	}
	t.fromStation = fromStation
	t.toStation = toStation
	return nil
}

func (t *Trip) setDriver(driver DriverInfo) error {
	if err := driver.Validate(); err != nil {
		return err
	}
	t.driver = driver
	return nil
}

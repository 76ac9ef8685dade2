package services

import (
	"fmt"

	"freight/internal/core/domain/model/vehicle"
	"freight/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// DefaultWarnThresholdPercent is the utilization at which warnings start when
// no threshold is configured.
const DefaultWarnThresholdPercent = 80.0

// CapacityCheck is the outcome of a capacity validation. A hard violation
// (utilization over 100%) clears Valid; utilization inside the warning band
// keeps Valid set but attaches non-fatal warnings.
type CapacityCheck struct {
	Valid              bool
	UtilizationPercent float64
	CapacityKg         decimal.Decimal
	RequestedKg        decimal.Decimal
	Warnings           []string
}

// CapacityValidator is a domain service that checks proposed cargo weight
// against a vehicle's rated capacity. It is a pure function of the vehicle
// and the weight; rejecting or accepting a load based on the result is the
// orchestrator's job.
//
// Example:
//
//	validator := services.NewCapacityValidator(80)
//	check, err := validator.Check(truck, decimal.NewFromInt(1200))
//	if err != nil {
//	    return err
//	}
//	if !check.Valid {
//	    // over capacity: reject the batch
//	}
type CapacityValidator struct {
	warnThresholdPercent float64
}

// NewCapacityValidator creates a validator warning at the given utilization
// percentage. A non-positive threshold falls back to
// DefaultWarnThresholdPercent.
func NewCapacityValidator(warnThresholdPercent float64) CapacityValidator {
	if warnThresholdPercent <= 0 {
		warnThresholdPercent = DefaultWarnThresholdPercent
	}
	return CapacityValidator{warnThresholdPercent: warnThresholdPercent}
}

// Check computes the utilization the candidate weight would bring the vehicle
// to. Utilization above 100% is a hard violation (Valid false); utilization
// at or above the warning threshold attaches warnings without failing.
func (v CapacityValidator) Check(veh *vehicle.Vehicle, candidateWeightKg decimal.Decimal) (CapacityCheck, error) {
	if err := veh.Validate(); err != nil {
		return CapacityCheck{}, err
	}
	if candidateWeightKg.IsNegative() {
		return CapacityCheck{}, errs.NewValueIsInvalidError("candidate weight must not be negative")
	}

	return v.Analyze(veh.Registration(), veh.CapacityKg(), candidateWeightKg), nil
}

// Analyze is Check for callers that hold the vehicle's registration and rated
// capacity but not the aggregate (read models built from joined rows).
// The capacity must be positive.
func (v CapacityValidator) Analyze(registration string, capacityKg, candidateWeightKg decimal.Decimal) CapacityCheck {
	utilization, _ := candidateWeightKg.Div(capacityKg).Mul(decimal.NewFromInt(100)).Round(2).Float64()

	check := CapacityCheck{
		Valid:              true,
		UtilizationPercent: utilization,
		CapacityKg:         capacityKg,
		RequestedKg:        candidateWeightKg,
	}

	if utilization > 100 {
		check.Valid = false
		return check
	}

	if utilization >= v.warnThresholdPercent {
		check.Warnings = append(check.Warnings, fmt.Sprintf(
			"vehicle %s utilization %.2f%% is above the %.0f%% warning threshold",
			registration, utilization, v.warnThresholdPercent))
	}

	return check
}

// Package numbering produces the unique human-readable document numbers of
// the workflow core: LR (consignment) numbers, quotation numbers, and OGPL
// (manifest) numbers.
//
// The design is optimistic-compute, atomic-reserve: the highest existing
// sequence for a prefix is only a hint for the next candidate, and the
// unique-key insert performed by SequenceRepository.Reserve is the sole
// correctness anchor. Under contention the generator retries with
// incremented candidates, and as a last resort trades readable sequencing
// for a random suffix rather than failing the booking.
package numbering

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/ports"
	"freight/internal/pkg/errs"
)

const (
	// maxReserveAttempts bounds sequential-candidate retries per number.
	maxReserveAttempts = 5
	// maxFallbackAttempts bounds random-suffix retries after the
	// sequential candidates are exhausted.
	maxFallbackAttempts = 3

	// Codes used when branch metadata cannot be resolved. A failed lookup
	// degrades the prefix instead of failing the booking.
	defaultBranchCode = "BR"
	defaultOrgCode    = "ORG"
)

// Format selects the LR number layout. The platform historically produced
// two divergent layouts; which one is canonical is a deployment decision, so
// it is configuration here.
type Format int

const (
	// UnknownFormat catches uninitialized Format values.
	UnknownFormat Format = iota

	// FormatBranchOrgYear renders {Branch}-{Org}-{YYYY}-{NNNNN}. Default.
	FormatBranchOrgYear

	// FormatBranchMonth renders {Branch}-{YYMM}-{NNNNN}.
	FormatBranchMonth
)

// FormatFromString parses a configured format name. Empty input selects the
// default FormatBranchOrgYear.
func FormatFromString(s string) (Format, error) {
	switch s {
	case "", "branch-org-year":
		return FormatBranchOrgYear, nil
	case "branch-month":
		return FormatBranchMonth, nil
	default:
		return UnknownFormat, errs.NewValueIsInvalidErrorWithCause("lr number format",
			fmt.Errorf("%q is not a known format", s))
	}
}

// Clock supplies the current year/month so tests can pin the prefix.
type Clock interface {
	Year() int
	YearMonth() (int, int)
}

// Generator mints unique document numbers. Safe for concurrent use across
// processes: distinct generator instances serialize on the reservation
// insert, not on any in-process state.
type Generator struct {
	sequences ports.SequenceRepository
	branches  ports.BranchRepository
	format    Format
	clock     Clock
}

// NewGenerator creates a generator using the given reservation store, branch
// metadata source, and LR format.
func NewGenerator(
	sequences ports.SequenceRepository,
	branches ports.BranchRepository,
	format Format,
	clock Clock,
) (*Generator, error) {
	if sequences == nil {
		return nil, errs.NewValueIsRequiredError("sequence repository")
	}
	if branches == nil {
		return nil, errs.NewValueIsRequiredError("branch repository")
	}
	if format != FormatBranchOrgYear && format != FormatBranchMonth {
		return nil, errs.NewValueIsInvalidError("lr number format")
	}
	if clock == nil {
		return nil, errs.NewValueIsRequiredError("clock")
	}

	return &Generator{
		sequences: sequences,
		branches:  branches,
		format:    format,
		clock:     clock,
	}, nil
}

// NextBookingNumber produces the next LR number for a branch, or a quotation
// number when isQuotation is set. Branch lookup failure falls back to the
// default codes; only reservation exhaustion fails the call.
func (g *Generator) NextBookingNumber(ctx context.Context, branchID kernel.UUID, isQuotation bool) (string, error) {
	branchCode, orgCode := g.resolveCodes(ctx, branchID)

	var prefix string
	switch {
	case isQuotation:
		prefix = fmt.Sprintf("QT-%s-%d-", branchCode, g.clock.Year())
	case g.format == FormatBranchMonth:
		year, month := g.clock.YearMonth()
		prefix = fmt.Sprintf("%s-%02d%02d-", branchCode, year%100, month)
	default:
		prefix = fmt.Sprintf("%s-%s-%d-", branchCode, orgCode, g.clock.Year())
	}

	return g.next(ctx, prefix)
}

// NextOGPLNumber produces the next manifest number for a branch.
func (g *Generator) NextOGPLNumber(ctx context.Context, branchID kernel.UUID) (string, error) {
	branchCode, _ := g.resolveCodes(ctx, branchID)
	prefix := fmt.Sprintf("OGPL-%s-%d-", branchCode, g.clock.Year())
	return g.next(ctx, prefix)
}

// resolveCodes derives the prefix codes from branch metadata, degrading to
// defaults when the branch cannot be read.
func (g *Generator) resolveCodes(ctx context.Context, branchID kernel.UUID) (string, string) {
	br, err := g.branches.Get(ctx, branchID)
	if err != nil {
		return defaultBranchCode, defaultOrgCode
	}
	return br.Code(), br.OrgCode()
}

// next runs the reserve loop for one prefix: query the highest sequence as a
// hint, then attempt unique-key inserts with incrementing candidates. When
// every sequential candidate collides, a random suffix preserves uniqueness
// at the cost of readability.
func (g *Generator) next(ctx context.Context, prefix string) (string, error) {
	highest, err := g.sequences.HighestSequence(ctx, prefix)
	if err != nil {
		return "", err
	}

	candidate := highest + 1
	var lastErr error
	for attempt := 0; attempt < maxReserveAttempts; attempt++ {
		number := fmt.Sprintf("%s%05d", prefix, candidate)
		err = g.sequences.Reserve(ctx, prefix, candidate, number)
		if err == nil {
			return number, nil
		}
		if !errors.Is(err, errs.ErrDuplicateValue) {
			return "", err
		}
		lastErr = err
		candidate++
	}

	return g.nextWithRandomSuffix(ctx, prefix, lastErr)
}

// nextWithRandomSuffix is the high-contention fallback.
func (g *Generator) nextWithRandomSuffix(ctx context.Context, prefix string, lastErr error) (string, error) {
	for attempt := 0; attempt < maxFallbackAttempts; attempt++ {
		suffix, err := randomSuffix()
		if err != nil {
			return "", err
		}

		number := prefix + suffix
		err = g.sequences.Reserve(ctx, prefix, 0, number)
		if err == nil {
			return number, nil
		}
		if !errors.Is(err, errs.ErrDuplicateValue) {
			return "", err
		}
		lastErr = err
	}

	return "", errs.NewGenerationExhaustedError(prefix, maxReserveAttempts+maxFallbackAttempts, lastErr)
}

func randomSuffix() (string, error) {
	buf := make([]byte, 3)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("random suffix: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

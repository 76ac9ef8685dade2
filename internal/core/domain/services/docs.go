// Package services provides domain services for the freight workflow core:
// business rules that span aggregates without belonging to any single one.
//
// The package includes:
//   - CapacityValidator: checks proposed cargo weight against vehicle capacity
//
// Domain services here are pure: they compute over domain values and never
// touch storage.
package services

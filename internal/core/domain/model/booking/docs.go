// Package booking contains the Booking aggregate: the shipment contract, its
// article line items, and the status state machine with workflow-context
// gating that governs every status change. All booking and article mutation
// flows through this package; repositories persist aggregates, they never
// edit status fields themselves.
package booking

// Package kernel contains shared value objects used across the freight domain
// model. Kernel types carry no business rules of their own; they give every
// aggregate the same validated identifier primitives.
package kernel

// Package value provides the typed literal values a query can bind as
// parameters.
//
// Value is a sealed interface. Each implementer reports a Kind, and the
// query compiler dispatches on that kind to pick the parameter factory
// method that creates the driver parameter.
//
// Key design constraints:
//   - NO float types - use Decimal for fractional numbers
//   - Null carries the kind of the column it stands in for
//   - Value imports nothing internal
package value

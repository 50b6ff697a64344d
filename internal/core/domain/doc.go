// Package domain defines the core business entities for storesync.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - FormState: Shopify credentials, API version and date range
//   - ValidationErrors: ordered messages produced by a validation pass
//   - OperationStatus: the fetch/sync state machine
//   - ActivityRecord: a row of the recent-activity table
//   - SubmissionRecord: a journaled submission attempt
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain

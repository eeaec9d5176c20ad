// Package domain defines the core entities for Whereabouts.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Position: A location fix produced by a LocationProvider
//   - MotionClassification: A set of activity guesses with confidences
//   - Address: A reverse-geocoded address candidate
//   - Settings: Provider configuration exposed to callers
//   - Diagnostic: A recorded pipeline failure
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

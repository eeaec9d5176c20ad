// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - LocationProvider: Platform location service (last fix and updates)
//   - ActivityRecognizer: Platform activity recognition service
//   - Geocoder: Reverse geocoding lookups
//   - Renderer: Receives final text values and error notifications
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
//   - DiagnosticsStore: Records pipeline failures. Without it failures are
//     only logged.
//
// Provider interfaces are callback based: registration returns an
// unregister function that the core calls exactly once.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven

// Package domain defines the core business entities for EcoBin.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Location: A named map location from the fixed catalogue
//   - BinReading: Fill levels reported by a smart bin
//   - Alert: An SMS notification about a bin
//   - ScheduledTask: A recurring background task
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

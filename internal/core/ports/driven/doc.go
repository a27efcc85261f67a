// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - Navigator: Opens a URL in the host's browser
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - BinFeed: Fill-level readings. Without it, monitoring is disabled.
//   - Notifier: SMS delivery. Without it, alerts are composed but not sent.
//   - AlertStore: Alert history. Without it, cooldowns last for the process only.
//   - SchedulerStore: Scheduler state for crash recovery.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven

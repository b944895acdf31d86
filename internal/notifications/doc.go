// Package notifications delivers batch lifecycle events via pluggable
// notifiers.
//
// The default implementation publishes to ntfy using the topic configured
// in config.toml and gracefully degrades to a no-op when no topic is set.
// Enumerated event types cover the run milestones so the scheduler can
// emit consistent messages without duplicating HTTP glue; per-event
// config toggles are honored inside the service, not by callers.
package notifications

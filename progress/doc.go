// Package progress tracks how far the agent-log replay of a processing run
// has advanced. A tracker can travel in a context so that the player and the
// workflow machine update the same counters without a registry.
package progress

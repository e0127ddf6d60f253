// Package harness provides utilities for integration testing the roomsched CLI.
// It handles binary compilation, environment isolation, and command execution.
//
// Environment variables managed:
//   - ROOMSCHED_HOME: Isolated per test (temp directory)
//   - ROOMSCHED_DEBUG: Disabled to reduce noise
//   - ROOMSCHED_TIMEZONE: Pinned to UTC so --at instants are deterministic
package harness

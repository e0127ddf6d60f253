// Package integration_test provides end-to-end tests for roomsched CLI commands.
// Tests compile the binary once via TestMain and run each test with an
// isolated ROOMSCHED_HOME, so every test starts from an empty database.
package integration_test

import (
	"log"
	"os"
	"testing"

	"github.com/renato0307/roomsched/test/integration/harness"
)

// Wednesday 15:00 UTC, inside the seeded RM-402 overlap
const wednesdayAfternoon = "2026-10-14T15:00:00Z"

func TestMain(m *testing.M) {
	_, err := harness.BuildBinary()
	if err != nil {
		log.Fatalf("Failed to build binary: %v", err)
	}

	code := m.Run()

	harness.CleanupBinary()

	os.Exit(code)
}

func seed(t *testing.T, env *harness.TestEnvironment) {
	t.Helper()
	result := harness.RunCommand(t, env, "seed")
	harness.AssertSuccess(t, result)
}

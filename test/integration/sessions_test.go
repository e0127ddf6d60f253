package integration_test

import (
	"testing"

	"github.com/renato0307/roomsched/test/integration/harness"
)

type session struct {
	Day    string `json:"day"`
	End    string `json:"end"`
	ID     string `json:"id"`
	Name   string `json:"name"`
	RoomID string `json:"room_id"`
	Start  string `json:"start"`
}

type conflict struct {
	Description string `json:"description"`
	FirstID     string `json:"first_session_id"`
	ID          string `json:"id"`
	RoomID      string `json:"room_id"`
	SecondID    string `json:"second_session_id"`
	Status      string `json:"status"`
}

func listConflicts(t *testing.T, env *harness.TestEnvironment, args ...string) []conflict {
	t.Helper()
	result := harness.RunCommand(t, env, append([]string{"conflicts", "list", "--format", "json"}, args...)...)
	harness.AssertSuccess(t, result)
	return harness.DecodeJSON[[]conflict](t, result)
}

func TestSessions(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(t *testing.T, env *harness.TestEnvironment)
		args     []string
		wantErr  bool
		validate func(t *testing.T, env *harness.TestEnvironment, result harness.CommandResult)
	}{
		{
			name:  "list filtered by room and day",
			setup: seed,
			args:  []string{"sessions", "list", "--room", "RM-402", "--day", "wed", "--format", "json"},
			validate: func(t *testing.T, env *harness.TestEnvironment, result harness.CommandResult) {
				sessions := harness.DecodeJSON[[]session](t, result)
				if len(sessions) != 2 {
					t.Fatalf("Expected 2 sessions, got %d", len(sessions))
				}
				if sessions[0].Start != "14:00" || sessions[1].Start != "14:30" {
					t.Errorf("Expected sessions ordered by start, got %+v", sessions)
				}
			},
		},
		{
			name:  "add overlapping session reports conflicts",
			setup: seed,
			args: []string{"sessions", "add", "Chemistry", "--id", "chem-1", "--room", "RM-402",
				"--day", "Wednesday", "--start", "15:00", "--end", "17:00"},
			validate: func(t *testing.T, env *harness.TestEnvironment, result harness.CommandResult) {
				harness.AssertStdoutContains(t, result, "Session 'chem-1' added")
				harness.AssertStdoutContains(t, result, "Conflict:")
				if pending := listConflicts(t, env, "--status", "pending"); len(pending) != 3 {
					t.Errorf("Expected 3 pending conflicts, got %d", len(pending))
				}
			},
		},
		{
			name:  "back-to-back sessions do not conflict",
			setup: seed,
			args: []string{"sessions", "add", "Evening Lab", "--room", "RM-402",
				"--day", "wed", "--start", "16:30", "--end", "18:00"},
			validate: func(t *testing.T, env *harness.TestEnvironment, result harness.CommandResult) {
				harness.AssertStdoutNotContains(t, result, "Conflict:")
				if pending := listConflicts(t, env, "--status", "pending"); len(pending) != 1 {
					t.Errorf("Expected 1 pending conflict, got %d", len(pending))
				}
			},
		},
		{
			name:    "add with end before start fails",
			setup:   seed,
			args:    []string{"sessions", "add", "Broken", "--room", "RM-101", "--day", "mon", "--start", "10:00", "--end", "09:00"},
			wantErr: true,
			validate: func(t *testing.T, env *harness.TestEnvironment, result harness.CommandResult) {
				harness.AssertStderrContains(t, result, "must be before end")
			},
		},
		{
			name:    "add to unknown room fails",
			setup:   seed,
			args:    []string{"sessions", "add", "Nowhere", "--room", "RM-999", "--day", "mon", "--start", "09:00", "--end", "10:00"},
			wantErr: true,
			validate: func(t *testing.T, env *harness.TestEnvironment, result harness.CommandResult) {
				harness.AssertStderrContains(t, result, "room not found")
			},
		},
		{
			name:  "edit retires the conflict",
			setup: seed,
			args:  []string{"sessions", "edit", "seed-8", "--start", "16:00", "--end", "18:00"},
			validate: func(t *testing.T, env *harness.TestEnvironment, result harness.CommandResult) {
				harness.AssertStdoutContains(t, result, "Session 'seed-8' updated (Wednesday 16:00-18:00 in RM-402)")
				if all := listConflicts(t, env); len(all) != 0 {
					t.Errorf("Expected no conflicts, got %+v", all)
				}
			},
		},
		{
			name:  "delete removes its conflicts",
			setup: seed,
			args:  []string{"sessions", "del", "seed-7", "--force"},
			validate: func(t *testing.T, env *harness.TestEnvironment, result harness.CommandResult) {
				harness.AssertStdoutContains(t, result, "Session 'seed-7' deleted")
				if all := listConflicts(t, env); len(all) != 0 {
					t.Errorf("Expected no conflicts, got %+v", all)
				}
			},
		},
		{
			name:    "delete unknown session fails",
			args:    []string{"sessions", "del", "missing", "--force"},
			wantErr: true,
			validate: func(t *testing.T, env *harness.TestEnvironment, result harness.CommandResult) {
				harness.AssertStderrContains(t, result, "session not found")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := harness.NewTestEnvironment(t)

			if tt.setup != nil {
				tt.setup(t, env)
			}

			result := harness.RunCommand(t, env, tt.args...)
			if tt.wantErr {
				harness.AssertFailure(t, result)
			} else {
				harness.AssertSuccess(t, result)
			}

			if tt.validate != nil {
				tt.validate(t, env, result)
			}
		})
	}
}

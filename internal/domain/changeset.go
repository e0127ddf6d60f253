package domain

// ChangeSet is one atomic unit of durable change produced by a mutation
type ChangeSet struct {
	DeletedConflicts []string
	DeletedRooms     []string
	DeletedSessions  []string
	Conflicts        []Conflict
	Rooms            []Room
	Sessions         []ClassSession
}

// IsEmpty reports whether the change set carries no change
func (c ChangeSet) IsEmpty() bool {
	return len(c.DeletedConflicts) == 0 && len(c.DeletedRooms) == 0 && len(c.DeletedSessions) == 0 &&
		len(c.Conflicts) == 0 && len(c.Rooms) == 0 && len(c.Sessions) == 0
}

// Snapshot is the full durable state loaded at startup
type Snapshot struct {
	Conflicts []Conflict
	Rooms     []Room
	Sessions  []ClassSession
}

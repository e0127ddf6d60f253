// Package scheduling implements the scheduling conflict engine: per-bucket overlap
// detection, conflict lifecycle, room status projection and resolution suggestions.
package scheduling

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/renato0307/roomsched/internal/domain"
	"github.com/renato0307/roomsched/internal/logging"
	"github.com/renato0307/roomsched/internal/ports"
)

// Engine serializes mutations per bucket and recomputes the bucket's conflicts
// synchronously. Every mutation is staged on copies, committed through the
// ChangeCommitter, and only then published.
type Engine struct {
	advisor   *Advisor
	clock     ports.Clock
	committer ports.ChangeCommitter
	store     *ScheduleStore
}

// NewEngine creates an Engine. committer may be nil for a purely in-memory engine.
func NewEngine(committer ports.ChangeCommitter, clock ports.Clock, cfg AdvisorConfig) *Engine {
	return &Engine{
		advisor:   NewAdvisor(cfg),
		clock:     clock,
		committer: committer,
		store:     NewScheduleStore(),
	}
}

// stagedBucket holds the next state of a locked bucket until the commit succeeds
type stagedBucket struct {
	bucket    *bucket
	conflicts *ConflictRegistry
	rec       Reconciliation
	sessions  []domain.ClassSession
}

func (e *Engine) stage(b *bucket, sessions []domain.ClassSession, now time.Time) *stagedBucket {
	registry := b.conflicts.Clone()
	rec := registry.ApplyDetection(b.key, DetectOverlaps(sessions), sessions, now)
	return &stagedBucket{bucket: b, conflicts: registry, rec: rec, sessions: sessions}
}

// commit persists changes plus the staged reconciliations, then publishes the staged
// buckets. On failure nothing is published.
func (e *Engine) commit(ctx context.Context, changes domain.ChangeSet, stages ...*stagedBucket) error {
	for _, st := range stages {
		changes.Conflicts = append(changes.Conflicts, st.rec.Created...)
		for _, c := range st.rec.Retired {
			changes.DeletedConflicts = append(changes.DeletedConflicts, c.ID)
		}
	}

	if e.committer != nil && !changes.IsEmpty() {
		if err := e.committer.Commit(ctx, changes); err != nil {
			logging.Logger.Error("Commit failed, discarding staged change", "error", err)
			if errors.Is(err, domain.ErrPersistence) {
				return err
			}
			return fmt.Errorf("%w: %w", domain.ErrPersistence, err)
		}
	}

	e.store.indexMu.Lock()
	defer e.store.indexMu.Unlock()
	for _, st := range stages {
		st.bucket.sessions = st.sessions
		st.bucket.conflicts = st.conflicts
		for _, c := range st.rec.Created {
			e.store.conflictIdx[c.ID] = st.bucket.key
		}
		for _, c := range st.rec.Retired {
			delete(e.store.conflictIdx, c.ID)
		}
		if !st.rec.IsEmpty() {
			logging.Logger.Debug("Conflicts reconciled",
				"bucket", st.bucket.key.String(),
				"created", len(st.rec.Created),
				"retired", len(st.rec.Retired))
		}
	}
	return nil
}

// UpsertSession inserts or replaces a session and recomputes the affected buckets.
// When an edit moves the session to another room or weekday both buckets are recomputed.
// It returns the session's bucket.
func (e *Engine) UpsertSession(ctx context.Context, s domain.ClassSession) (domain.BucketKey, error) {
	if err := s.Validate(); err != nil {
		return domain.BucketKey{}, err
	}

	idLock := e.store.idLock(s.ID)
	idLock.Lock()
	defer idLock.Unlock()

	e.store.roomsMu.RLock()
	defer e.store.roomsMu.RUnlock()
	if _, ok := e.store.rooms[s.RoomID]; !ok {
		return domain.BucketKey{}, fmt.Errorf("%w: %w: %s", domain.ErrValidation, domain.ErrRoomNotFound, s.RoomID)
	}

	key := s.Bucket()
	keys := []domain.BucketKey{key}
	if oldKey, existed := e.store.lookupSession(s.ID); existed && oldKey != key {
		keys = append(keys, oldKey)
	}

	buckets, unlock := e.store.lockBuckets(keys...)
	defer unlock()

	now := e.clock.Now()
	stages := make([]*stagedBucket, 0, len(buckets))
	for _, b := range buckets {
		if b.key == key {
			stages = append(stages, e.stage(b, withSession(b.sessions, s), now))
		} else {
			stages = append(stages, e.stage(b, withoutSession(b.sessions, s.ID), now))
		}
	}

	if err := e.commit(ctx, domain.ChangeSet{Sessions: []domain.ClassSession{s}}, stages...); err != nil {
		return domain.BucketKey{}, err
	}

	e.store.indexMu.Lock()
	e.store.sessionIdx[s.ID] = key
	e.store.indexMu.Unlock()

	return key, nil
}

// RemoveSession deletes a session and recomputes its bucket
func (e *Engine) RemoveSession(ctx context.Context, id string) (domain.BucketKey, error) {
	idLock := e.store.idLock(id)
	idLock.Lock()
	defer idLock.Unlock()

	e.store.roomsMu.RLock()
	defer e.store.roomsMu.RUnlock()

	key, ok := e.store.lookupSession(id)
	if !ok {
		return domain.BucketKey{}, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
	}

	buckets, unlock := e.store.lockBuckets(key)
	defer unlock()

	b := buckets[0]
	st := e.stage(b, withoutSession(b.sessions, id), e.clock.Now())
	if err := e.commit(ctx, domain.ChangeSet{DeletedSessions: []string{id}}, st); err != nil {
		return domain.BucketKey{}, err
	}

	e.store.indexMu.Lock()
	delete(e.store.sessionIdx, id)
	e.store.indexMu.Unlock()

	return key, nil
}

// ResolveConflict marks a pending conflict resolved without re-checking the overlap
func (e *Engine) ResolveConflict(ctx context.Context, id string) (domain.Conflict, error) {
	return e.closeConflict(ctx, id, (*ConflictRegistry).Resolve)
}

// DismissConflict marks a pending conflict dismissed
func (e *Engine) DismissConflict(ctx context.Context, id string) (domain.Conflict, error) {
	return e.closeConflict(ctx, id, (*ConflictRegistry).Dismiss)
}

func (e *Engine) closeConflict(
	ctx context.Context,
	id string,
	transition func(*ConflictRegistry, string, time.Time) (domain.Conflict, error),
) (domain.Conflict, error) {
	key, ok := e.store.lookupConflict(id)
	if !ok {
		return domain.Conflict{}, fmt.Errorf("%w: %w: %s", domain.ErrConflictNotFound, domain.ErrInvalidState, id)
	}

	buckets, unlock := e.store.lockBuckets(key)
	defer unlock()

	b := buckets[0]
	registry := b.conflicts.Clone()
	updated, err := transition(registry, id, e.clock.Now())
	if err != nil {
		return domain.Conflict{}, err
	}

	st := &stagedBucket{bucket: b, conflicts: registry, sessions: b.sessions}
	if err := e.commit(ctx, domain.ChangeSet{Conflicts: []domain.Conflict{updated}}, st); err != nil {
		return domain.Conflict{}, err
	}
	return updated, nil
}

// UpsertRoom adds or replaces a room
func (e *Engine) UpsertRoom(ctx context.Context, room domain.Room) error {
	if err := room.Validate(); err != nil {
		return err
	}

	e.store.roomsMu.Lock()
	defer e.store.roomsMu.Unlock()

	if err := e.commit(ctx, domain.ChangeSet{Rooms: []domain.Room{room}}); err != nil {
		return err
	}
	e.store.rooms[room.ID] = room
	return nil
}

// RemoveRoom deletes a room that no session references anymore
func (e *Engine) RemoveRoom(ctx context.Context, id string) error {
	e.store.roomsMu.Lock()
	defer e.store.roomsMu.Unlock()

	if _, ok := e.store.rooms[id]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrRoomNotFound, id)
	}
	if e.store.roomHasSessions(id) {
		return fmt.Errorf("%w: room %s still has scheduled sessions", domain.ErrValidation, id)
	}

	if err := e.commit(ctx, domain.ChangeSet{DeletedRooms: []string{id}}); err != nil {
		return err
	}
	delete(e.store.rooms, id)
	return nil
}

// SetMaintenance sets the explicit maintenance flag of a room
func (e *Engine) SetMaintenance(ctx context.Context, id string, maintenance bool) (domain.Room, error) {
	e.store.roomsMu.Lock()
	defer e.store.roomsMu.Unlock()

	room, ok := e.store.rooms[id]
	if !ok {
		return domain.Room{}, fmt.Errorf("%w: %s", domain.ErrRoomNotFound, id)
	}
	if room.Maintenance == maintenance {
		return room, nil
	}
	room.Maintenance = maintenance

	if err := e.commit(ctx, domain.ChangeSet{Rooms: []domain.Room{room}}); err != nil {
		return domain.Room{}, err
	}
	e.store.rooms[id] = room
	return room, nil
}

// Room returns one room
func (e *Engine) Room(id string) (domain.Room, error) {
	room, ok := e.store.Room(id)
	if !ok {
		return domain.Room{}, fmt.Errorf("%w: %s", domain.ErrRoomNotFound, id)
	}
	return room, nil
}

// Rooms returns every room ordered by id
func (e *Engine) Rooms() []domain.Room {
	return e.store.Rooms()
}

// SessionsIn returns the ordered sessions of one room and weekday
func (e *Engine) SessionsIn(roomID string, day time.Weekday) []domain.ClassSession {
	return e.store.SessionsIn(roomID, day)
}

// SessionCount returns the number of scheduled sessions
func (e *Engine) SessionCount() int {
	return e.store.SessionCount()
}

// Sessions returns the sessions of a room (all rooms when roomID is empty), optionally
// restricted to one weekday, in bucket order
func (e *Engine) Sessions(roomID string, day *time.Weekday) []domain.ClassSession {
	var result []domain.ClassSession
	for _, b := range e.store.bucketsOf(roomID) {
		if day != nil && b.key.Day != *day {
			continue
		}
		b.mu.RLock()
		result = append(result, b.sessions...)
		b.mu.RUnlock()
	}
	return result
}

// Session returns one session by id
func (e *Engine) Session(id string) (domain.ClassSession, error) {
	key, ok := e.store.lookupSession(id)
	if !ok {
		return domain.ClassSession{}, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
	}
	for _, s := range e.store.SessionsIn(key.RoomID, key.Day) {
		if s.ID == id {
			return s, nil
		}
	}
	return domain.ClassSession{}, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
}

// ListConflicts returns the conflicts passing the filter, oldest detection first
func (e *Engine) ListConflicts(filter domain.ConflictFilter) []domain.Conflict {
	var result []domain.Conflict
	for _, b := range e.store.bucketsOf(filter.RoomID) {
		b.mu.RLock()
		result = append(result, b.conflicts.List(filter)...)
		b.mu.RUnlock()
	}
	slices.SortStableFunc(result, func(a, b domain.Conflict) int {
		return a.DetectedAt.Compare(b.DetectedAt)
	})
	return result
}

// Conflict returns one conflict by id
func (e *Engine) Conflict(id string) (domain.Conflict, error) {
	key, ok := e.store.lookupConflict(id)
	if !ok {
		return domain.Conflict{}, fmt.Errorf("%w: %s", domain.ErrConflictNotFound, id)
	}
	b, ok := e.store.existingBucket(key)
	if !ok {
		return domain.Conflict{}, fmt.Errorf("%w: %s", domain.ErrConflictNotFound, id)
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	c, ok := b.conflicts.Find(id)
	if !ok {
		return domain.Conflict{}, fmt.Errorf("%w: %s", domain.ErrConflictNotFound, id)
	}
	return c, nil
}

// RoomStatus projects the status of one room at now
func (e *Engine) RoomStatus(roomID string, now time.Time) (domain.RoomStatus, error) {
	room, err := e.Room(roomID)
	if err != nil {
		return "", err
	}
	return e.projectRoom(room, now), nil
}

// AllRoomStatuses projects the status of every room at now
func (e *Engine) AllRoomStatuses(now time.Time) map[string]domain.RoomStatus {
	rooms := e.store.Rooms()
	statuses := make(map[string]domain.RoomStatus, len(rooms))
	for _, room := range rooms {
		statuses[room.ID] = e.projectRoom(room, now)
	}
	return statuses
}

func (e *Engine) projectRoom(room domain.Room, now time.Time) domain.RoomStatus {
	b, ok := e.store.existingBucket(domain.BucketKey{Day: now.Weekday(), RoomID: room.ID})
	if !ok {
		return ProjectStatus(room, nil, nil, now)
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	return ProjectStatus(room, b.sessions, b.conflicts.List(domain.ConflictFilter{Status: domain.ConflictPending}), now)
}

// SuggestResolutions proposes alternate rooms and slots for the session of a pending
// conflict that is being moved. No eligible candidate yields an empty list.
func (e *Engine) SuggestResolutions(conflictID string, requiredCapacity, candidateCap int) ([]domain.Suggestion, error) {
	key, ok := e.store.lookupConflict(conflictID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrConflictNotFound, conflictID)
	}
	b, ok := e.store.existingBucket(key)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrConflictNotFound, conflictID)
	}

	b.mu.RLock()
	conflict, found := b.conflicts.Find(conflictID)
	sessions := slices.Clone(b.sessions)
	b.mu.RUnlock()

	if !found {
		return nil, fmt.Errorf("%w: %s", domain.ErrConflictNotFound, conflictID)
	}
	if conflict.Status != domain.ConflictPending {
		return nil, fmt.Errorf("%w: conflict %s is %s", domain.ErrInvalidState, conflictID, conflict.Status)
	}

	suggestions := e.advisor.Suggest(conflict, sessions, e.store.Rooms(), e.store.SessionsIn, requiredCapacity, candidateCap)
	if suggestions == nil {
		suggestions = []domain.Suggestion{}
	}
	return suggestions, nil
}

// Restore loads a durable snapshot into an empty engine and reconciles every bucket.
// Records that no longer hold (unknown rooms, invalid sessions, stale conflicts) are
// dropped and the reconciliation is committed as one change set.
// It must run before the engine is shared.
func (e *Engine) Restore(ctx context.Context, snapshot domain.Snapshot) error {
	var changes domain.ChangeSet

	for _, room := range snapshot.Rooms {
		if err := room.Validate(); err != nil {
			logging.Logger.Warn("Skipping invalid room", "room", room.ID, "error", err)
			continue
		}
		e.store.rooms[room.ID] = room
	}

	for _, s := range snapshot.Sessions {
		if err := s.Validate(); err != nil {
			logging.Logger.Warn("Dropping invalid session", "session", s.ID, "error", err)
			changes.DeletedSessions = append(changes.DeletedSessions, s.ID)
			continue
		}
		if _, ok := e.store.rooms[s.RoomID]; !ok {
			logging.Logger.Warn("Dropping session of unknown room", "session", s.ID, "room", s.RoomID)
			changes.DeletedSessions = append(changes.DeletedSessions, s.ID)
			continue
		}
		if _, dup := e.store.sessionIdx[s.ID]; dup {
			logging.Logger.Warn("Ignoring duplicate session id", "session", s.ID)
			continue
		}
		b := e.store.bucketFor(s.Bucket())
		b.sessions = withSession(b.sessions, s)
		e.store.sessionIdx[s.ID] = b.key
	}

	for _, c := range snapshot.Conflicts {
		c.Pair = domain.NewPairKey(c.Pair.First, c.Pair.Second)
		if !e.store.bucketFor(c.Bucket()).conflicts.restore(c) {
			changes.DeletedConflicts = append(changes.DeletedConflicts, c.ID)
		}
	}

	now := e.clock.Now()
	buckets := e.store.bucketsOf("")
	stages := make([]*stagedBucket, len(buckets))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, b := range buckets {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			stages[i] = e.stage(b, b.sessions, now)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	// Persisted conflicts enter the id index before publishing so retirements clean it up
	for _, b := range buckets {
		for _, c := range b.conflicts.List(domain.ConflictFilter{}) {
			e.store.conflictIdx[c.ID] = b.key
		}
	}

	if err := e.commit(ctx, changes, stages...); err != nil {
		return err
	}

	logging.Logger.Info("Schedule restored",
		"rooms", len(e.store.rooms),
		"sessions", len(e.store.sessionIdx),
		"conflicts", len(e.store.conflictIdx))
	return nil
}

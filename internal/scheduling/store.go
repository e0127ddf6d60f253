package scheduling

import (
	"cmp"
	"hash/fnv"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/renato0307/roomsched/internal/domain"
)

const idLockStripes = 64

// bucket is the unit of detection and locking: the sessions of one room on one weekday
// and the conflicts detected among them. sessions stays sorted by compareSessions.
type bucket struct {
	conflicts *ConflictRegistry
	key       domain.BucketKey
	mu        sync.RWMutex
	sessions  []domain.ClassSession
}

// ScheduleStore indexes rooms and sessions. Sessions are partitioned into buckets keyed
// by (room, weekday), each with its own lock.
type ScheduleStore struct {
	roomsMu sync.RWMutex
	rooms   map[string]domain.Room

	bucketsMu sync.RWMutex
	buckets   map[domain.BucketKey]*bucket

	indexMu     sync.Mutex
	conflictIdx map[string]domain.BucketKey
	sessionIdx  map[string]domain.BucketKey

	idLocks [idLockStripes]sync.Mutex
}

// NewScheduleStore creates an empty store
func NewScheduleStore() *ScheduleStore {
	return &ScheduleStore{
		buckets:     make(map[domain.BucketKey]*bucket),
		conflictIdx: make(map[string]domain.BucketKey),
		rooms:       make(map[string]domain.Room),
		sessionIdx:  make(map[string]domain.BucketKey),
	}
}

// Room returns a room by id
func (s *ScheduleStore) Room(id string) (domain.Room, bool) {
	s.roomsMu.RLock()
	defer s.roomsMu.RUnlock()
	r, ok := s.rooms[id]
	return r, ok
}

// Rooms returns all rooms ordered by id
func (s *ScheduleStore) Rooms() []domain.Room {
	s.roomsMu.RLock()
	defer s.roomsMu.RUnlock()
	rooms := slices.Collect(maps.Values(s.rooms))
	slices.SortFunc(rooms, func(a, b domain.Room) int { return cmp.Compare(a.ID, b.ID) })
	return rooms
}

// SessionsIn returns a copy of the ordered sessions of one bucket
func (s *ScheduleStore) SessionsIn(roomID string, day time.Weekday) []domain.ClassSession {
	b, ok := s.existingBucket(domain.BucketKey{Day: day, RoomID: roomID})
	if !ok {
		return nil
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	return slices.Clone(b.sessions)
}

// SessionCount returns the number of stored sessions
func (s *ScheduleStore) SessionCount() int {
	s.indexMu.Lock()
	defer s.indexMu.Unlock()
	return len(s.sessionIdx)
}

func (s *ScheduleStore) bucketFor(key domain.BucketKey) *bucket {
	if b, ok := s.existingBucket(key); ok {
		return b
	}
	s.bucketsMu.Lock()
	defer s.bucketsMu.Unlock()
	if b, ok := s.buckets[key]; ok {
		return b
	}
	b := &bucket{conflicts: NewConflictRegistry(), key: key}
	s.buckets[key] = b
	return b
}

func (s *ScheduleStore) existingBucket(key domain.BucketKey) (*bucket, bool) {
	s.bucketsMu.RLock()
	defer s.bucketsMu.RUnlock()
	b, ok := s.buckets[key]
	return b, ok
}

// bucketsOf returns the buckets matching roomID (all buckets when empty), in key order
func (s *ScheduleStore) bucketsOf(roomID string) []*bucket {
	s.bucketsMu.RLock()
	result := make([]*bucket, 0, len(s.buckets))
	for key, b := range s.buckets {
		if roomID == "" || key.RoomID == roomID {
			result = append(result, b)
		}
	}
	s.bucketsMu.RUnlock()
	slices.SortFunc(result, func(a, b *bucket) int { return compareKeys(a.key, b.key) })
	return result
}

// lockBuckets write-locks the buckets for keys in key order and returns them in that order
func (s *ScheduleStore) lockBuckets(keys ...domain.BucketKey) ([]*bucket, func()) {
	keys = slices.Clone(keys)
	slices.SortFunc(keys, compareKeys)
	keys = slices.Compact(keys)

	locked := make([]*bucket, 0, len(keys))
	for _, key := range keys {
		b := s.bucketFor(key)
		b.mu.Lock()
		locked = append(locked, b)
	}
	return locked, func() {
		for i := len(locked) - 1; i >= 0; i-- {
			locked[i].mu.Unlock()
		}
	}
}

// idLock returns the stripe serializing mutations of one session id
func (s *ScheduleStore) idLock(id string) *sync.Mutex {
	h := fnv.New32a()
	h.Write([]byte(id))
	return &s.idLocks[h.Sum32()%idLockStripes]
}

func (s *ScheduleStore) lookupSession(id string) (domain.BucketKey, bool) {
	s.indexMu.Lock()
	defer s.indexMu.Unlock()
	key, ok := s.sessionIdx[id]
	return key, ok
}

func (s *ScheduleStore) lookupConflict(id string) (domain.BucketKey, bool) {
	s.indexMu.Lock()
	defer s.indexMu.Unlock()
	key, ok := s.conflictIdx[id]
	return key, ok
}

// roomHasSessions reports whether any session still references the room
func (s *ScheduleStore) roomHasSessions(roomID string) bool {
	s.indexMu.Lock()
	defer s.indexMu.Unlock()
	for _, key := range s.sessionIdx {
		if key.RoomID == roomID {
			return true
		}
	}
	return false
}

func compareKeys(a, b domain.BucketKey) int {
	if a.Less(b) {
		return -1
	}
	if b.Less(a) {
		return 1
	}
	return 0
}

// withSession returns a new sorted slice with s inserted, replacing any session with its id
func withSession(sessions []domain.ClassSession, s domain.ClassSession) []domain.ClassSession {
	result := withoutSession(sessions, s.ID)
	i, _ := slices.BinarySearchFunc(result, s, compareSessions)
	return slices.Insert(result, i, s)
}

// withoutSession returns a new slice without the session id
func withoutSession(sessions []domain.ClassSession, id string) []domain.ClassSession {
	result := make([]domain.ClassSession, 0, len(sessions)+1)
	for _, s := range sessions {
		if s.ID != id {
			result = append(result, s)
		}
	}
	return result
}

package storage

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/waxads/easy-grown/internal"
)

// ErrUnavailable is a convenience failure for FailWith.
var ErrUnavailable = errors.New("storage: unavailable")

// MemoryStorage keeps everything in process memory. Nothing survives a
// restart; it backs demos and tests.
type MemoryStorage struct {
	mu         sync.RWMutex
	vegetables map[int64]*internal.Vegetable
	logs       map[int64]*internal.PlantingLog
	userLogs   map[string][]int64        // email -> log ids in insert order
	users      map[string]*internal.User // email -> user
	nextVegID  int64
	nextLogID  int64
	nextUserID int64
	failWith   error
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		vegetables: make(map[int64]*internal.Vegetable),
		logs:       make(map[int64]*internal.PlantingLog),
		userLogs:   make(map[string][]int64),
		users:      make(map[string]*internal.User),
	}
}

// FailWith makes every later call return err. Pass nil to recover.
func (s *MemoryStorage) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failWith = err
}

func (s *MemoryStorage) Ping(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.failWith
}

func (s *MemoryStorage) Close() error {
	return nil
}

// --- VegetableRepository ---
func (s *MemoryStorage) ListVegetables(ctx context.Context) ([]internal.Vegetable, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	vegs := make([]internal.Vegetable, 0, len(s.vegetables))
	for _, v := range s.vegetables {
		c := *v
		c.Water, c.Regions = cloneList(v.Water), cloneList(v.Regions)
		c.Steps, c.MoreTips = cloneList(v.Steps), cloneList(v.MoreTips)
		vegs = append(vegs, c)
	}
	sort.Slice(vegs, func(i, j int) bool { return vegs[i].ID < vegs[j].ID })
	return vegs, nil
}

func (s *MemoryStorage) CreateVegetable(ctx context.Context, v *internal.Vegetable) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return -1, s.failWith
	}
	s.nextVegID++
	c := *v
	c.ID = s.nextVegID
	c.Water, c.Regions = cloneList(v.Water), cloneList(v.Regions)
	c.Steps, c.MoreTips = cloneList(v.Steps), cloneList(v.MoreTips)
	s.vegetables[c.ID] = &c
	v.ID = c.ID
	return c.ID, nil
}

func (s *MemoryStorage) DeleteVegetable(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return s.failWith
	}
	delete(s.vegetables, id)
	return nil
}

// --- PlantingLogRepository ---
func (s *MemoryStorage) ListPlantingLogs(ctx context.Context, userEmail string) ([]internal.PlantingLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	ids := s.userLogs[userEmail]
	logs := make([]internal.PlantingLog, 0, len(ids))
	for _, id := range ids {
		logs = append(logs, *s.logs[id])
	}
	return logs, nil
}

func (s *MemoryStorage) CreatePlantingLog(ctx context.Context, l *internal.PlantingLog) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return -1, s.failWith
	}
	s.nextLogID++
	c := *l
	c.ID = s.nextLogID
	s.logs[c.ID] = &c
	s.userLogs[c.UserEmail] = append(s.userLogs[c.UserEmail], c.ID)
	l.ID = c.ID
	return c.ID, nil
}

func (s *MemoryStorage) UpdatePlantingStatus(ctx context.Context, id int64, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return s.failWith
	}
	if l, ok := s.logs[id]; ok {
		l.Status = status
	}
	return nil
}

func (s *MemoryStorage) UpdateLastWatered(ctx context.Context, id int64, date string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return s.failWith
	}
	if l, ok := s.logs[id]; ok {
		l.LastWateredDate = date
	}
	return nil
}

// --- UserRepository ---
func (s *MemoryStorage) CreateUser(ctx context.Context, u *internal.User) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return -1, s.failWith
	}
	if _, taken := s.users[u.Email]; taken {
		return -1, internal.ErrDuplicateEmail
	}
	s.nextUserID++
	c := *u
	c.ID = s.nextUserID
	s.users[c.Email] = &c
	u.ID = c.ID
	return c.ID, nil
}

func (s *MemoryStorage) GetUserByEmail(ctx context.Context, email string) (*internal.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	u, ok := s.users[email]
	if !ok {
		return nil, internal.ErrNotFound
	}
	c := *u
	return &c, nil
}

func cloneList(items []string) []string {
	return append([]string{}, items...)
}

// --- Compile-time assertions ---
var _ Store = (*MemoryStorage)(nil)

package memory

import (
	"context"
	"sync"

	"github.com/hamed0406/pinglight/internal/domain"
)

type Store struct {
	mu     sync.RWMutex
	latest *domain.Signal
	subs   map[int]chan domain.Signal
	nextID int
}

func New() *Store {
	return &Store{subs: make(map[int]chan domain.Signal)}
}

// Emit replaces the current signal and notifies subscribers. A subscriber
// that has not read the previous signal only ever sees the newest one.
func (m *Store) Emit(ctx context.Context, s domain.Signal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := s
	m.latest = &cp
	for _, ch := range m.subs {
		select {
		case <-ch:
		default:
		}
		ch <- s
	}
	return nil
}

func (m *Store) Latest(ctx context.Context) (domain.Signal, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.latest == nil {
		return domain.Signal{}, false
	}
	return *m.latest, true
}

// Subscribe returns a channel of new signals and a func that closes it.
func (m *Store) Subscribe() (<-chan domain.Signal, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextID
	m.nextID++
	ch := make(chan domain.Signal, 1)
	m.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			m.mu.Lock()
			delete(m.subs, id)
			close(ch)
			m.mu.Unlock()
		})
	}
}

package settings

import (
	"sync"

	"github.com/example/datedir/internal/datedir/domain"
)

// Shared is the single in-process owner of the live Record. Both surfaces receive the same
// *Shared; all access goes through its mutex.
type Shared struct {
	mu       sync.Mutex
	rec      Record
	poisoned bool
}

// NewShared wraps the record loaded at startup.
func NewShared(rec Record) *Shared {
	return &Shared{rec: rec}
}

// Get returns a copy of the live record.
func (s *Shared) Get() (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.poisoned {
		return Record{}, errPoisoned()
	}
	return s.rec, nil
}

// Update holds the lock across fn and replaces the live record with fn's result only when fn
// succeeds. A panic inside fn poisons the container and is re-raised; later calls fail with a
// Configuration error.
func (s *Shared) Update(fn func(current Record) (Record, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.poisoned {
		return errPoisoned()
	}

	completed := false
	defer func() {
		if !completed {
			s.poisoned = true
		}
	}()

	next, err := fn(s.rec)
	completed = true
	if err != nil {
		return err
	}
	s.rec = next
	return nil
}

// Poisoned reports whether a previous Update panicked.
func (s *Shared) Poisoned() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.poisoned
}

func errPoisoned() error {
	return domain.Configuration("settings state is unavailable after an earlier failure", nil)
}

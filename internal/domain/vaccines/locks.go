package vaccines

import "sync"

// petLocks serializa mutaciones por pet dentro del proceso.
// Entre procesos manda el control optimista del store (Version).
type petLocks struct {
	mu    sync.Mutex
	locks map[string]*petLock
}

type petLock struct {
	mu   sync.Mutex
	refs int
}

func newPetLocks() *petLocks {
	return &petLocks{locks: make(map[string]*petLock)}
}

// lock bloquea petID y devuelve la función para liberarlo.
func (p *petLocks) lock(petID string) func() {
	p.mu.Lock()
	l, ok := p.locks[petID]
	if !ok {
		l = &petLock{}
		p.locks[petID] = l
	}
	l.refs++
	p.mu.Unlock()

	l.mu.Lock()

	return func() {
		l.mu.Unlock()

		p.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(p.locks, petID)
		}
		p.mu.Unlock()
	}
}

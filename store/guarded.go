package store

import (
	"sync"

	"github.com/Comcast/vend/catalog"
)

// Guarded serializes access to a Store so that several goroutines
// can share it.
//
// Each method holds the lock for the whole operation, so the
// check-then-deduct in ProcessPurchase stays all-or-nothing.
type Guarded struct {
	sync.Mutex
	s *Store
}

// NewGuarded wraps the given Store, which should not be used
// directly afterwards.
func NewGuarded(s *Store) *Guarded {
	return &Guarded{s: s}
}

func (g *Guarded) Fill(c Consumable, amount uint64) error {
	g.Lock()
	defer g.Unlock()
	return g.s.Fill(c, amount)
}

func (g *Guarded) TakeMoney() uint64 {
	g.Lock()
	defer g.Unlock()
	return g.s.TakeMoney()
}

func (g *Guarded) ProcessPurchase(r catalog.Recipe) error {
	g.Lock()
	defer g.Unlock()
	return g.s.ProcessPurchase(r)
}

func (g *Guarded) Levels() Levels {
	g.Lock()
	defer g.Unlock()
	return g.s.Levels()
}

// Do runs f with exclusive access to the underlying Store.
func (g *Guarded) Do(f func(*Store) error) error {
	g.Lock()
	defer g.Unlock()
	return f(g.s)
}

package client

import "sync"

// InflightGuard tracks cards with an outstanding operation so rapid
// repeated triggers are rejected instead of submitted twice. Each card
// moves idle -> in-flight -> idle, independently of the others.
type InflightGuard struct {
	mu  sync.Mutex
	ids map[uint]struct{}
}

func NewInflightGuard() *InflightGuard {
	return &InflightGuard{ids: make(map[uint]struct{})}
}

// Begin marks the card in-flight. It returns false if an operation is
// already outstanding for that card.
func (g *InflightGuard) Begin(id uint) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, busy := g.ids[id]; busy {
		return false
	}
	g.ids[id] = struct{}{}
	return true
}

// End clears the card. Callers defer it so the flag is released on
// success and failure alike.
func (g *InflightGuard) End(id uint) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.ids, id)
}

// Active reports whether the card has an outstanding operation.
func (g *InflightGuard) Active(id uint) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, busy := g.ids[id]
	return busy
}

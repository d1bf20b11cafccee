package realtime

import (
	"sync"
)

// Presence tracks which users currently hold a live realtime connection.
// Membership is process-lifetime only: nothing is persisted and a restart
// simply starts empty until clients reconnect.
type Presence struct {
	mu     sync.RWMutex
	online map[uint]struct{}
}

func NewPresence() *Presence {
	return &Presence{
		online: make(map[uint]struct{}),
	}
}

// SetOnline marks the user as connected. Last write wins.
func (p *Presence) SetOnline(userID uint) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.online[userID] = struct{}{}
}

// SetOffline removes the user from the online set.
func (p *Presence) SetOffline(userID uint) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.online, userID)
}

// IsOnline reports current membership with no side effects.
func (p *Presence) IsOnline(userID uint) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	_, ok := p.online[userID]
	return ok
}

// Count returns the number of users currently online.
func (p *Presence) Count() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.online)
}

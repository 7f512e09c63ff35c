package service

import (
	"sync"

	"github.com/agorshkov/hockey-arena/internal/engine"
)

// Arena is the in-memory home of live match controllers, keyed by the
// opaque match uuid. Persistence keeps only snapshots; everything the
// simulation needs between phases lives here.
//
// The arena also tracks which player pairs currently have a live match,
// so the same two players cannot pile up parallel matches.
type Arena struct {
	mu      sync.Mutex
	byMatch map[string]*engine.Controller
	byPair  map[string]string // pair key -> match uuid
}

func NewArena() *Arena {
	return &Arena{
		byMatch: make(map[string]*engine.Controller),
		byPair:  make(map[string]string),
	}
}

// Put registers a live controller. An empty pairKey (bot matches) skips
// pair tracking, so a player may run bot matches alongside a PvP match.
func (a *Arena) Put(matchUUID string, ctrl *engine.Controller, pairKey string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.byMatch[matchUUID] = ctrl
	if pairKey != "" {
		a.byPair[pairKey] = matchUUID
	}
}

func (a *Arena) Get(matchUUID string) (*engine.Controller, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	ctrl, ok := a.byMatch[matchUUID]
	return ctrl, ok
}

// PairLive reports whether the given pair key has a live match.
func (a *Arena) PairLive(pairKey string) bool {
	if pairKey == "" {
		return false
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	_, ok := a.byPair[pairKey]
	return ok
}

// Remove drops a finished or expired match, including its pair slot.
func (a *Arena) Remove(matchUUID string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.byMatch, matchUUID)
	for key, uuid := range a.byPair {
		if uuid == matchUUID {
			delete(a.byPair, key)
		}
	}
}

// Len reports the number of live controllers, for logging.
func (a *Arena) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.byMatch)
}

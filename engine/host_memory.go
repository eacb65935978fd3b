package engine

import (
	"sync"
	"time"
)

type hostEntry struct {
	engineName string
	expiresAt  time.Time
}

// HostMemory remembers the engine that last won a race per host, so the
// next fetch from that host can skip the race. Entries expire after ttl.
type HostMemory struct {
	store sync.Map // host -> *hostEntry
	ttl   time.Duration
	done  chan struct{}
}

// NewHostMemory starts a HostMemory whose expired entries are pruned
// hourly until Stop.
func NewHostMemory(ttl time.Duration) *HostMemory {
	m := &HostMemory{
		ttl:  ttl,
		done: make(chan struct{}),
	}
	go m.cleanupLoop()
	return m
}

// Get returns the engine remembered for host, or "".
func (m *HostMemory) Get(host string) string {
	val, ok := m.store.Load(host)
	if !ok {
		return ""
	}
	entry := val.(*hostEntry)
	if time.Now().After(entry.expiresAt) {
		m.store.Delete(host)
		return ""
	}
	return entry.engineName
}

// Set remembers the engine that fetched from host.
func (m *HostMemory) Set(host, engineName string) {
	m.store.Store(host, &hostEntry{
		engineName: engineName,
		expiresAt:  time.Now().Add(m.ttl),
	})
}

// Delete forgets host.
func (m *HostMemory) Delete(host string) {
	m.store.Delete(host)
}

func (m *HostMemory) Stop() {
	close(m.done)
}

func (m *HostMemory) cleanupLoop() {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-m.done:
			return
		case <-ticker.C:
			now := time.Now()
			m.store.Range(func(key, value any) bool {
				entry := value.(*hostEntry)
				if now.After(entry.expiresAt) {
					m.store.Delete(key)
				}
				return true
			})
		}
	}
}

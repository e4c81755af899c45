package wizard

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Sessions gerencia os wizards em andamento, um por cliente.
// Sessões abandonadas expiram sem efeitos colaterais.
type Sessions struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]*sessionEntry
	stop    chan struct{}
	once    sync.Once
}

type sessionEntry struct {
	wiz      *Wizard
	lastSeen time.Time
}

func NewSessions(ttl time.Duration) *Sessions {
	s := &Sessions{
		ttl:     ttl,
		entries: make(map[string]*sessionEntry),
		stop:    make(chan struct{}),
	}

	go s.janitor()
	return s
}

// Start registra um wizard novo e devolve o id da sessão.
func (s *Sessions) Start(wiz *Wizard) string {
	id := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[id] = &sessionEntry{
		wiz:      wiz,
		lastSeen: time.Now(),
	}
	return id
}

// Get busca a sessão e renova sua validade.
func (s *Sessions) Get(id string) (*Wizard, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok {
		return nil, false
	}

	e.lastSeen = time.Now()
	return e.wiz, true
}

func (s *Sessions) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
}

func (s *Sessions) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *Sessions) Close() {
	s.once.Do(func() { close(s.stop) })
}

func (s *Sessions) janitor() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case now := <-ticker.C:
			s.mu.Lock()
			for id, e := range s.entries {
				// Submissão em voo nunca é descartada no meio.
				if now.Sub(e.lastSeen) > s.ttl && !e.wiz.inFlight() {
					delete(s.entries, id)
				}
			}
			s.mu.Unlock()
		}
	}
}

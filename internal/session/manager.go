package session

import (
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var ErrGameNotFound = errors.New("game not found")

// Manager 按 id 管理会话；内存里没有时尝试从存储恢复
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	opts     Options
	log      zerolog.Logger
}

func NewManager(opts Options, logger zerolog.Logger) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		opts:     opts.withDefaults(),
		log:      logger.With().Str("component", "session").Logger(),
	}
}

func (m *Manager) NewSession() (*Session, error) {
	id := uuid.NewString()
	s, err := New(id, m.opts)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.sessions[id] = s
	m.mu.Unlock()

	m.log.Debug().Str("game_id", id).Msg("new session")
	return s, nil
}

func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if ok {
		return s, nil
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrGameNotFound
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[id]; ok {
		return s, nil
	}
	s, ok, err := Restore(id, m.opts)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrGameNotFound
	}
	m.sessions[id] = s
	m.log.Info().Str("game_id", id).Int("moves", s.st.journal.Len()).Msg("session restored")
	return s, nil
}

// Dispatch 找到会话并执行命令
func (m *Manager) Dispatch(id string, cmd Command) (Effects, error) {
	s, err := m.Get(id)
	if err != nil {
		return Effects{}, err
	}
	eff, err := s.Dispatch(cmd)
	if err != nil {
		m.log.Debug().Str("game_id", id).Str("cmd", cmd.Name()).Err(err).Msg("command rejected")
		return Effects{}, err
	}
	return eff, nil
}

// Drop 从内存中移除会话，持久化数据保留
func (m *Manager) Drop(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

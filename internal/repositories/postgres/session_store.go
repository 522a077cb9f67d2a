package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/campus-iot/attendance-service/internal/models"
	"github.com/campus-iot/attendance-service/internal/repositories"
)

const sessionKey = "session:current"

// SessionStore keeps the single active session in Redis so it survives
// restarts; without Redis it degrades to an in-process slot.
type SessionStore struct {
	client *redis.Client

	mu      sync.RWMutex
	current *models.Session
}

func NewSessionStore(client *redis.Client) repositories.SessionRepository {
	return &SessionStore{client: client}
}

func (s *SessionStore) Get(ctx context.Context) (*models.Session, error) {
	if s.client == nil {
		s.mu.RLock()
		defer s.mu.RUnlock()
		return s.current, nil
	}

	data, err := s.client.Get(ctx, sessionKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	var session models.Session
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return &session, nil
}

func (s *SessionStore) Set(ctx context.Context, session *models.Session) error {
	if s.client == nil {
		s.mu.Lock()
		s.current = session
		s.mu.Unlock()
		return nil
	}

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := s.client.Set(ctx, sessionKey, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

func (s *SessionStore) Clear(ctx context.Context) error {
	if s.client == nil {
		s.mu.Lock()
		s.current = nil
		s.mu.Unlock()
		return nil
	}
	if err := s.client.Del(ctx, sessionKey).Err(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

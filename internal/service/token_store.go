package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// RefreshTokenStore guarda el jti de cada refresh token vigente. Un jti
// es de un solo uso: ConsumeOnce lo retira de forma atómica, así dos
// refresh concurrentes con el mismo token no pueden rotar ambos.
type RefreshTokenStore interface {
	Store(jti, userID string, ttl time.Duration) error
	// ConsumeOnce retira el jti y reporta si estaba vigente. Solo el
	// primer consumidor recibe true.
	ConsumeOnce(jti string) (bool, error)
	Revoke(jti string) error
}

type refreshEntry struct {
	userID    string
	expiresAt time.Time
}

type memoryRefreshTokenStore struct {
	mu      sync.Mutex
	entries map[string]refreshEntry
}

func NewMemoryRefreshTokenStore() RefreshTokenStore {
	return &memoryRefreshTokenStore{
		entries: make(map[string]refreshEntry),
	}
}

func (s *memoryRefreshTokenStore) Store(jti, userID string, ttl time.Duration) error {
	if strings.TrimSpace(jti) == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[jti] = refreshEntry{
		userID:    userID,
		expiresAt: time.Now().UTC().Add(ttl),
	}
	return nil
}

func (s *memoryRefreshTokenStore) ConsumeOnce(jti string) (bool, error) {
	if strings.TrimSpace(jti) == "" {
		return false, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[jti]
	if !ok {
		return false, nil
	}
	delete(s.entries, jti)
	if time.Now().UTC().After(entry.expiresAt) {
		return false, nil
	}
	return true, nil
}

func (s *memoryRefreshTokenStore) Revoke(jti string) error {
	if strings.TrimSpace(jti) == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, jti)
	return nil
}

const redisStoreTimeout = 500 * time.Millisecond

type redisRefreshTokenStore struct {
	client *redis.Client
	prefix string
}

func NewRedisRefreshTokenStore(client *redis.Client) RefreshTokenStore {
	if client == nil {
		return nil
	}
	return &redisRefreshTokenStore{
		client: client,
		prefix: "taskflow:refresh:",
	}
}

func (s *redisRefreshTokenStore) key(jti string) string {
	return s.prefix + jti
}

func (s *redisRefreshTokenStore) Store(jti, userID string, ttl time.Duration) error {
	if strings.TrimSpace(jti) == "" {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), redisStoreTimeout)
	defer cancel()
	return s.client.Set(ctx, s.key(jti), userID, ttl).Err()
}

// ConsumeOnce usa GETDEL: leer y borrar son una sola operación en redis,
// por lo que la garantía de un solo uso se sostiene entre instancias.
func (s *redisRefreshTokenStore) ConsumeOnce(jti string) (bool, error) {
	if strings.TrimSpace(jti) == "" {
		return false, nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), redisStoreTimeout)
	defer cancel()
	_, err := s.client.GetDel(ctx, s.key(jti)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *redisRefreshTokenStore) Revoke(jti string) error {
	if strings.TrimSpace(jti) == "" {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), redisStoreTimeout)
	defer cancel()
	return s.client.Del(ctx, s.key(jti)).Err()
}

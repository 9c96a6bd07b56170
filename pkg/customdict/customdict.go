// Package customdict stores words the user has accepted as correctly spelled.
package customdict

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/redis/go-redis/v9"
)

// DefaultKey is the Redis set holding custom words.
const DefaultKey = "wordcheck:custom_dict"

// WordStore is a set of custom words. Words are compared lowercased.
type WordStore interface {
	Add(ctx context.Context, word string) error
	Remove(ctx context.Context, word string) error
	Contains(ctx context.Context, word string) (bool, error)
	All(ctx context.Context) ([]string, error)
}

// Redis wraps a Redis client to store custom dictionary words.
type Redis struct {
	client *redis.Client
	key    string
}

// NewRedis creates a Redis store using key, or DefaultKey when key is empty.
func NewRedis(client *redis.Client, key string) *Redis {
	if key == "" {
		key = DefaultKey
	}
	return &Redis{client: client, key: key}
}

// Add inserts a word into the custom dictionary.
func (r *Redis) Add(ctx context.Context, word string) error {
	return r.client.SAdd(ctx, r.key, normalize(word)).Err()
}

// Remove deletes a word from the custom dictionary.
func (r *Redis) Remove(ctx context.Context, word string) error {
	return r.client.SRem(ctx, r.key, normalize(word)).Err()
}

// Contains reports whether word is in the custom dictionary.
func (r *Redis) Contains(ctx context.Context, word string) (bool, error) {
	return r.client.SIsMember(ctx, r.key, normalize(word)).Result()
}

// All returns all words stored in the custom dictionary.
func (r *Redis) All(ctx context.Context) ([]string, error) {
	words, err := r.client.SMembers(ctx, r.key).Result()
	if err != nil {
		return nil, err
	}
	sort.Strings(words)
	return words, nil
}

// Ping checks the connection.
func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close closes the underlying client.
func (r *Redis) Close() error {
	return r.client.Close()
}

// Memory is an in-process WordStore.
type Memory struct {
	mu    sync.RWMutex
	words map[string]struct{}
}

// NewMemory returns a store seeded with words.
func NewMemory(words ...string) *Memory {
	m := &Memory{words: make(map[string]struct{}, len(words))}
	for _, w := range words {
		m.words[normalize(w)] = struct{}{}
	}
	return m
}

func (m *Memory) Add(_ context.Context, word string) error {
	m.mu.Lock()
	m.words[normalize(word)] = struct{}{}
	m.mu.Unlock()
	return nil
}

func (m *Memory) Remove(_ context.Context, word string) error {
	m.mu.Lock()
	delete(m.words, normalize(word))
	m.mu.Unlock()
	return nil
}

func (m *Memory) Contains(_ context.Context, word string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.words[normalize(word)]
	return ok, nil
}

func (m *Memory) All(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	words := make([]string, 0, len(m.words))
	for w := range m.words {
		words = append(words, w)
	}
	sort.Strings(words)
	return words, nil
}

func normalize(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}

package otp

import (
	"context"
	"fmt"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"amigowallet/pkg/platform/sentinel"
)

// DefaultCleanupInterval controls how often expired codes are purged.
const DefaultCleanupInterval = 5 * time.Minute

// InMemoryOTPStore keeps pending codes keyed by email with per-entry expiry.
type InMemoryOTPStore struct {
	cache *gocache.Cache
}

// New constructs an in-memory OTP store. Entries saved with a non-positive
// ttl fall back to defaultTTL.
func New(defaultTTL, cleanupInterval time.Duration) *InMemoryOTPStore {
	return &InMemoryOTPStore{cache: gocache.New(defaultTTL, cleanupInterval)}
}

func (s *InMemoryOTPStore) Save(_ context.Context, email, code string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = gocache.DefaultExpiration
	}
	s.cache.Set(key(email), code, ttl)
	s.cache.Delete(attemptsKey(email))
	return nil
}

func (s *InMemoryOTPStore) Find(_ context.Context, email string) (string, error) {
	value, found := s.cache.Get(key(email))
	if !found {
		return "", fmt.Errorf("otp for %s: %w", email, sentinel.ErrNotFound)
	}
	code, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("otp for %s: unexpected type %T", email, value)
	}
	return code, nil
}

func (s *InMemoryOTPStore) Delete(_ context.Context, email string) error {
	s.cache.Delete(key(email))
	s.cache.Delete(attemptsKey(email))
	return nil
}

// RecordFailure counts a wrong code for email. The counter expires with the
// store's default TTL and is reset by Save.
func (s *InMemoryOTPStore) RecordFailure(_ context.Context, email string) (int, error) {
	k := attemptsKey(email)
	// Add fails when the counter exists, which is the common case.
	_ = s.cache.Add(k, 0, gocache.DefaultExpiration)
	n, err := s.cache.IncrementInt(k, 1)
	if err != nil {
		return 0, fmt.Errorf("record otp attempt: %w", err)
	}
	return n, nil
}

func key(email string) string {
	return strings.ToLower(email)
}

func attemptsKey(email string) string {
	return "attempts:" + key(email)
}

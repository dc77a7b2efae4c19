package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"clipmark/internal/models"

	"github.com/redis/go-redis/v9"
)

const (
	onboardingKeyPrefix = "onboarding:%s"
	// OnboardingTTL bounds how long a half-finished Google signup stays claimable.
	OnboardingTTL = time.Hour
)

func onboardingKey(token string) string {
	return fmt.Sprintf(onboardingKeyPrefix, token)
}

// OnboardingStore persists pending Google onboarding sessions in Redis.
type OnboardingStore struct {
	rdb *redis.Client
}

// NewOnboardingStore returns an OnboardingStore backed by the given Redis client.
func NewOnboardingStore(rdb *redis.Client) *OnboardingStore {
	return &OnboardingStore{rdb: rdb}
}

// Put stores the session under its token with a fresh TTL.
func (s *OnboardingStore) Put(ctx context.Context, token string, session *models.OnboardingSession) error {
	if s.rdb == nil {
		return errors.New("onboarding store unavailable: no redis client")
	}
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode onboarding session: %w", err)
	}
	if err := s.rdb.Set(ctx, onboardingKey(token), payload, OnboardingTTL).Err(); err != nil {
		return fmt.Errorf("failed to store onboarding session: %w", err)
	}
	return nil
}

// Get returns the session for the token, or nil if it does not exist or expired.
func (s *OnboardingStore) Get(ctx context.Context, token string) (*models.OnboardingSession, error) {
	if s.rdb == nil {
		return nil, errors.New("onboarding store unavailable: no redis client")
	}
	payload, err := s.rdb.Get(ctx, onboardingKey(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load onboarding session: %w", err)
	}
	var session models.OnboardingSession
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, fmt.Errorf("failed to decode onboarding session: %w", err)
	}
	return &session, nil
}

// Delete removes the session. Used once onboarding completes so the token
// cannot be replayed.
func (s *OnboardingStore) Delete(ctx context.Context, token string) error {
	if s.rdb == nil {
		return errors.New("onboarding store unavailable: no redis client")
	}
	if err := s.rdb.Del(ctx, onboardingKey(token)).Err(); err != nil {
		return fmt.Errorf("failed to delete onboarding session: %w", err)
	}
	return nil
}

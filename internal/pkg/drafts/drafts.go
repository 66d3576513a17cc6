package drafts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/greeklink/greeklink/internal/app/models/dto"
)

// ErrDraftNotFound is returned when no draft exists for the member
var ErrDraftNotFound = errors.New("draft not found")

// Store keeps autosaved profile form drafts in Redis with a TTL. Drafts
// are a convenience cache, losing one is never an error condition.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore creates a new draft Store
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

func draftKey(profileID int64) string {
	return fmt.Sprintf("profile:draft:%d", profileID)
}

// Save overwrites the member's draft and resets its TTL
func (s *Store) Save(ctx context.Context, draft *dto.ProfileDraft) error {
	payload, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("failed to marshal draft: %w", err)
	}

	if err := s.client.Set(ctx, draftKey(draft.ProfileID), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store draft: %w", err)
	}

	return nil
}

// Get retrieves the member's draft if one is still cached
func (s *Store) Get(ctx context.Context, profileID int64) (*dto.ProfileDraft, error) {
	payload, err := s.client.Get(ctx, draftKey(profileID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrDraftNotFound
		}
		return nil, fmt.Errorf("failed to read draft: %w", err)
	}

	var draft dto.ProfileDraft
	if err := json.Unmarshal(payload, &draft); err != nil {
		return nil, fmt.Errorf("failed to unmarshal draft: %w", err)
	}

	return &draft, nil
}

// Delete discards the member's draft
func (s *Store) Delete(ctx context.Context, profileID int64) error {
	if err := s.client.Del(ctx, draftKey(profileID)).Err(); err != nil {
		return fmt.Errorf("failed to delete draft: %w", err)
	}
	return nil
}

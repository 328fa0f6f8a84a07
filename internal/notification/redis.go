package notification

import (
	"context"

	"lead_dashboard_backend/platform/apperr"

	"github.com/redis/go-redis/v9"
)

const notifiedSetKey = "leads:hot:notified"

// RedisStore keeps the notified set in Redis so it survives restarts and
// is shared between instances.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Snapshot(ctx context.Context) (map[string]struct{}, error) {
	const op = "notification.RedisStore.Snapshot"

	emails, err := s.client.SMembers(ctx, notifiedSetKey).Result()
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUnavailable, "failed to read notified set", err).WithOp(op)
	}

	snapshot := make(map[string]struct{}, len(emails))
	for _, email := range emails {
		snapshot[email] = struct{}{}
	}
	return snapshot, nil
}

func (s *RedisStore) MarkAll(ctx context.Context, emails []string) error {
	const op = "notification.RedisStore.MarkAll"

	if len(emails) == 0 {
		return nil
	}
	members := make([]any, len(emails))
	for i, email := range emails {
		members[i] = email
	}
	if err := s.client.SAdd(ctx, notifiedSetKey, members...).Err(); err != nil {
		return apperr.Wrap(apperr.KindUnavailable, "failed to update notified set", err).WithOp(op)
	}
	return nil
}

var _ NotifiedStore = (*RedisStore)(nil)

package status

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/elabz/job-ingestion/internal/models"
	"github.com/elabz/job-ingestion/internal/xerrors"
)

const keyPrefix = "ingest:batch:"

// RedisStore keeps batch statuses in Redis with a TTL, so progress survives
// process restarts and can be shared across instances.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

func NewRedisStore(opts RedisOptions) *RedisStore {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	ttl := opts.TTL
	if ttl == 0 {
		ttl = 24 * time.Hour
	}
	return &RedisStore{client: client, ttl: ttl}
}

// NewRedisStoreWithClient is used by tests to back the store with miniredis.
func NewRedisStoreWithClient(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Put(ctx context.Context, batchID string, status models.BatchStatus) error {
	if err := s.client.Set(ctx, keyPrefix+batchID, status, s.ttl).Err(); err != nil {
		return xerrors.Unavailable("writing batch status", err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, batchID string) (models.BatchStatus, bool, error) {
	data, err := s.client.Get(ctx, keyPrefix+batchID).Bytes()
	if err == redis.Nil {
		return models.BatchStatus{}, false, nil
	}
	if err != nil {
		return models.BatchStatus{}, false, xerrors.Unavailable("reading batch status", err)
	}

	var st models.BatchStatus
	if err := st.UnmarshalBinary(data); err != nil {
		return models.BatchStatus{}, false, xerrors.Internal("decoding batch status", err)
	}
	return st, true, nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

package quiz

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/saulo-duarte/quizlens/internal/config"
)

// QuestionIndex serves the ordered question ids of a quiz.
type QuestionIndex interface {
	QuestionIDs(ctx context.Context, quizID uuid.UUID) ([]uuid.UUID, error)
	Invalidate(ctx context.Context, quizID uuid.UUID) error
}

type questionIDSource interface {
	ListQuestionIDs(ctx context.Context, quizID uuid.UUID) ([]uuid.UUID, error)
}

type dbQuestionIndex struct {
	source questionIDSource
}

func NewDBQuestionIndex(source questionIDSource) QuestionIndex {
	return &dbQuestionIndex{source: source}
}

func (i *dbQuestionIndex) QuestionIDs(ctx context.Context, quizID uuid.UUID) ([]uuid.UUID, error) {
	return i.source.ListQuestionIDs(ctx, quizID)
}

func (i *dbQuestionIndex) Invalidate(context.Context, uuid.UUID) error { return nil }

// RedisQuestionIndex caches the id list as a comma-separated string:
//
//	SET quiz:{quizID}:question_ids "{id1},{id2},..."
//
// A Redis failure degrades to reading the source directly.
type RedisQuestionIndex struct {
	client *redis.Client
	source questionIDSource
	ttl    time.Duration
	sf     singleflight.Group
}

func NewRedisQuestionIndex(client *redis.Client, source questionIDSource, ttl time.Duration) *RedisQuestionIndex {
	return &RedisQuestionIndex{client: client, source: source, ttl: ttl}
}

func (i *RedisQuestionIndex) QuestionIDs(ctx context.Context, quizID uuid.UUID) ([]uuid.UUID, error) {
	log := config.WithContext(ctx).WithField("quiz_id", quizID.String())
	key := questionIDsKey(quizID)

	raw, err := i.client.Get(ctx, key).Result()
	if err == nil {
		if ids, derr := decodeIDs(raw); derr == nil {
			return ids, nil
		}
		log.Warn("Entrada de cache corrompida; recarregando do banco")
	} else if !errors.Is(err, redis.Nil) {
		log.WithError(err).Warn("Falha ao ler índice de perguntas do Redis")
	}

	// Shared by every waiter on key, so one caller going away must not fail the rest.
	loadCtx := context.WithoutCancel(ctx)
	result, err, _ := i.sf.Do(key, func() (any, error) {
		ids, err := i.source.ListQuestionIDs(loadCtx, quizID)
		if err != nil {
			return nil, err
		}
		if err := i.client.Set(loadCtx, key, encodeIDs(ids), i.ttlWithJitter()).Err(); err != nil {
			log.WithError(err).Warn("Falha ao gravar índice de perguntas no Redis")
		}
		return ids, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]uuid.UUID), nil
}

func (i *RedisQuestionIndex) Invalidate(ctx context.Context, quizID uuid.UUID) error {
	return i.client.Del(ctx, questionIDsKey(quizID)).Err()
}

func (i *RedisQuestionIndex) ttlWithJitter() time.Duration {
	if i.ttl <= 0 {
		return 0
	}
	jitterMax := int64(i.ttl) / 10
	return i.ttl + time.Duration(rand.Int64N(jitterMax+1))
}

func questionIDsKey(quizID uuid.UUID) string {
	return "quiz:" + quizID.String() + ":question_ids"
}

func encodeIDs(ids []uuid.UUID) string {
	parts := make([]string, len(ids))
	for n, id := range ids {
		parts[n] = id.String()
	}
	return strings.Join(parts, ",")
}

func decodeIDs(raw string) ([]uuid.UUID, error) {
	if raw == "" {
		return []uuid.UUID{}, nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]uuid.UUID, 0, len(parts))
	for _, p := range parts {
		id, err := uuid.Parse(p)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

package queue

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// DefaultKeyPrefix namespaces every Redis key written by RedisQueue.
const DefaultKeyPrefix = "queuekit"

// RedisQueue maps the Queue contract onto Redis primitives. It is the
// only component aware of the physical key scheme and field encoding:
//
//	<prefix>:queue:<name>      LIST of job ids, RPUSH tail / LPOP head
//	<prefix>:job:<id>          HASH with the serialized job record
//	<prefix>:delayed:<name>    ZSET of job ids scored by due unix-milli
//	<prefix>:deadletter:<id>   HASH with the job snapshot + failure info
//
// LPOP removes exactly one element atomically, which is what makes Pop
// safe across any number of worker processes.
type RedisQueue struct {
	client redis.UniversalClient
	prefix string
}

// RedisQueueOption configures a RedisQueue.
type RedisQueueOption func(*RedisQueue)

// WithKeyPrefix overrides the key namespace, e.g. to run several
// isolated queue deployments against one Redis instance.
func WithKeyPrefix(prefix string) RedisQueueOption {
	return func(q *RedisQueue) {
		if prefix != "" {
			q.prefix = prefix
		}
	}
}

// NewRedisQueue creates a Redis-backed queue store over an established
// client connection. The caller owns the client lifecycle.
func NewRedisQueue(client redis.UniversalClient, opts ...RedisQueueOption) (*RedisQueue, error) {
	if client == nil {
		return nil, ErrQueueNil
	}

	q := &RedisQueue{
		client: client,
		prefix: DefaultKeyPrefix,
	}

	for _, opt := range opts {
		opt(q)
	}

	return q, nil
}

func (q *RedisQueue) queueKey(name string) string {
	return q.prefix + ":queue:" + name
}

func (q *RedisQueue) jobKey(id uuid.UUID) string {
	return q.prefix + ":job:" + id.String()
}

func (q *RedisQueue) delayedKey(name string) string {
	return q.prefix + ":delayed:" + name
}

func (q *RedisQueue) deadLetterKey(id uuid.UUID) string {
	return q.prefix + ":deadletter:" + id.String()
}

// Push implements Queue. Record and list entry are written in one
// MULTI/EXEC so a pending id never exists without its job hash.
func (q *RedisQueue) Push(ctx context.Context, job *Job) error {
	_, err := q.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, q.jobKey(job.ID), jobToFields(job))
		pipe.RPush(ctx, q.queueKey(job.Queue), job.ID.String())
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis push: %w", err)
	}
	return nil
}

// Pop implements Queue. LPOP claims the head id atomically; ids whose
// hash has vanished (crash-induced loss, manual cleanup) are skipped.
func (q *RedisQueue) Pop(ctx context.Context, queueName string) (*Job, error) {
	for {
		raw, err := q.client.LPop(ctx, q.queueKey(queueName)).Result()
		if err == redis.Nil {
			return nil, ErrQueueEmpty
		}
		if err != nil {
			return nil, fmt.Errorf("redis pop: %w", err)
		}

		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: queue %q holds malformed id %q", ErrCorruptJob, queueName, raw)
		}

		fields, err := q.client.HGetAll(ctx, q.jobKey(id)).Result()
		if err != nil {
			return nil, fmt.Errorf("redis pop: %w", err)
		}
		if len(fields) == 0 {
			// Dangling id without a record; move on to the next one.
			continue
		}

		job, err := jobFromFields(id, fields)
		if err != nil {
			// Return what decoded so the worker can dead-letter it.
			return job, fmt.Errorf("%w: job %s: %v", ErrCorruptJob, id, err)
		}

		return job, nil
	}
}

// Delete implements Queue. Unknown ids are a no-op.
func (q *RedisQueue) Delete(ctx context.Context, id uuid.UUID) error {
	queueName, err := q.client.HGet(ctx, q.jobKey(id), "queue").Result()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		return fmt.Errorf("redis delete: %w", err)
	}

	_, err = q.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, q.jobKey(id))
		pipe.LRem(ctx, q.queueKey(queueName), 0, id.String())
		pipe.ZRem(ctx, q.delayedKey(queueName), id.String())
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis delete: %w", err)
	}
	return nil
}

// Release implements Queue. The stored attempt count is refreshed from
// the in-flight job before the id re-enters circulation.
func (q *RedisQueue) Release(ctx context.Context, job *Job, delay time.Duration) error {
	exists, err := q.client.Exists(ctx, q.jobKey(job.ID)).Result()
	if err != nil {
		return fmt.Errorf("redis release: %w", err)
	}
	if exists == 0 {
		return nil
	}

	_, err = q.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, q.jobKey(job.ID), "attempts", job.Attempts)
		if delay <= 0 {
			pipe.RPush(ctx, q.queueKey(job.Queue), job.ID.String())
		} else {
			pipe.ZAdd(ctx, q.delayedKey(job.Queue), redis.Z{
				Score:  float64(time.Now().Add(delay).UnixMilli()),
				Member: job.ID.String(),
			})
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis release: %w", err)
	}
	return nil
}

// Fail implements Queue: snapshot the stored record into the
// dead-letter hash, then purge every other trace of the job.
func (q *RedisQueue) Fail(ctx context.Context, job *Job, reason string) error {
	fields, err := q.client.HGetAll(ctx, q.jobKey(job.ID)).Result()
	if err != nil {
		return fmt.Errorf("redis fail: %w", err)
	}
	if len(fields) == 0 {
		return nil
	}

	// Snapshot keeps whatever decoded even when the record is corrupt;
	// the raw payload stays inspectable either way.
	stored, _ := jobFromFields(job.ID, fields)
	if stored == nil {
		stored = job
	}

	dl := &DeadLetter{
		JobID:       job.ID,
		Queue:       stored.Queue,
		Type:        stored.Type,
		Payload:     stored.Payload,
		Attempts:    job.Attempts,
		MaxAttempts: stored.MaxAttempts,
		Error:       reason,
		FailedAt:    time.Now(),
		CreatedAt:   stored.CreatedAt,
	}

	_, err = q.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, q.deadLetterKey(job.ID), deadLetterToFields(dl))
		pipe.Del(ctx, q.jobKey(job.ID))
		pipe.LRem(ctx, q.queueKey(stored.Queue), 0, job.ID.String())
		pipe.ZRem(ctx, q.delayedKey(stored.Queue), job.ID.String())
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis fail: %w", err)
	}
	return nil
}

// PromoteDue implements Queue: drain due ids from the delayed ZSET back
// to the pending list tail, oldest due first.
func (q *RedisQueue) PromoteDue(ctx context.Context, queueName string, now time.Time) (int, error) {
	ids, err := q.client.ZRangeByScore(ctx, q.delayedKey(queueName), &redis.ZRangeBy{
		Min: "-inf",
		Max: strconv.FormatInt(now.UnixMilli(), 10),
	}).Result()
	if err != nil {
		return 0, fmt.Errorf("redis promote: %w", err)
	}

	promoted := 0
	for _, id := range ids {
		_, err := q.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.RPush(ctx, q.queueKey(queueName), id)
			pipe.ZRem(ctx, q.delayedKey(queueName), id)
			return nil
		})
		if err != nil {
			return promoted, fmt.Errorf("redis promote: %w", err)
		}
		promoted++
	}

	return promoted, nil
}

// HasPending implements PendingChecker by scanning the pending list and
// delayed set for a job of the given type. Linear in queue length;
// intended for the scheduler's low-frequency checks only.
func (q *RedisQueue) HasPending(ctx context.Context, queueName, jobType string) (bool, error) {
	ids, err := q.client.LRange(ctx, q.queueKey(queueName), 0, -1).Result()
	if err != nil {
		return false, fmt.Errorf("redis pending check: %w", err)
	}

	delayedIDs, err := q.client.ZRange(ctx, q.delayedKey(queueName), 0, -1).Result()
	if err != nil {
		return false, fmt.Errorf("redis pending check: %w", err)
	}

	for _, raw := range append(ids, delayedIDs...) {
		id, err := uuid.Parse(raw)
		if err != nil {
			continue
		}
		storedType, err := q.client.HGet(ctx, q.jobKey(id), "type").Result()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			return false, fmt.Errorf("redis pending check: %w", err)
		}
		if storedType == jobType {
			return true, nil
		}
	}

	return false, nil
}

// DeadLetter implements DeadLetterStore.
func (q *RedisQueue) DeadLetter(ctx context.Context, jobID uuid.UUID) (*DeadLetter, error) {
	fields, err := q.client.HGetAll(ctx, q.deadLetterKey(jobID)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis dead letter: %w", err)
	}
	if len(fields) == 0 {
		return nil, nil
	}

	return deadLetterFromFields(jobID, fields)
}

// DeadLetters implements DeadLetterStore via SCAN over the dead-letter
// namespace.
func (q *RedisQueue) DeadLetters(ctx context.Context) ([]DeadLetter, error) {
	var entries []DeadLetter

	iter := q.client.Scan(ctx, 0, q.prefix+":deadletter:*", 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		id, err := uuid.Parse(key[len(q.prefix+":deadletter:"):])
		if err != nil {
			continue
		}

		entry, err := q.DeadLetter(ctx, id)
		if err != nil {
			return nil, err
		}
		if entry != nil {
			entries = append(entries, *entry)
		}
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("redis dead letters: %w", err)
	}

	return entries, nil
}

package jobs

import (
	"context"
	"errors"
	"log"
	"time"
	"usatag/src/config"
	"usatag/src/types"

	"github.com/redis/go-redis/v9"
)

const redisPollTimeout = 5 * time.Second

type RedisQueue struct {
	client *redis.Client
	key    string
}

func NewRedisQueue(client *redis.Client, name string) *RedisQueue {
	return &RedisQueue{client: client, key: RedisKey(name)}
}

func RedisKey(name string) string {
	return "usatag:queue:" + name
}

func (q *RedisQueue) Name() string {
	return config.QUEUE_REDIS
}

func (q *RedisQueue) Enqueue(ctx context.Context, body string) error {
	return q.client.LPush(ctx, q.key, body).Err()
}

func (q *RedisQueue) Listen(ctx context.Context, handler types.Handler) error {
	log.Printf("%s: Listening for messages...", q.key)
	for {
		if ctx.Err() != nil {
			return nil
		}
		res, err := q.client.BRPop(ctx, redisPollTimeout, q.key).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			if ctx.Err() != nil {
				return nil
			}
			log.Printf("[redis] Error receiving messages: %s\n", err.Error())
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(time.Second):
			}
			continue
		}
		if len(res) == 2 {
			handler(res[1])
		}
	}
}

// Package cache caches per-user todo lists in Redis. The cache is
// optional: the service runs identically without it.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"go-mongo-todo/internal/models"
)

const keyPrefix = "todo:list:"

// TodoCache stores each user's full todo list under one key and drops
// it on every write for that user.
type TodoCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewTodoCache returns a new TodoCache.
func NewTodoCache(rdb *redis.Client, ttl time.Duration) *TodoCache {
	return &TodoCache{rdb: rdb, ttl: ttl}
}

func listKey(creator primitive.ObjectID) string {
	return keyPrefix + creator.Hex()
}

// GetList returns the cached list for creator, or nil on a miss.
func (c *TodoCache) GetList(ctx context.Context, creator primitive.ObjectID) ([]*models.Todo, error) {
	b, err := c.rdb.Get(ctx, listKey(creator)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var list []*models.Todo
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// SetList stores the list for creator.
func (c *TodoCache) SetList(ctx context.Context, creator primitive.ObjectID, list []*models.Todo) error {
	b, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, listKey(creator), b, c.ttl).Err()
}

// Invalidate drops the cached list for creator (called on every write).
func (c *TodoCache) Invalidate(ctx context.Context, creator primitive.ObjectID) error {
	return c.rdb.Del(ctx, listKey(creator)).Err()
}

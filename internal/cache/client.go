// Package cache wraps Redis as a short-lived read cache for board queries.
// The cache is best effort: the relational store stays the single source of
// truth, every task mutation invalidates the affected board key, and callers
// fall back to direct reads when Redis is absent or failing.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"clientboard/internal/models"

	"github.com/go-redis/redis/v8"
)

// ErrMiss is returned when no cached board exists for the key.
var ErrMiss = errors.New("cache miss")

type Client struct {
	rdb *redis.Client
}

func Initialize(redisURL string) (*Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	rdb := redis.NewClient(opt)

	// Test connection
	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// BoardKey builds the cache key for one operator's board of a client+period.
// The operator id is part of the key so one tenant can never read another
// tenant's cached rows.
func BoardKey(userID, clientID uint, period string) string {
	return fmt.Sprintf("board:%d:%d:%s", userID, clientID, period)
}

func (c *Client) SetBoard(userID, clientID uint, period string, tasks []models.ClientTask, ttl time.Duration) error {
	ctx := context.Background()
	jsonData, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("failed to marshal board: %w", err)
	}

	return c.rdb.Set(ctx, BoardKey(userID, clientID, period), jsonData, ttl).Err()
}

func (c *Client) GetBoard(userID, clientID uint, period string) ([]models.ClientTask, error) {
	ctx := context.Background()
	val, err := c.rdb.Get(ctx, BoardKey(userID, clientID, period)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrMiss
		}
		return nil, fmt.Errorf("failed to get board: %w", err)
	}

	var tasks []models.ClientTask
	if err := json.Unmarshal([]byte(val), &tasks); err != nil {
		return nil, fmt.Errorf("failed to unmarshal board: %w", err)
	}

	return tasks, nil
}

func (c *Client) InvalidateBoard(userID, clientID uint, period string) error {
	ctx := context.Background()
	return c.rdb.Del(ctx, BoardKey(userID, clientID, period)).Err()
}

// Close Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}

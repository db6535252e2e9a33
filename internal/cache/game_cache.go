package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"feudlive/internal/model"
)

// GameCache holds the latest game snapshot in Redis so state reads don't
// have to hit MongoDB.
type GameCache interface {
	SetState(ctx context.Context, game *model.Game) error
	GetState(ctx context.Context, code string) (*model.Game, error)
	Delete(ctx context.Context, code string) error
}

type gameCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewGameCache creates a new game snapshot cache
func NewGameCache(client *redis.Client) GameCache {
	return &gameCache{
		client: client,
		ttl:    24 * time.Hour, // Abandoned games expire after 24h
	}
}

func (c *gameCache) key(code string) string {
	return fmt.Sprintf("game:%s", code)
}

func (c *gameCache) SetState(ctx context.Context, game *model.Game) error {
	data, err := json.Marshal(game)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(game.Code), data, c.ttl).Err()
}

func (c *gameCache) GetState(ctx context.Context, code string) (*model.Game, error) {
	data, err := c.client.Get(ctx, c.key(code)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var game model.Game
	if err := json.Unmarshal([]byte(data), &game); err != nil {
		return nil, err
	}
	return &game, nil
}

func (c *gameCache) Delete(ctx context.Context, code string) error {
	return c.client.Del(ctx, c.key(code)).Err()
}

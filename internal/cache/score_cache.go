package cache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"feudlive/internal/model"
)

// ScoreCache handles Redis ZSET operations for the per-game scoreboard
type ScoreCache interface {
	SetScore(ctx context.Context, code string, team model.Team, score int) error
	GetScores(ctx context.Context, code string) ([]TeamScore, error)
	Delete(ctx context.Context, code string) error
}

// TeamScore is a single scoreboard entry, best team first
type TeamScore struct {
	Team  model.Team `json:"team"`
	Score int        `json:"score"`
}

type scoreCache struct {
	client *redis.Client
}

// NewScoreCache creates a new scoreboard cache
func NewScoreCache(client *redis.Client) ScoreCache {
	return &scoreCache{
		client: client,
	}
}

func (c *scoreCache) key(code string) string {
	return fmt.Sprintf("game:%s:scores", code)
}

func (c *scoreCache) SetScore(ctx context.Context, code string, team model.Team, score int) error {
	return c.client.ZAdd(ctx, c.key(code), redis.Z{
		Score:  float64(score),
		Member: string(team),
	}).Err()
}

func (c *scoreCache) GetScores(ctx context.Context, code string) ([]TeamScore, error) {
	results, err := c.client.ZRevRangeWithScores(ctx, c.key(code), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	scores := make([]TeamScore, len(results))
	for i, z := range results {
		scores[i] = TeamScore{
			Team:  model.Team(z.Member.(string)),
			Score: int(z.Score),
		}
	}
	return scores, nil
}

func (c *scoreCache) Delete(ctx context.Context, code string) error {
	return c.client.Del(ctx, c.key(code)).Err()
}

package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"
	"github.com/sumitchavan8070/snehvidya-sub001/internal/config"
	"github.com/sumitchavan8070/snehvidya-sub001/internal/model"
)

// RedisPaperCache stores student-facing exam papers in Redis so the exam-taking
// read path never touches the question table (or the correct answers) at all.
type RedisPaperCache struct {
	rdb *redis.Client
}

// NewRedisPaperCache creates a new RedisPaperCache.
func NewRedisPaperCache(rdb *redis.Client) *RedisPaperCache {
	return &RedisPaperCache{rdb: rdb}
}

// Store caches an exam paper without expiry; papers are invalidated explicitly
// when the exam is deleted.
func (c *RedisPaperCache) Store(ctx context.Context, paper *model.ExamPaper) error {
	payload, err := json.Marshal(paper)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, config.CacheKey.ExamPaperKey(paper.ExamID), payload, 0).Err()
}

// Get returns the cached paper, or nil on a cache miss.
func (c *RedisPaperCache) Get(ctx context.Context, examID int) (*model.ExamPaper, error) {
	data, err := c.rdb.Get(ctx, config.CacheKey.ExamPaperKey(examID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var paper model.ExamPaper
	if err := json.Unmarshal(data, &paper); err != nil {
		return nil, err
	}
	return &paper, nil
}

// Invalidate drops the cached paper for an exam.
func (c *RedisPaperCache) Invalidate(ctx context.Context, examID int) error {
	return c.rdb.Del(ctx, config.CacheKey.ExamPaperKey(examID)).Err()
}

package service

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/sumitchavan8070/snehvidya-sub001/internal/config"
	"github.com/sumitchavan8070/snehvidya-sub001/internal/model"
)

// RedisGradedNotifier publishes graded-submission events on a per-exam Redis
// channel so live monitor sockets can stream results as students finish.
type RedisGradedNotifier struct {
	rdb *redis.Client
	log zerolog.Logger
}

// NewRedisGradedNotifier creates a new RedisGradedNotifier.
func NewRedisGradedNotifier(rdb *redis.Client, log zerolog.Logger) *RedisGradedNotifier {
	return &RedisGradedNotifier{
		rdb: rdb,
		log: log.With().Str("component", "graded_notifier").Logger(),
	}
}

// SubmissionGraded publishes the event. Failures are logged and swallowed:
// monitoring must never fail a student's submission.
func (n *RedisGradedNotifier) SubmissionGraded(ctx context.Context, event model.SubmissionGradedEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		n.log.Warn().Err(err).Int("exam_id", event.ExamID).Msg("failed to encode graded event")
		return
	}

	channel := config.CacheKey.ExamMonitorChannel(event.ExamID)
	if err := n.rdb.Publish(ctx, channel, payload).Err(); err != nil {
		n.log.Warn().Err(err).Str("channel", channel).Msg("failed to publish graded event")
	}
}

package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// ExamPaperKey returns the cache key for an exam's student-facing paper
// (questions without correct options).
func (r *CacheKeyStruct) ExamPaperKey(examID int) string {
	return fmt.Sprintf("exam:%d:paper", examID)
}

// ExamMonitorChannel returns the Redis PubSub channel carrying graded-submission
// events for an exam's live monitor.
func (r *CacheKeyStruct) ExamMonitorChannel(examID int) string {
	return fmt.Sprintf("exam:%d:monitor", examID)
}

var CacheKey = NewCacheKeyStruct()

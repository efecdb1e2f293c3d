package domain

import (
	"context"
	"time"
)

// RawMessage is a recommendation request as read from the request topic,
// with enough metadata to commit its offset once handled.
type RawMessage struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

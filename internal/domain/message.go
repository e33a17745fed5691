package domain

import (
	"bytes"
	"context"
	"time"
)

// RawMessage is an unprocessed farm conditions request read from the request topic.
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

// ParseRawMessage decodes a message value into FarmConditions with the same
// rules as the HTTP API. Range checks are not applied here.
func ParseRawMessage(raw RawMessage) (FarmConditions, error) {
	return DecodeConditions(bytes.NewReader(raw.Value))
}

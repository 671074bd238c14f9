// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"thumbsmith/internal/models"
)

const (
	// DefaultHistoryKey is the Valkey list holding recent generations.
	DefaultHistoryKey = "generations:recent"

	// DefaultHistorySize is how many generations the list retains.
	DefaultHistorySize = 50
)

// GenerationLog keeps the most recent successful generations in a capped
// Valkey list, newest first.
type GenerationLog struct {
	client *redis.Client
	key    string
	size   int64
}

// NewGenerationLog creates a log backed by the given Valkey client. An
// empty key or non-positive size selects the defaults.
func NewGenerationLog(client *redis.Client, key string, size int) *GenerationLog {
	if key == "" {
		key = DefaultHistoryKey
	}
	if size <= 0 {
		size = DefaultHistorySize
	}
	return &GenerationLog{client: client, key: key, size: int64(size)}
}

// Record prepends g and trims the list to its capacity in one round trip.
func (l *GenerationLog) Record(ctx context.Context, g models.Generation) error {
	data, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("encode generation: %w", err)
	}

	pipe := l.client.TxPipeline()
	pipe.LPush(ctx, l.key, data)
	pipe.LTrim(ctx, l.key, 0, l.size-1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("record generation: %w", err)
	}
	return nil
}

// Recent returns up to limit generations, newest first. Entries that no
// longer decode are skipped.
func (l *GenerationLog) Recent(ctx context.Context, limit int) ([]models.Generation, error) {
	if limit <= 0 || int64(limit) > l.size {
		limit = int(l.size)
	}

	raw, err := l.client.LRange(ctx, l.key, 0, int64(limit)-1).Result()
	if err == redis.Nil {
		return []models.Generation{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list generations: %w", err)
	}

	out := make([]models.Generation, 0, len(raw))
	for _, item := range raw {
		var g models.Generation
		if err := json.Unmarshal([]byte(item), &g); err != nil {
			slog.Warn("skipping corrupt generation entry", "key", l.key, "error", err)
			continue
		}
		out = append(out, g)
	}
	return out, nil
}

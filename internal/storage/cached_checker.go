package storage

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"

	"markwright/internal/checker"
	"markwright/internal/contextutil"
	"markwright/internal/languagetool"
)

// CacheKey derives the cache key for one segment of text. The language and
// level are part of the key because both change what the checker reports.
func CacheKey(language, level, text string) string {
	sum := sha256.Sum256([]byte(language + "\x00" + level + "\x00" + text))
	return fmt.Sprintf("%x", sum)
}

// CachingChecker wraps a SegmentChecker with a persistent result cache.
// Cache failures degrade to a remote check rather than failing the segment.
type CachingChecker struct {
	inner    checker.SegmentChecker
	cache    CheckCache
	language string
	level    string
}

// NewCachingChecker creates a CachingChecker keyed on language and level.
func NewCachingChecker(inner checker.SegmentChecker, cache CheckCache, language, level string) *CachingChecker {
	return &CachingChecker{
		inner:    inner,
		cache:    cache,
		language: language,
		level:    level,
	}
}

// Check returns cached matches for text when present, otherwise delegates to
// the wrapped checker and stores its result.
func (c *CachingChecker) Check(ctx context.Context, text string) ([]languagetool.Match, error) {
	logger := contextutil.LoggerFromContext(ctx)
	key := CacheKey(c.language, c.level, text)

	matches, err := c.cache.Get(ctx, key)
	if err == nil {
		logger.DebugContext(ctx, "segment served from cache", "key_hash", key)
		return matches, nil
	}
	if !errors.Is(err, ErrNotFound) {
		logger.WarnContext(ctx, "cache lookup failed", "error", err)
	}

	matches, err = c.inner.Check(ctx, text)
	if err != nil {
		return nil, err
	}

	if err := c.cache.Put(ctx, key, matches); err != nil {
		// A failed write costs a future cache hit, not this result.
		logger.WarnContext(ctx, "failed to cache check result", "error", err)
	}

	return matches, nil
}

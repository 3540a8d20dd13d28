package checker

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_segment_checker.go -package=mocks markwright/internal/checker SegmentChecker

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"markwright/internal/chunk"
	"markwright/internal/contextutil"
	"markwright/internal/languagetool"
)

// DefaultConcurrency bounds in-flight segment checks when the caller does
// not configure a pool size.
const DefaultConcurrency = 4

// ErrCancelled is returned by CheckDocument when the context ends before
// every segment was checked. The report returned alongside it holds the
// findings of the segments that did complete.
var ErrCancelled = errors.New("checker: document check cancelled")

// SegmentChecker checks one segment of text. *languagetool.Client satisfies
// it, as do caching decorators around it.
type SegmentChecker interface {
	// Check returns the normalized findings for one segment's text.
	Check(ctx context.Context, text string) ([]languagetool.Match, error)
}

// SegmentFailure records one segment whose check failed while the rest of
// the document carried on.
type SegmentFailure struct {
	Index   int
	Segment chunk.Segment
	Err     error
}

// Report is the outcome of checking one document: findings concatenated in
// segment order, plus the segments that failed.
type Report struct {
	Matches  []languagetool.Match
	Failures []SegmentFailure
	Segments int
}

// Checker fans a document's segments out over a fixed worker pool and merges
// the findings back in document order.
type Checker struct {
	remote      SegmentChecker
	maxSegment  int
	concurrency int
}

// NewChecker creates a document checker. Non-positive maxSegment or
// concurrency fall back to the package defaults.
func NewChecker(remote SegmentChecker, maxSegment, concurrency int) *Checker {
	if maxSegment <= 0 {
		maxSegment = chunk.DefaultMaxSegment
	}
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	return &Checker{
		remote:      remote,
		maxSegment:  maxSegment,
		concurrency: concurrency,
	}
}

// CheckDocument partitions text into segments, checks them concurrently, and
// returns all findings in document order. A segment whose check fails is
// logged and recorded in the report without stopping the others. When ctx
// ends early the report carries whatever completed and the error is
// ErrCancelled.
func (c *Checker) CheckDocument(ctx context.Context, text string) (*Report, error) {
	logger := contextutil.LoggerFromContext(ctx)

	segs, err := chunk.Segments(text, c.maxSegment)
	if err != nil {
		return nil, fmt.Errorf("failed to partition document: %w", err)
	}
	if len(segs) == 0 {
		return &Report{}, nil
	}

	// One result slot per segment. A worker writes only the slot whose
	// index it drew, so the merge below needs no locking.
	slots := make([][]languagetool.Match, len(segs))
	errs := make([]error, len(segs))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < c.concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				matches, err := c.remote.Check(ctx, segs[idx].Text)
				if err != nil {
					errs[idx] = err
					continue
				}
				slots[idx] = matches
			}
		}()
	}

feed:
	for idx := range segs {
		select {
		case jobs <- idx:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	report := &Report{Segments: len(segs)}
	for idx, seg := range segs {
		if segErr := errs[idx]; segErr != nil {
			// Fail open: the rest of the document's findings still count.
			logger.WarnContext(ctx, "segment check failed",
				"segment", idx,
				"start", seg.Start,
				"end", seg.End,
				"error", segErr)
			report.Failures = append(report.Failures, SegmentFailure{
				Index:   idx,
				Segment: seg,
				Err:     segErr,
			})
			continue
		}
		report.Matches = append(report.Matches, slots[idx]...)
	}

	if ctx.Err() != nil {
		return report, fmt.Errorf("%w: %v", ErrCancelled, ctx.Err())
	}

	logger.InfoContext(ctx, "document check completed",
		"segments", len(segs),
		"matches", len(report.Matches),
		"failed_segments", len(report.Failures))

	return report, nil
}

package checker

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"
	"testing"
	"time"

	"markwright/internal/chunk"
	"markwright/internal/languagetool"
)

// checkFunc adapts a function to the SegmentChecker interface.
type checkFunc func(ctx context.Context, text string) ([]languagetool.Match, error)

func (f checkFunc) Check(ctx context.Context, text string) ([]languagetool.Match, error) {
	return f(ctx, text)
}

const testDoc = "One one one. Two two two. Three three. Four four four. Five five."

// segmentsOf partitions testDoc the way the checker under test will.
func segmentsOf(t *testing.T, max int) []chunk.Segment {
	t.Helper()
	segs, err := chunk.Segments(testDoc, max)
	if err != nil {
		t.Fatalf("Segments() unexpected error: %v", err)
	}
	if len(segs) < 5 {
		t.Fatalf("test document produced %d segments, want at least 5", len(segs))
	}
	return segs
}

func indexByText(segs []chunk.Segment) map[string]int {
	byText := make(map[string]int, len(segs))
	for i, seg := range segs {
		byText[seg.Text] = i
	}
	return byText
}

func TestChecker_CheckDocument_OrderPreserved(t *testing.T) {
	segs := segmentsOf(t, 15)
	byText := indexByText(segs)

	// Later segments respond first so completion order inverts segment
	// order; the report must come back in segment order anyway.
	stub := checkFunc(func(_ context.Context, text string) ([]languagetool.Match, error) {
		idx := byText[text]
		time.Sleep(time.Duration(len(segs)-idx) * 2 * time.Millisecond)
		return []languagetool.Match{{Message: text}}, nil
	})

	report, err := NewChecker(stub, 15, len(segs)).CheckDocument(context.Background(), testDoc)
	if err != nil {
		t.Fatalf("CheckDocument() unexpected error: %v", err)
	}

	if len(report.Matches) != len(segs) {
		t.Fatalf("CheckDocument() returned %d matches, want %d", len(report.Matches), len(segs))
	}
	for i, m := range report.Matches {
		if m.Message != segs[i].Text {
			t.Errorf("match %d = %q, want %q (completion order leaked into report)", i, m.Message, segs[i].Text)
		}
	}
	if len(report.Failures) != 0 {
		t.Errorf("CheckDocument() recorded %d failures, want 0", len(report.Failures))
	}
	if report.Segments != len(segs) {
		t.Errorf("CheckDocument() Segments = %d, want %d", report.Segments, len(segs))
	}
}

func TestChecker_CheckDocument_FailOpen(t *testing.T) {
	segs := segmentsOf(t, 15)
	byText := indexByText(segs)
	failIdx := 2

	stub := checkFunc(func(_ context.Context, text string) ([]languagetool.Match, error) {
		if byText[text] == failIdx {
			return nil, fmt.Errorf("%w: connection reset", languagetool.ErrTransport)
		}
		return []languagetool.Match{{Message: text}}, nil
	})

	report, err := NewChecker(stub, 15, 3).CheckDocument(context.Background(), testDoc)
	if err != nil {
		t.Fatalf("CheckDocument() unexpected error: %v", err)
	}

	var wantTexts []string
	for i, seg := range segs {
		if i != failIdx {
			wantTexts = append(wantTexts, seg.Text)
		}
	}
	if len(report.Matches) != len(wantTexts) {
		t.Fatalf("CheckDocument() returned %d matches, want %d", len(report.Matches), len(wantTexts))
	}
	for i, m := range report.Matches {
		if m.Message != wantTexts[i] {
			t.Errorf("match %d = %q, want %q", i, m.Message, wantTexts[i])
		}
	}

	if len(report.Failures) != 1 {
		t.Fatalf("CheckDocument() recorded %d failures, want 1", len(report.Failures))
	}
	failure := report.Failures[0]
	if failure.Index != failIdx {
		t.Errorf("failure index = %d, want %d", failure.Index, failIdx)
	}
	if failure.Segment != segs[failIdx] {
		t.Errorf("failure segment = %+v, want %+v", failure.Segment, segs[failIdx])
	}
	if !errors.Is(failure.Err, languagetool.ErrTransport) {
		t.Errorf("failure error = %v, want transport failure", failure.Err)
	}
}

func TestChecker_CheckDocument_Cancelled(t *testing.T) {
	segs := segmentsOf(t, 15)
	byText := indexByText(segs)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	first := make(chan struct{})
	var once sync.Once

	// The first segment answers immediately; everything else hangs until
	// the run is cancelled.
	stub := checkFunc(func(ctx context.Context, text string) ([]languagetool.Match, error) {
		if byText[text] == 0 {
			once.Do(func() { close(first) })
			return []languagetool.Match{{Message: text}}, nil
		}
		<-ctx.Done()
		return nil, ctx.Err()
	})

	go func() {
		<-first
		cancel()
	}()

	report, err := NewChecker(stub, 15, 2).CheckDocument(ctx, testDoc)
	if !errors.Is(err, ErrCancelled) {
		t.Fatalf("CheckDocument() error = %v, want ErrCancelled", err)
	}
	if report == nil {
		t.Fatal("CheckDocument() returned nil report on cancellation")
	}

	if len(report.Matches) != 1 || report.Matches[0].Message != segs[0].Text {
		t.Errorf("cancelled report matches = %+v, want the first segment's finding", report.Matches)
	}
}

func TestChecker_CheckDocument_Idempotent(t *testing.T) {
	segs := segmentsOf(t, 15)
	byText := indexByText(segs)
	segErr := fmt.Errorf("%w: status 500", languagetool.ErrResponseParse)

	stub := checkFunc(func(_ context.Context, text string) ([]languagetool.Match, error) {
		idx := byText[text]
		if idx == 1 {
			return nil, segErr
		}
		return []languagetool.Match{{Message: text, RuleDescription: "stub"}}, nil
	})

	c := NewChecker(stub, 15, 4)
	first, err := c.CheckDocument(context.Background(), testDoc)
	if err != nil {
		t.Fatalf("CheckDocument() unexpected error: %v", err)
	}
	second, err := c.CheckDocument(context.Background(), testDoc)
	if err != nil {
		t.Fatalf("CheckDocument() unexpected error: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated checks diverged:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestChecker_CheckDocument_BoundedConcurrency(t *testing.T) {
	const workers = 3

	var mu sync.Mutex
	inFlight, peak := 0, 0

	stub := checkFunc(func(_ context.Context, _ string) ([]languagetool.Match, error) {
		mu.Lock()
		inFlight++
		if inFlight > peak {
			peak = inFlight
		}
		mu.Unlock()

		time.Sleep(2 * time.Millisecond)

		mu.Lock()
		inFlight--
		mu.Unlock()
		return nil, nil
	})

	_, err := NewChecker(stub, 15, workers).CheckDocument(context.Background(), testDoc)
	if err != nil {
		t.Fatalf("CheckDocument() unexpected error: %v", err)
	}

	if peak > workers {
		t.Errorf("observed %d concurrent checks, pool size is %d", peak, workers)
	}
}

func TestChecker_CheckDocument_EmptyDocument(t *testing.T) {
	stub := checkFunc(func(_ context.Context, _ string) ([]languagetool.Match, error) {
		t.Error("Check() called for an empty document")
		return nil, nil
	})

	report, err := NewChecker(stub, 0, 0).CheckDocument(context.Background(), "")
	if err != nil {
		t.Fatalf("CheckDocument() unexpected error: %v", err)
	}
	if len(report.Matches) != 0 || report.Segments != 0 {
		t.Errorf("empty document report = %+v, want empty", report)
	}
}

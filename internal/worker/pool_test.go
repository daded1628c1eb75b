package worker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Capston-25-1/Youtube-FactChecker/internal/model"
)

type sleepJob struct {
	id    int
	delay time.Duration
	fail  bool
}

type sleepResult struct {
	id  int
	err error
}

func (r *sleepResult) GetError() error { return r.err }

func (j *sleepJob) Execute(ctx context.Context) Result {
	select {
	case <-time.After(j.delay):
	case <-ctx.Done():
		return &sleepResult{id: j.id, err: ctx.Err()}
	}
	if j.fail {
		return &sleepResult{id: j.id, err: errors.New("job failed")}
	}
	return &sleepResult{id: j.id}
}

func TestPoolRunsAllJobs(t *testing.T) {
	pool := NewPool(3)
	pool.Start()

	for i := 0; i < 10; i++ {
		pool.Submit(&sleepJob{id: i, delay: time.Millisecond})
	}

	results := pool.Wait()
	if len(results) != 10 {
		t.Fatalf("expected 10 results, got %d", len(results))
	}

	var ids []int
	for _, r := range results {
		sr := r.(*sleepResult)
		if sr.err != nil {
			t.Errorf("job %d: unexpected error: %v", sr.id, sr.err)
		}
		ids = append(ids, sr.id)
	}
	sort.Ints(ids)
	for i, id := range ids {
		if id != i {
			t.Fatalf("missing job result, got ids %v", ids)
		}
	}
}

func TestPoolReportsJobErrors(t *testing.T) {
	pool := NewPool(2)
	pool.Start()

	pool.Submit(&sleepJob{id: 0})
	pool.Submit(&sleepJob{id: 1, fail: true})

	results := pool.Wait()
	failed := 0
	for _, r := range results {
		if r.GetError() != nil {
			failed++
		}
	}
	if failed != 1 {
		t.Fatalf("expected 1 failed job, got %d", failed)
	}
}

func TestPoolZeroWorkersClampedToOne(t *testing.T) {
	pool := NewPool(0)
	pool.Start()
	pool.Submit(&sleepJob{id: 0})
	results := pool.Wait()
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
}

type countingChecker struct {
	calls atomic.Int32
	fail  string
}

func (c *countingChecker) CheckURL(_ context.Context, url string) (*model.Report, error) {
	c.calls.Add(1)
	if url == c.fail {
		return nil, errors.New("unreachable")
	}
	return &model.Report{SourceURL: url}, nil
}

func TestProcessURLs(t *testing.T) {
	checker := &countingChecker{fail: "https://example.com/bad"}
	urls := []string{
		"https://example.com/a",
		"https://example.com/bad",
		"https://example.com/b",
	}

	results := ProcessURLs(checker, urls, 2)
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if got := checker.calls.Load(); got != 3 {
		t.Fatalf("expected 3 checker calls, got %d", got)
	}

	byURL := make(map[string]*CheckResult)
	for _, r := range results {
		byURL[r.URL] = r
	}
	if byURL["https://example.com/bad"].Err == nil {
		t.Fatal("expected error for failing URL")
	}
	if r := byURL["https://example.com/a"]; r.Err != nil || r.Report == nil {
		t.Fatal("expected report for good URL")
	}
}

func TestReadURLsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "urls.txt")
	content := "https://example.com/a\n\n# comment\nhttps://example.com/b\nhttps://example.com/a\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	urls, err := ReadURLsFromFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"https://example.com/a", "https://example.com/b"}
	if len(urls) != len(want) {
		t.Fatalf("expected %d urls, got %v", len(want), urls)
	}
	for i := range want {
		if urls[i] != want[i] {
			t.Fatalf("url %d: expected %q, got %q", i, want[i], urls[i])
		}
	}
}

func TestReadURLsFromFileMissing(t *testing.T) {
	if _, err := ReadURLsFromFile(filepath.Join(t.TempDir(), "absent.txt")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

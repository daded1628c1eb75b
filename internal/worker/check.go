package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/Capston-25-1/Youtube-FactChecker/internal/model"
)

// Checker runs a full discovery and analysis pass over one watch page.
type Checker interface {
	CheckURL(ctx context.Context, url string) (*model.Report, error)
}

// CheckJob checks a single URL.
type CheckJob struct {
	URL     string
	Checker Checker
}

// CheckResult carries the outcome of one URL check.
type CheckResult struct {
	URL    string
	Report *model.Report
	Err    error
}

// GetError implements Result.
func (r *CheckResult) GetError() error {
	return r.Err
}

// Execute implements Job.
func (j *CheckJob) Execute(ctx context.Context) Result {
	report, err := j.Checker.CheckURL(ctx, j.URL)
	return &CheckResult{URL: j.URL, Report: report, Err: err}
}

// ProcessURLs checks every URL through a pool of the given size and returns
// one result per URL. Order is not guaranteed.
func ProcessURLs(checker Checker, urls []string, concurrency int) []*CheckResult {
	pool := NewPool(concurrency)
	pool.Start()

	for _, url := range urls {
		pool.Submit(&CheckJob{URL: url, Checker: checker})
	}

	raw := pool.Wait()
	results := make([]*CheckResult, 0, len(raw))
	for _, r := range raw {
		if cr, ok := r.(*CheckResult); ok {
			results = append(results, cr)
		}
	}
	return results
}

// ReadURLsFromFile reads one URL per line, skipping blanks and # comments.
// Duplicate URLs are dropped.
func ReadURLsFromFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open url file: %w", err)
	}
	defer f.Close()

	seen := make(map[string]bool)
	var urls []string

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if seen[line] {
			continue
		}
		seen[line] = true
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read url file: %w", err)
	}
	return urls, nil
}

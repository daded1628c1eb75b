// Package pipeline wires the source, scheduler and orchestrator into the
// two run modes: a long-running watch and a one-shot check that produces
// a report.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/Capston-25-1/Youtube-FactChecker/internal/cache"
	"github.com/Capston-25-1/Youtube-FactChecker/internal/llm"
	"github.com/Capston-25-1/Youtube-FactChecker/internal/model"
	"github.com/Capston-25-1/Youtube-FactChecker/internal/orchestrate"
	"github.com/Capston-25-1/Youtube-FactChecker/internal/remote"
	"github.com/Capston-25-1/Youtube-FactChecker/internal/schedule"
	"github.com/Capston-25-1/Youtube-FactChecker/internal/source"
	"github.com/Capston-25-1/Youtube-FactChecker/internal/track"
)

// Pipeline runs discovery, extraction scheduling and per-comment analysis
// over one source.
type Pipeline struct {
	config       *model.Config
	src          source.Source
	tracker      *track.Tracker
	scheduler    *schedule.Scheduler
	orchestrator *orchestrate.Orchestrator

	// auto triggers analysis as soon as an item becomes ready, the watch
	// mode behavior. One-shot checks leave it off and drive analysis
	// themselves.
	auto bool

	mu     sync.Mutex
	runCtx context.Context
}

// New assembles a pipeline over the given source. renderer may be nil for
// callers that only want the report.
func New(cfg *model.Config, src source.Source, renderer orchestrate.Renderer, auto bool) *Pipeline {
	apiClient := remote.NewHTTPClient(cfg.HTTP, cfg.API.Timeout)

	// Response cache shared between the extraction and analysis clients.
	var c cache.Cache
	if cfg.Cache.Enabled {
		c = cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
	}

	// Extraction backend: an LLM provider when configured, the remote
	// extraction service otherwise.
	var extractor schedule.Extractor = remote.NewExtractClient(cfg.API.BaseURL, apiClient, c)
	if cfg.LLM.Provider != "" {
		provider, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM))
		if err != nil {
			fmt.Printf("Warning: Failed to initialize LLM provider: %v\n", err)
		} else if provider != nil {
			extractor = provider
		}
	}

	analyzer := remote.NewAnalyzeClient(cfg.API.BaseURL, apiClient, c)

	tracker := track.New()
	orchestrator := orchestrate.New(analyzer, tracker, renderer, cfg.Concurrency.AnalysisWorkers)

	p := &Pipeline{
		config:       cfg,
		src:          src,
		tracker:      tracker,
		orchestrator: orchestrator,
		auto:         auto,
		runCtx:       context.Background(),
	}
	p.scheduler = schedule.New(src, tracker, extractor, p.onReady, cfg.Scheduler.QuietPeriod)

	if cfg.Output.Verbose {
		p.scheduler.Logf = log.Printf
		orchestrator.Logf = log.Printf
	}

	return p
}

// onReady fires when an item's extraction has been cached and its analysis
// affordance attached.
func (p *Pipeline) onReady(item *source.Item) {
	if !p.auto {
		return
	}
	p.mu.Lock()
	ctx := p.runCtx
	p.mu.Unlock()

	go p.orchestrator.Analyze(ctx, item, p.src.Context())
}

// Run watches the source until ctx is cancelled, extracting and analyzing
// items as they appear.
func (p *Pipeline) Run(ctx context.Context) error {
	p.mu.Lock()
	p.runCtx = ctx
	p.mu.Unlock()

	p.scheduler.Start()
	defer p.scheduler.Stop()

	<-ctx.Done()
	if ctx.Err() == context.Canceled {
		return nil
	}
	return ctx.Err()
}

// CheckAll runs a single synchronous pass: discover every current item,
// extract claims in one batch, analyze each claim-bearing comment and
// collect everything into a report.
func (p *Pipeline) CheckAll(ctx context.Context) *model.Report {
	// 1. Discover and batch-extract synchronously.
	p.scheduler.OnChange()
	p.scheduler.Flush(ctx)

	vctx := p.src.Context()
	report := &model.Report{
		CheckedAt: time.Now().UTC(),
		Context:   vctx,
	}

	// 2. Analyze each comment that got claims and keep everything, claim
	// bearing or not, so the report reflects the whole page.
	for _, item := range p.src.Items() {
		comment := model.CommentReport{Text: p.src.Text(item)}

		claims, summary, ok := item.Extraction()
		if ok {
			comment.Claims = claims
			if report.Summary == "" {
				report.Summary = summary
			}
			if results, ran := p.orchestrator.Analyze(ctx, item, vctx); ran {
				comment.Results = results
			}
		}

		report.Comments = append(report.Comments, comment)
	}

	return report
}

// Checker builds a fresh pipeline per URL, the shape the batch worker
// expects.
type Checker struct {
	config *model.Config
}

// NewChecker creates a URL checker with the given configuration.
func NewChecker(cfg *model.Config) *Checker {
	return &Checker{config: cfg}
}

// CheckURL fetches the page at url and runs a one-shot check over it.
func (c *Checker) CheckURL(ctx context.Context, url string) (*model.Report, error) {
	cfg := c.config
	pageClient := remote.NewHTTPClient(cfg.HTTP, cfg.HTTP.Timeout)

	src := source.NewPage(url, pageClient, cfg.HTTP.UserAgent, cfg.HTTP.MaxBodyBytes, cfg.Scheduler.PollInterval)
	if _, err := src.Refresh(ctx); err != nil {
		return nil, fmt.Errorf("fetch page: %w", err)
	}

	p := New(cfg, src, nil, false)
	report := p.CheckAll(ctx)
	report.SourceURL = url
	return report, nil
}

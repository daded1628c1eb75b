package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Capston-25-1/Youtube-FactChecker/internal/pipeline"
	"github.com/Capston-25-1/Youtube-FactChecker/internal/remote"
	"github.com/Capston-25-1/Youtube-FactChecker/internal/render"
	"github.com/Capston-25-1/Youtube-FactChecker/internal/source"
	"github.com/spf13/cobra"
)

var (
	quietPeriod  time.Duration
	pollInterval time.Duration
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch <url>",
	Short: "Watch a video page and fact-check comments as they appear",
	Long: `Watch polls a video page for new comments and fact-checks them
continuously:
- New comments are collected until the page goes quiet, then claims are
  extracted for the whole burst in one call
- Each claim-bearing comment is fact-checked as soon as its claims are
  ready
- Runs until interrupted (Ctrl-C)

Example:
  factcheck watch https://www.youtube.com/watch?v=dQw4w9WgXcQ
  factcheck watch https://example.com/watch --quiet-period 5s --poll 10s`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().DurationVar(&quietPeriod, "quiet-period", 3*time.Second, "settle time before a comment burst is extracted")
	watchCmd.Flags().DurationVar(&pollInterval, "poll", 5*time.Second, "page poll interval")

	// Backend flags
	watchCmd.Flags().StringVar(&apiBase, "api", "", "fact-check service base URL (default http://localhost:5000)")
	watchCmd.Flags().IntVar(&workers, "workers", 0, "max concurrent analysis calls per comment (0 = unbounded)")

	// HTTP flags
	watchCmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "per-request HTTP timeout")
	watchCmd.Flags().StringVar(&userAgent, "ua", "factcheck/0.1 (+https://github.com/Capston-25-1/Youtube-FactChecker)", "HTTP User-Agent")
	watchCmd.Flags().Int64Var(&maxBytes, "max-bytes", 2_000_000, "max response bytes to read")
	watchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable response cache")
	watchCmd.Flags().BoolVar(&insecureTLS, "insecure", false, "skip TLS certificate verification (use for self-signed certs)")

	// LLM flags
	watchCmd.Flags().BoolVar(&llmEnabled, "llm", false, "extract claims with an LLM instead of the remote service")
	watchCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, ollama)")
	watchCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name (provider default when empty)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	url := args[0]

	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	cfg.Scheduler.QuietPeriod = quietPeriod
	cfg.Scheduler.PollInterval = pollInterval

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	pageClient := remote.NewHTTPClient(cfg.HTTP, cfg.HTTP.Timeout)
	src := source.NewPage(url, pageClient, cfg.HTTP.UserAgent, cfg.HTTP.MaxBodyBytes, cfg.Scheduler.PollInterval)
	if _, err := src.Refresh(ctx); err != nil {
		return fmt.Errorf("fetch page: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Watching: %s\n", url)
	fmt.Fprintf(os.Stderr, "Poll interval: %v, quiet period: %v\n", pollInterval, quietPeriod)
	fmt.Fprintln(os.Stderr)

	p := pipeline.New(cfg, src, render.NewTerm(os.Stdout), true)
	return p.Run(ctx)
}

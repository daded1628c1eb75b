package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/Capston-25-1/Youtube-FactChecker/internal/model"
	"github.com/Capston-25-1/Youtube-FactChecker/internal/pipeline"
	"github.com/Capston-25-1/Youtube-FactChecker/internal/render"
	"github.com/spf13/cobra"
)

var (
	outJSON     string
	apiBase     string
	timeout     time.Duration
	userAgent   string
	maxBytes    int64
	noCache     bool
	insecureTLS bool
	httpProxy   string
	httpsProxy  string
	workers     int
	llmEnabled  bool
	llmProvider string
	llmModel    string
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check <url>",
	Short: "Fact-check the comments on a video page once",
	Long: `Check runs a single pass over a video page:
- Discover every comment currently on the page
- Extract check-worthy claims in one batched call
- Fact-check each claim against related news coverage
- Print a per-comment verdict summary

Example:
  factcheck check https://www.youtube.com/watch?v=dQw4w9WgXcQ
  factcheck check https://example.com/watch --json report.json
  factcheck check https://example.com/watch --llm ollama`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	// Output flags
	checkCmd.Flags().StringVar(&outJSON, "json", "", "output JSON report path (optional)")

	// Backend flags
	checkCmd.Flags().StringVar(&apiBase, "api", "", "fact-check service base URL (default http://localhost:5000)")
	checkCmd.Flags().IntVar(&workers, "workers", 0, "max concurrent analysis calls per comment (0 = unbounded)")

	// HTTP flags
	checkCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall check timeout")
	checkCmd.Flags().StringVar(&userAgent, "ua", "factcheck/0.1 (+https://github.com/Capston-25-1/Youtube-FactChecker)", "HTTP User-Agent")
	checkCmd.Flags().Int64Var(&maxBytes, "max-bytes", 2_000_000, "max response bytes to read")
	checkCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable response cache")
	checkCmd.Flags().BoolVar(&insecureTLS, "insecure", false, "skip TLS certificate verification (use for self-signed certs)")
	checkCmd.Flags().StringVar(&httpProxy, "http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY env var)")
	checkCmd.Flags().StringVar(&httpsProxy, "https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY env var)")

	// LLM flags
	checkCmd.Flags().BoolVar(&llmEnabled, "llm", false, "extract claims with an LLM instead of the remote service")
	checkCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, ollama)")
	checkCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name (provider default when empty)")
}

// buildConfig assembles the shared configuration from command flags.
func buildConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	cfg.HTTP.Timeout = timeout
	cfg.HTTP.UserAgent = userAgent
	cfg.HTTP.MaxBodyBytes = maxBytes
	cfg.HTTP.InsecureTLS = insecureTLS
	cfg.HTTP.HTTPProxy = httpProxy
	cfg.HTTP.HTTPSProxy = httpsProxy
	cfg.Cache.Enabled = !noCache
	cfg.Concurrency.AnalysisWorkers = workers
	cfg.Output.Verbose = verbose

	if apiBase != "" {
		cfg.API.BaseURL = apiBase
	}

	if llmEnabled {
		cfg.LLM.Provider = llmProvider
		cfg.LLM.Model = llmModel

		// Get API key from environment
		switch llmProvider {
		case "openai":
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
			if cfg.LLM.APIKey == "" {
				return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
			}
		case "ollama":
			// Ollama doesn't need an API key
			baseURL := os.Getenv("OLLAMA_BASE_URL")
			if baseURL != "" {
				cfg.LLM.BaseURL = baseURL
			}
		default:
			return nil, fmt.Errorf("unknown LLM provider: %s", llmProvider)
		}
	}

	return cfg, nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	url := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if verbose {
		fmt.Fprintf(os.Stderr, "Checking: %s\n", url)
		fmt.Fprintf(os.Stderr, "Timeout: %v\n", timeout)
		fmt.Fprintf(os.Stderr, "Cache: %v\n", !noCache)
		fmt.Fprintln(os.Stderr)
	}

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	checker := pipeline.NewChecker(cfg)
	report, err := checker.CheckURL(ctx, url)
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Discovered %d comments\n", len(report.Comments))
		fmt.Fprintf(os.Stderr, "✓ Fact-checked %d comments\n", report.Checked())
		fmt.Fprintln(os.Stderr)
	}

	render.Summary(os.Stdout, report)

	if outJSON != "" {
		if err := render.WriteJSON(report, outJSON); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote %s\n", outJSON)
		}
	}

	return nil
}

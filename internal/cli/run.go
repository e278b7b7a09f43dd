package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/volleyhttp/volley/internal/config"
	"github.com/volleyhttp/volley/internal/output"
	"github.com/volleyhttp/volley/internal/runner"
	"github.com/volleyhttp/volley/internal/stats"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a burst stress test against an endpoint",
	Long: `Dispatch N concurrent requests against a URL and report aggregate
statistics. Configuration comes from flags, a JSON/YAML config file, or
interactive prompts when neither is given.

Examples:
  volley run --url https://api.example.com/users --requests 50
  volley run --config my_test.json
  volley run --url https://api.example.com/users --method POST --data '{"name":"John"}'`,
	Run: func(cmd *cobra.Command, args []string) {
		runStressTest(cmd)
	},
}

func runStressTest(cmd *cobra.Command) {
	cfg, err := buildRunConfig(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Single shared validator, regardless of configuration source.
	if errs := config.Validate(cfg); len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintf(os.Stderr, "Error: %s\n", e.Error())
		}
		os.Exit(1)
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	quiet, _ := cmd.Flags().GetBool("quiet")
	noColor, _ := cmd.Flags().GetBool("no-color")
	outputDir, _ := cmd.Flags().GetString("output-dir")

	if !output.IsTerminal() {
		noColor = true
	}
	formatter := output.NewFormatter(verbose, noColor)

	fmt.Print(formatter.FormatHeader(cfg))

	// Interrupt abandons the run; no partial report is written.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	r, err := runner.NewRunner(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if !quiet {
		r.OnOutcome = func(o runner.Outcome) {
			fmt.Print(formatter.FormatOutcome(o))
		}
	}

	outcomes, elapsed, err := r.Run(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "\nTest interrupted by user")
		} else {
			fmt.Fprintf(os.Stderr, "\nTest failed: %v\n", err)
		}
		os.Exit(1)
	}

	report := stats.Analyze(outcomes, elapsed)
	fmt.Print(formatter.FormatReport(report))

	path, err := output.WriteReport(outputDir, cfg, outcomes, report)
	if err != nil {
		// A failed report write is not a failed test.
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	} else {
		fmt.Printf("\nDetailed results saved to: %s\n", path)
	}
}

// buildRunConfig assembles a RequestConfig from the command's flags, a
// config file, or interactive prompts. Flag values override file values;
// prompts are used only when no configuration flags were given at all.
func buildRunConfig(cmd *cobra.Command) (*config.RequestConfig, error) {
	configFile, _ := cmd.Flags().GetString("config")
	url, _ := cmd.Flags().GetString("url")

	if configFile == "" && url == "" {
		return interactiveSetup(os.Stdin, os.Stdout)
	}

	cfg := config.NewRequestConfig()
	if configFile != "" {
		loaded, err := config.LoadConfig(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
		fmt.Printf("Configuration loaded from %s\n", configFile)
	}

	if url != "" {
		cfg.URL = url
	}
	if cmd.Flags().Changed("method") {
		cfg.Method, _ = cmd.Flags().GetString("method")
	}
	if cmd.Flags().Changed("requests") {
		cfg.Requests, _ = cmd.Flags().GetInt("requests")
	}
	if cmd.Flags().Changed("timeout") {
		cfg.Timeout, _ = cmd.Flags().GetInt("timeout")
	}

	if cmd.Flags().Changed("headers") {
		raw, _ := cmd.Flags().GetString("headers")
		headers, err := config.ParseHeaders(raw)
		if err != nil {
			return nil, err
		}
		cfg.Headers = headers
	}

	if cmd.Flags().Changed("data") {
		raw, _ := cmd.Flags().GetString("data")
		body, err := config.ParseBody(raw)
		if err != nil {
			return nil, err
		}
		cfg.Body = body
	}

	return cfg, nil
}

func init() {
	runCmd.Flags().String("url", "", "API endpoint URL")
	runCmd.Flags().StringP("method", "X", config.DefaultMethod, "HTTP method")
	runCmd.Flags().IntP("requests", "n", config.DefaultRequests, "Number of concurrent requests")
	runCmd.Flags().IntP("timeout", "t", config.DefaultTimeout, "Request timeout in seconds")
	runCmd.Flags().StringP("headers", "H", "", "Headers as a JSON object")
	runCmd.Flags().StringP("data", "d", "", "Request body data in JSON format")
	runCmd.Flags().StringP("config", "c", "", "Path to a JSON or YAML configuration file")
	runCmd.Flags().String("output-dir", output.DefaultReportDir, "Directory for report files")
	runCmd.Flags().BoolP("verbose", "v", false, "Enable verbose output")
	runCmd.Flags().BoolP("quiet", "q", false, "Suppress per-request progress lines")
	runCmd.Flags().Bool("no-color", false, "Disable colored output")
}

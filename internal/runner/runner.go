package runner

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/volleyhttp/volley/internal/config"
	volleyhttp "github.com/volleyhttp/volley/internal/http"
)

// Runner orchestrates one burst: N concurrent executor invocations, all
// launched without staggering, collected through a channel after a join
// barrier. There is no shared mutable collection; each goroutine owns its
// outcome until the runner drains the channel.
type Runner struct {
	config   *config.RequestConfig
	client   *volleyhttp.Client
	executor *Executor

	// OnOutcome, when set, is called once per completed request, in
	// completion order. Used by the CLI for progress lines.
	OnOutcome func(Outcome)
}

// NewRunner builds a runner for the given config: a shared client with the
// connection pool sized to the burst, and a shared request template with
// the body attached only for body-bearing methods.
func NewRunner(cfg *config.RequestConfig) (*Runner, error) {
	client := volleyhttp.NewClient(
		volleyhttp.WithTimeout(cfg.TimeoutDuration()),
		volleyhttp.WithConcurrency(cfg.Requests),
	)

	var body interface{}
	if cfg.HasBody() {
		body = cfg.Body
	}

	request, err := volleyhttp.NewRequest(cfg.Method, cfg.URL, cfg.Headers, body)
	if err != nil {
		return nil, err
	}

	return &Runner{
		config:   cfg,
		client:   client,
		executor: NewExecutor(client, request),
	}, nil
}

// Run fires all requests simultaneously and blocks until every one has
// completed, successfully or with a captured failure. It returns the full
// outcome collection sorted by sequence number and the wall-clock span of
// the run (the time until the slowest request finished, each bounded by
// its own timeout).
//
// Cancelling the context abandons the run: in-flight requests are
// cancelled and Run returns ctx.Err(). A single request's failure never
// cancels its siblings.
func (r *Runner) Run(ctx context.Context) ([]Outcome, time.Duration, error) {
	n := r.config.Requests
	start := time.Now()

	// Pool connections live exactly as long as the run, on every exit path.
	defer r.client.CloseIdleConnections()

	results := make(chan Outcome, n)
	var wg sync.WaitGroup

	for seq := 1; seq <= n; seq++ {
		wg.Add(1)
		go func(seq int) {
			defer wg.Done()
			results <- r.executor.Do(ctx, seq)
		}(seq)
	}

	// Collect as requests complete so progress callbacks fire live.
	outcomes := make([]Outcome, 0, n)
	collected := make(chan struct{})
	go func() {
		defer close(collected)
		for outcome := range results {
			if r.OnOutcome != nil {
				r.OnOutcome(outcome)
			}
			outcomes = append(outcomes, outcome)
		}
	}()

	wg.Wait()
	close(results)
	<-collected

	elapsed := time.Since(start)

	// Completion order is whatever the I/O gave us; reports depend on
	// sequence order.
	sort.Slice(outcomes, func(i, j int) bool {
		return outcomes[i].Seq < outcomes[j].Seq
	})

	if err := ctx.Err(); err != nil {
		return nil, elapsed, err
	}

	return outcomes, elapsed, nil
}

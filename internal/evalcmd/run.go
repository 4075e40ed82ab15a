// Package evalcmd measures reconciliation accuracy against labeled datasets.
package evalcmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/timothy-mendenhall/lc-reconcile-extended/internal/cache"
	"github.com/timothy-mendenhall/lc-reconcile-extended/internal/eval/dataset"
	"github.com/timothy-mendenhall/lc-reconcile-extended/internal/eval/report"
	"github.com/timothy-mendenhall/lc-reconcile-extended/internal/reconcile"
	"github.com/timothy-mendenhall/lc-reconcile-extended/internal/suggest"
	"github.com/timothy-mendenhall/lc-reconcile-extended/internal/vocab"
)

// Options configures an evaluation run.
type Options struct {
	DatasetPath string
	BaseURL     string
	Output      string // empty writes YAML to stdout
	Limit       int    // <= 0 evaluates the whole dataset
	Concurrency int
}

// Run loads the dataset, reconciles every labeled heading against the
// suggest2 host, and writes a YAML accuracy report.
func Run(ctx context.Context, opts Options) error {
	if opts.BaseURL == "" {
		opts.BaseURL = os.Getenv("LC_BASE_URL")
	}
	slog.Info("Starting evaluation run", "dataset", opts.DatasetPath, "base_url", opts.BaseURL)

	records, err := dataset.NewLoader(opts.DatasetPath).LoadSample(opts.Limit)
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}
	slog.Info("Dataset loaded", "records", len(records))

	registry := vocab.NewRegistry()
	client := suggest.NewClient(opts.BaseURL, suggest.DefaultTimeout, cache.New(time.Hour))
	service := reconcile.NewService(registry, client, nil)

	if opts.Concurrency < 1 {
		opts.Concurrency = 4
	}

	results := make([]report.RecordResult, len(records))

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, opts.Concurrency)

	for i, rec := range records {
		wg.Add(1)
		go func(idx int, rec dataset.Record) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			slog.Info("Evaluating heading", "query", rec.Query, "progress", fmt.Sprintf("%d/%d", idx+1, len(records)))
			results[idx] = processRecord(ctx, service, rec)
		}(i, rec)
	}
	wg.Wait()

	rep := report.Build(opts.DatasetPath, client.BaseURL, results)

	out := os.Stdout
	if opts.Output != "" {
		f, err := os.Create(opts.Output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		out = f
	}
	if err := rep.WriteYAML(out); err != nil {
		return err
	}

	slog.Info("Evaluation finished",
		"records", rep.Summary.Records,
		"hit_at_1", rep.Summary.HitAt1,
		"hit_at_20", rep.Summary.HitAt20,
		"mean_top_score", rep.Summary.MeanTopScore)

	return nil
}

// processRecord reconciles one labeled heading and locates the expected URI
// in the ranked candidates.
func processRecord(ctx context.Context, service *reconcile.Service, rec dataset.Record) report.RecordResult {
	result := report.RecordResult{
		Query:       rec.Query,
		TypeID:      rec.TypeID,
		ExpectedURI: rec.ExpectedURI,
	}

	batch := map[string]reconcile.Query{
		"q": {Query: rec.Query, Type: &rec.TypeID},
	}
	results, ok := service.Reconcile(ctx, batch)
	if !ok {
		result.Error = "batch rejected"
		return result
	}

	candidates := results["q"].Result
	if len(candidates) == 0 {
		result.Error = "no candidates returned"
		return result
	}

	result.TopURI = candidates[0].ID
	result.TopLabel = candidates[0].Name
	result.TopScore = candidates[0].Score
	for i, c := range candidates {
		if c.ID == rec.ExpectedURI {
			result.Rank = i + 1
			break
		}
	}

	return result
}

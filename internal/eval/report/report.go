// Package report aggregates evaluation outcomes and renders them as YAML.
package report

import (
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"
)

// Config records how the evaluation was run.
type Config struct {
	DatasetPath string `yaml:"datasetpath"`
	BaseURL     string `yaml:"baseurl"`
	SampleSize  int    `yaml:"samplesize"`
	Timestamp   string `yaml:"timestamp"`
}

// RecordResult is the outcome for one labeled heading. Rank is 1-based;
// zero means the expected URI did not appear in the result list at all.
type RecordResult struct {
	Query       string `yaml:"query"`
	TypeID      string `yaml:"type"`
	ExpectedURI string `yaml:"expecteduri"`
	TopURI      string `yaml:"topuri,omitempty"`
	TopLabel    string `yaml:"toplabel,omitempty"`
	TopScore    int    `yaml:"topscore"`
	Rank        int    `yaml:"rank"`
	Error       string `yaml:"error,omitempty"`
}

// Summary holds the aggregate accuracy figures.
type Summary struct {
	Records      int     `yaml:"records"`
	HitAt1       float64 `yaml:"hitat1"`
	HitAt20      float64 `yaml:"hitat20"`
	MeanTopScore float64 `yaml:"meantopscore"`
}

// Report is the full YAML document.
type Report struct {
	Config  Config         `yaml:"config"`
	Summary Summary        `yaml:"summary"`
	Results []RecordResult `yaml:"results"`
}

// Build assembles a report and computes the summary from the per-record
// results.
func Build(datasetPath, baseURL string, results []RecordResult) Report {
	summary := Summary{Records: len(results)}

	var top1, top20, scoreSum int
	for _, r := range results {
		if r.Rank == 1 {
			top1++
		}
		if r.Rank >= 1 {
			top20++
		}
		scoreSum += r.TopScore
	}
	if summary.Records > 0 {
		n := float64(summary.Records)
		summary.HitAt1 = float64(top1) / n
		summary.HitAt20 = float64(top20) / n
		summary.MeanTopScore = float64(scoreSum) / n
	}

	return Report{
		Config: Config{
			DatasetPath: datasetPath,
			BaseURL:     baseURL,
			SampleSize:  len(results),
			Timestamp:   time.Now().Format("2006-01-02_15-04-05"),
		},
		Summary: summary,
		Results: results,
	}
}

// WriteYAML renders the report to w.
func (r Report) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}

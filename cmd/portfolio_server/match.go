package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/jonathan/resume-portfolio/internal/config"
	"github.com/jonathan/resume-portfolio/internal/ingestion"
	"github.com/jonathan/resume-portfolio/internal/matching"
	"github.com/jonathan/resume-portfolio/internal/parsing"
	"github.com/jonathan/resume-portfolio/internal/types"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	matchResumeFile  string
	matchConcurrency int
)

var matchCmd = &cobra.Command{
	Use:   "match [job files...]",
	Short: "Evaluate a resume against one or more job descriptions",
	Long:  "Evaluate a resume against one or more job description text files and print a JSON report per job. Evaluations run concurrently.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runMatch,
}

func init() {
	matchCmd.Flags().StringVarP(&matchResumeFile, "resume", "r", "", "Path to resume file (.pdf, .json, or text)")
	matchCmd.Flags().IntVar(&matchConcurrency, "concurrency", 3, "Maximum concurrent evaluations")
	_ = matchCmd.MarkFlagRequired("resume")
	rootCmd.AddCommand(matchCmd)
}

// matchReport pairs a job file with its evaluation result.
type matchReport struct {
	Job    string               `json:"job"`
	Result types.JobMatchResult `json:"result"`
}

// loadResumeForMatch reads a resume file as structured data. JSON files are
// normalized directly; PDF and text files go through extraction.
func loadResumeForMatch(ctx context.Context, cfg *config.Config, path string) (types.Resume, error) {
	if strings.HasSuffix(strings.ToLower(path), ".json") {
		data, err := os.ReadFile(path)
		if err != nil {
			return types.Resume{}, fmt.Errorf("failed to read resume file: %w", err)
		}
		return parsing.Normalize(json.RawMessage(data)), nil
	}

	text, err := loadResumeText(path)
	if err != nil {
		return types.Resume{}, err
	}

	client, err := newModelClient(ctx, cfg)
	if err != nil {
		return types.Resume{}, fmt.Errorf("failed to create model client: %w", err)
	}
	if client != nil {
		defer client.Close()
	}
	return parsing.NewExtractor(client).ExtractResume(ctx, text)
}

func runMatch(_ *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	ctx := context.Background()
	resume, err := loadResumeForMatch(ctx, cfg, matchResumeFile)
	if err != nil {
		return err
	}

	client, err := newModelClient(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to create model client: %w", err)
	}
	if client != nil {
		defer client.Close()
	} else {
		fmt.Fprintln(os.Stderr, "Warning: no API key configured, using heuristic evaluation only")
	}
	evaluator := matching.NewEvaluator(client)

	reports := make([]matchReport, len(args))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(matchConcurrency)

	for i, jobFile := range args {
		g.Go(func() error {
			data, err := os.ReadFile(jobFile)
			if err != nil {
				return fmt.Errorf("failed to read job file %s: %w", jobFile, err)
			}
			jobDescription := ingestion.CleanText(string(data))
			reports[i] = matchReport{
				Job:    jobFile,
				Result: evaluator.Evaluate(gctx, resume, jobDescription),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	output, err := json.MarshalIndent(reports, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal reports: %w", err)
	}
	fmt.Println(string(output))
	return nil
}

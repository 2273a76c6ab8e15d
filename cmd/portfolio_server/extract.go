package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/jonathan/resume-portfolio/internal/config"
	"github.com/jonathan/resume-portfolio/internal/ingestion"
	"github.com/jonathan/resume-portfolio/internal/llm"
	"github.com/jonathan/resume-portfolio/internal/parsing"
	"github.com/spf13/cobra"
)

var (
	extractInputFile  string
	extractOutputFile string
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract structured resume JSON from a PDF or text file",
	Long:  "Extract structured resume JSON from a PDF or plain-text resume file. Falls back to heuristic extraction when no API key is configured.",
	RunE:  runExtract,
}

func init() {
	extractCmd.Flags().StringVarP(&extractInputFile, "in", "i", "", "Path to resume file (.pdf or text)")
	extractCmd.Flags().StringVarP(&extractOutputFile, "out", "o", "", "Path to output JSON file (defaults to stdout)")
	_ = extractCmd.MarkFlagRequired("in")
	rootCmd.AddCommand(extractCmd)
}

// loadResumeText reads a resume file and returns its cleaned text. PDF files
// go through text extraction; everything else is treated as plain text.
func loadResumeText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read input file: %w", err)
	}

	if strings.HasSuffix(strings.ToLower(path), ".pdf") {
		text, err := ingestion.ExtractPDFText(data)
		if err != nil {
			return "", fmt.Errorf("failed to extract PDF text: %w", err)
		}
		return text, nil
	}
	return ingestion.CleanText(string(data)), nil
}

// newModelClient builds a Gemini client from configuration, or returns nil
// when no API key is set.
func newModelClient(ctx context.Context, cfg *config.Config) (llm.Client, error) {
	if cfg.LLMAPIKey == "" {
		return nil, nil
	}
	return llm.NewGeminiClient(ctx, cfg.LLM, cfg.LLMAPIKey)
}

func runExtract(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	text, err := loadResumeText(extractInputFile)
	if err != nil {
		return err
	}

	ctx := context.Background()
	client, err := newModelClient(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to create model client: %w", err)
	}
	if client != nil {
		defer client.Close()
	} else {
		fmt.Fprintln(os.Stderr, "Warning: no API key configured, using heuristic extraction only")
	}

	resume, err := parsing.NewExtractor(client).ExtractResume(ctx, text)
	if err != nil {
		return err
	}

	output, err := json.MarshalIndent(resume, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal resume: %w", err)
	}

	if extractOutputFile == "" {
		fmt.Println(string(output))
		return nil
	}
	if err := os.WriteFile(extractOutputFile, output, 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Wrote %s\n", extractOutputFile)
	return nil
}

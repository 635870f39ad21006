package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/AntoScher/resume-analyzer/internal/pipeline"
)

var (
	analyzeConfigPath string
	analyzeResume     string
	analyzeJob        string
	analyzeJobURL     string
	analyzeOutput     string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a resume against a job description",
	Long: `Run a single analysis: extract a profile from the resume file, parse the
job requirements from a text file or a vacancy URL, and print the match
report as JSON.`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeConfigPath, "config", "", "Path to config.json file")
	analyzeCmd.Flags().StringVarP(&analyzeResume, "resume", "r", "", "Path to resume file (.txt, .pdf, or .docx)")
	analyzeCmd.Flags().StringVarP(&analyzeJob, "job", "j", "", "Path to job description text file (mutually exclusive with --job-url)")
	analyzeCmd.Flags().StringVar(&analyzeJobURL, "job-url", "", "Vacancy page URL (mutually exclusive with --job)")
	analyzeCmd.Flags().StringVarP(&analyzeOutput, "output", "o", "", "Write the report to a file instead of stdout")
	_ = analyzeCmd.MarkFlagRequired("resume")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(_ *cobra.Command, _ []string) error {
	if analyzeJob == "" && analyzeJobURL == "" {
		return fmt.Errorf("either --job or --job-url is required")
	}
	if analyzeJob != "" && analyzeJobURL != "" {
		return fmt.Errorf("--job and --job-url are mutually exclusive")
	}

	cfg, err := loadConfig(analyzeConfigPath)
	if err != nil {
		return err
	}

	ctx := context.Background()
	runner, cleanup, err := buildRunner(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	resumeData, err := os.ReadFile(analyzeResume)
	if err != nil {
		return fmt.Errorf("failed to read resume file: %w", err)
	}

	req := pipeline.Request{
		ResumeData:     resumeData,
		ResumeFilename: filepath.Base(analyzeResume),
		JobURL:         analyzeJobURL,
	}
	if analyzeJob != "" {
		jobData, err := os.ReadFile(analyzeJob)
		if err != nil {
			return fmt.Errorf("failed to read job file: %w", err)
		}
		req.JobText = string(jobData)
	}

	result, err := runner.Run(ctx, req)
	if err != nil {
		return err
	}

	output, err := json.MarshalIndent(result.Report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	if analyzeOutput != "" {
		if err := os.WriteFile(analyzeOutput, append(output, '\n'), 0o644); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		fmt.Printf("Report written to %s\n", analyzeOutput)
		return nil
	}

	fmt.Println(string(output))
	return nil
}

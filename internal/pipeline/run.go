// Package pipeline orchestrates a full analysis run: resume extraction and
// profiling, job requirement parsing, scoring, and report assembly, plus the
// optional persistence and AI review integrations.
package pipeline

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/AntoScher/resume-analyzer/internal/db"
	"github.com/AntoScher/resume-analyzer/internal/extract"
	"github.com/AntoScher/resume-analyzer/internal/fetch"
	"github.com/AntoScher/resume-analyzer/internal/ingestion"
	"github.com/AntoScher/resume-analyzer/internal/lexicon"
	"github.com/AntoScher/resume-analyzer/internal/llm"
	"github.com/AntoScher/resume-analyzer/internal/logger"
	"github.com/AntoScher/resume-analyzer/internal/profile"
	"github.com/AntoScher/resume-analyzer/internal/report"
	"github.com/AntoScher/resume-analyzer/internal/requirement"
	"github.com/AntoScher/resume-analyzer/internal/scoring"
	"github.com/AntoScher/resume-analyzer/internal/types"
)

// Request describes one analysis: resume bytes plus either raw job text or
// a vacancy URL. Exactly one of JobText and JobURL must be set.
type Request struct {
	ResumeData     []byte
	ResumeFilename string
	JobText        string
	JobURL         string
}

// Result holds the finished report and, when persistence is enabled, the
// stored analysis ID.
type Result struct {
	Report     *types.Report
	AnalysisID uuid.UUID
}

// Runner executes analysis requests. Database and Reviewer are optional;
// a nil value disables that integration.
type Runner struct {
	Lexicon  *lexicon.Lexicon
	Engine   *scoring.Engine
	Database *db.DB
	Reviewer *llm.Reviewer
	Fetch    *fetch.Options
}

// NewRunner builds a runner from the lexicon with the default scoring
// weights.
func NewRunner(lex *lexicon.Lexicon) *Runner {
	return &Runner{
		Lexicon: lex,
		Engine:  scoring.NewEngine(lex.Weights()),
	}
}

// Run executes a single analysis request.
func (r *Runner) Run(ctx context.Context, req Request) (*Result, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	log := logger.Ctx(ctx)

	// Resume and job inputs are independent; process them concurrently.
	var resumeProfile *types.ResumeProfile
	var requirements *types.RequirementProfile
	jobSource := "text"

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := r.buildResumeProfile(req)
		if err != nil {
			return err
		}
		resumeProfile = p
		return nil
	})
	g.Go(func() error {
		jobText, source, err := r.resolveJobText(gCtx, req)
		if err != nil {
			return err
		}
		jobSource = source
		requirements = requirement.Parse(jobText, r.Lexicon)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	match := r.Engine.Score(resumeProfile, requirements)
	rep := report.Assemble(match, resumeProfile.Warnings)

	if r.Reviewer != nil {
		review, err := r.Reviewer.Review(ctx, rep, resumeProfile, requirements)
		if err != nil {
			log.Warn().Err(err).Msg("AI review failed, continuing without it")
		} else {
			rep.AIReview = review
		}
	}

	result := &Result{Report: rep}
	if r.Database != nil {
		id, err := r.Database.SaveAnalysis(ctx, req.ResumeFilename, jobSource, rep)
		if err != nil {
			log.Warn().Err(err).Msg("failed to persist analysis, continuing")
		} else {
			result.AnalysisID = id
		}
	}

	log.Info().
		Int("overall_score_percent", rep.OverallScorePercent).
		Int("warnings", len(rep.ParseQualityWarnings)).
		Str("job_source", jobSource).
		Msg("analysis completed")
	return result, nil
}

func validateRequest(req Request) error {
	if len(req.ResumeData) == 0 {
		return fmt.Errorf("resume data is empty")
	}
	if req.JobText == "" && req.JobURL == "" {
		return fmt.Errorf("either job text or job URL is required")
	}
	if req.JobText != "" && req.JobURL != "" {
		return fmt.Errorf("job text and job URL are mutually exclusive")
	}
	return nil
}

func (r *Runner) buildResumeProfile(req Request) (*types.ResumeProfile, error) {
	format, ok := types.ParseSourceFormat(req.ResumeFilename)
	if !ok {
		return nil, &extract.UnsupportedFormatError{Format: req.ResumeFilename}
	}
	doc, err := extract.Extract(req.ResumeData, format)
	if err != nil {
		return nil, err
	}
	return profile.Build(doc, r.Lexicon), nil
}

func (r *Runner) resolveJobText(ctx context.Context, req Request) (string, string, error) {
	if req.JobURL != "" {
		vacancy, err := ingestion.IngestJobURL(ctx, req.JobURL, r.Fetch)
		if err != nil {
			return "", "", err
		}
		return vacancy.Text(), req.JobURL, nil
	}
	text, err := ingestion.IngestJobText(req.JobText)
	if err != nil {
		return "", "", err
	}
	return text, "text", nil
}

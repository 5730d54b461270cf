// Package pipeline provides the high-level orchestration for resume analysis.
package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-analyzer/internal/education"
	"github.com/jonathan/resume-analyzer/internal/experience"
	"github.com/jonathan/resume-analyzer/internal/identity"
	"github.com/jonathan/resume-analyzer/internal/ingestion"
	"github.com/jonathan/resume-analyzer/internal/lexicon"
	"github.com/jonathan/resume-analyzer/internal/pipeline/steps"
	"github.com/jonathan/resume-analyzer/internal/publications"
	"github.com/jonathan/resume-analyzer/internal/ranking"
	"github.com/jonathan/resume-analyzer/internal/sections"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// DefaultMaxInputRunes bounds the text analyzed when no limit is configured
const DefaultMaxInputRunes = 200000

// Options holds configuration for an Analyzer
type Options struct {
	// Lexicon selects the lookup tables; nil uses the built-in ones
	Lexicon *lexicon.Compiled
	// Logger receives stage diagnostics; nil discards them
	Logger *zerolog.Logger
	// Now resolves open-ended experience ranges; nil uses time.Now
	Now           func() time.Time
	PreviewRunes  int
	MaxInputRunes int
	// Timeout bounds one Analyze call; zero means no limit beyond ctx
	Timeout time.Duration
	// Concurrent runs the extraction stages in parallel
	Concurrent bool
}

// Analyzer turns resume text into a ResumeProfile. It is safe for
// concurrent use.
type Analyzer struct {
	opts   Options
	logger zerolog.Logger

	segmenter    *sections.Segmenter
	identity     *identity.Extractor
	degrees      *education.Extractor
	experience   *experience.Classifier
	publications *publications.Counter
	scorer       *ranking.Scorer
	lex          *lexicon.Compiled

	// beforeStage is called as each stage starts
	beforeStage func(name string)
}

// NewAnalyzer builds an Analyzer, filling unset options with defaults
func NewAnalyzer(opts Options) *Analyzer {
	if opts.Lexicon == nil {
		opts.Lexicon = lexicon.DefaultCompiled()
	}
	if opts.PreviewRunes <= 0 {
		opts.PreviewRunes = DefaultPreviewRunes
	}
	if opts.MaxInputRunes <= 0 {
		opts.MaxInputRunes = DefaultMaxInputRunes
	}

	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	classifier := experience.New(opts.Lexicon).WithLogger(logger)
	if opts.Now != nil {
		classifier = classifier.WithClock(opts.Now)
	}

	return &Analyzer{
		opts:         opts,
		logger:       logger,
		segmenter:    sections.New(opts.Lexicon),
		identity:     identity.New(opts.Lexicon),
		degrees:      education.New(opts.Lexicon).WithLogger(logger),
		experience:   classifier,
		publications: publications.New(opts.Lexicon),
		scorer:       ranking.New(opts.Lexicon),
		lex:          opts.Lexicon,
	}
}

// run holds the state of one Analyze call
type run struct {
	a      *Analyzer
	logger zerolog.Logger

	mu        sync.Mutex
	completed map[string]bool
	failed    []string
	partial   bool
}

// Analyze extracts a profile from req.Text. The only error is an invalid
// request; content problems are reported in the profile's extraction quality.
func (a *Analyzer) Analyze(ctx context.Context, req types.AnalyzeRequest) (*types.ResumeProfile, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if a.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.opts.Timeout)
		defer cancel()
	}

	raw, truncated := ingestion.TruncateRunes(req.Text, a.opts.MaxInputRunes)
	if truncated {
		a.logger.Warn().Int("max_input_runes", a.opts.MaxInputRunes).Msg("input truncated")
	}
	normalized := ingestion.Normalize(raw)

	r := &run{
		a:         a,
		logger:    a.logger,
		completed: make(map[string]bool),
	}

	var (
		text       types.ResumeText
		ident      types.Identity
		records    []types.DegreeRecord
		expSummary = types.ExperienceSummary{Entries: []types.ExperienceEntry{}}
		pubCounts  types.PublicationCounts
		eduSummary types.EducationSummary
		score      float64
	)

	r.stage(ctx, steps.StepSegment, func() {
		text = a.segmenter.Segment(normalized)
	})

	extractors := map[string]func(){
		steps.StepIdentity: func() {
			ident = a.identity.Extract(text)
		},
		steps.StepDegrees: func() {
			records = a.degrees.Extract(text)
		},
		steps.StepExperience: func() {
			expSummary = a.experience.Classify(text)
		},
		steps.StepPublications: func() {
			pubCounts = a.publications.Count(text)
		},
	}

	if a.opts.Concurrent {
		g, gCtx := errgroup.WithContext(ctx)
		for _, name := range steps.ByCategory(steps.CategoryExtraction) {
			fn := extractors[name]
			g.Go(func() error {
				r.stage(gCtx, name, fn)
				return nil
			})
		}
		// stages recover their own panics, so Wait has nothing to report
		_ = g.Wait()
	} else {
		for _, name := range steps.ByCategory(steps.CategoryExtraction) {
			r.stage(ctx, name, extractors[name])
		}
	}

	r.stage(ctx, steps.StepInference, func() {
		eduSummary = education.Infer(records, req.TargetDepartment, a.lex)
	})

	r.stage(ctx, steps.StepScore, func() {
		in := ranking.Input{
			HasPhD:          eduSummary.HasPhD,
			ExperienceYears: years(expSummary.TotalTenths()),
			DepartmentMatch: eduSummary.DepartmentMatch,
			Publications:    pubCounts.Total,
		}
		if eduSummary.HighestDegree != nil {
			in.HighestDegree = eduSummary.HighestDegree.DegreeType
		}
		score = a.scorer.Score(in)
	})

	failed := append([]string{}, r.failed...)
	steps.SortBySeq(failed)

	profile := Assemble(Parts{
		Identity:     ident,
		Degrees:      records,
		Education:    eduSummary,
		Experience:   expSummary,
		Publications: pubCounts,
		Score:        score,
		Quality: types.ExtractionQuality{
			Status:       ingestion.AssessQuality(normalized.Body()),
			Partial:      r.partial,
			Truncated:    truncated,
			FailedStages: failed,
		},
		Text:         normalized.Body(),
		PreviewRunes: a.opts.PreviewRunes,
	})

	a.logger.Debug().
		Str("quality", profile.ExtractionQuality.Status).
		Bool("partial", r.partial).
		Strs("failed_stages", failed).
		Float64("score", profile.Score).
		Msg("analysis complete")

	return profile, nil
}

// stage runs fn unless the context is done or a dependency did not complete.
// A panic in fn is logged and recorded as a failed stage.
func (r *run) stage(ctx context.Context, name string, fn func()) {
	if ctx.Err() != nil {
		r.mu.Lock()
		r.partial = true
		r.mu.Unlock()
		r.logger.Warn().Str("stage", name).Err(ctx.Err()).Msg("skipping stage, context done")
		return
	}

	r.mu.Lock()
	err := steps.ValidateDependencies(r.completed, name)
	r.mu.Unlock()
	if err != nil {
		r.logger.Warn().Str("stage", name).Err(err).Msg("skipping stage")
		r.fail(name)
		return
	}

	start := time.Now()
	ok := r.protect(name, fn)
	if !ok {
		r.fail(name)
		return
	}

	r.mu.Lock()
	r.completed[name] = true
	r.mu.Unlock()
	r.logger.Debug().Str("stage", name).Dur("elapsed", time.Since(start)).Msg("stage complete")
}

func (r *run) protect(name string, fn func()) (ok bool) {
	defer func() {
		if p := recover(); p != nil {
			r.logger.Error().Str("stage", name).Str("panic", fmt.Sprint(p)).Msg("stage failed")
			ok = false
		}
	}()
	if r.a.beforeStage != nil {
		r.a.beforeStage(name)
	}
	fn()
	return true
}

func (r *run) fail(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failed = append(r.failed, name)
}

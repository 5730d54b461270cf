package main

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jonathan/resume-analyzer/internal/config"
	"github.com/jonathan/resume-analyzer/internal/lexicon"
	"github.com/jonathan/resume-analyzer/internal/logging"
	"github.com/jonathan/resume-analyzer/internal/pipeline"
)

// settings is the resolved configuration shared by the commands
type settings struct {
	cfg    *config.Config
	logger zerolog.Logger
	lex    *lexicon.Compiled
}

// loadSettings resolves the config file and environment, sets up the global
// logger and compiles the lexicon. verbose forces debug logging.
func loadSettings(configPath string, verbose bool) (*settings, error) {
	cfg, err := config.Resolve(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if verbose {
		cfg.Log.Level = zerolog.LevelDebugValue
	}

	logger := logging.Init(cfg.Log)

	lex := lexicon.DefaultCompiled()
	if cfg.LexiconPath != "" {
		loaded, err := lexicon.Load(cfg.LexiconPath)
		if err != nil {
			return nil, err
		}
		lex, err = loaded.Compile()
		if err != nil {
			return nil, err
		}
		logger.Debug().Str("path", cfg.LexiconPath).Msg("lexicon loaded")
	}

	return &settings{cfg: cfg, logger: logger, lex: lex}, nil
}

// newAnalyzer builds the analysis pipeline from the settings
func (s *settings) newAnalyzer() *pipeline.Analyzer {
	return pipeline.NewAnalyzer(pipeline.Options{
		Lexicon:       s.lex,
		Logger:        &s.logger,
		PreviewRunes:  s.cfg.PreviewRunes,
		MaxInputRunes: s.cfg.MaxInputRunes,
		Timeout:       s.cfg.TimeoutDuration(),
		Concurrent:    s.cfg.ConcurrentExtractors,
	})
}

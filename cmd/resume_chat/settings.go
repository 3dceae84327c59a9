package main

import (
	"fmt"
	"io"
	"os"

	"github.com/jonathan/resume-chat/internal/config"
	"github.com/jonathan/resume-chat/internal/experience"
	"github.com/jonathan/resume-chat/internal/llm"
	"github.com/jonathan/resume-chat/internal/logging"
	"github.com/rs/zerolog"
)

// loadSettings resolves the effective configuration: config file, then
// defaults, then environment, then persistent flags.
func loadSettings(path string, getenv func(string) string) (config.Config, error) {
	cfg := config.Config{}
	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return config.Config{}, err
		}
		cfg = *loaded
	}

	merged := cfg.MergeWithDefaults(config.Defaults())
	merged.ApplyEnv(getenv)

	if logLevel != "" {
		merged.LogLevel = logLevel
	}
	if verbose {
		merged.Verbose = true
	}

	if err := merged.Validate(); err != nil {
		return config.Config{}, err
	}
	return merged, nil
}

// newLogger builds the command logger. Logs go to w so stdout stays clean.
func newLogger(cfg config.Config, w io.Writer) zerolog.Logger {
	lc := logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat}
	if cfg.Verbose {
		lc.Level = "debug"
		lc.Format = "pretty"
	}
	if w == nil {
		w = os.Stderr
	}
	return logging.New(lc, w).With().Str("app", "resume_chat").Logger()
}

// newExtractor builds an extractor from config. now, when set, pins
// "present" to a YYYY-MM month.
func newExtractor(cfg config.Config, logger zerolog.Logger, now string) (*experience.Extractor, error) {
	policy, err := experience.ParseReversedPolicy(cfg.ReversedInterval)
	if err != nil {
		return nil, err
	}

	opts := []experience.Option{
		experience.WithLogger(logger),
		experience.WithReversedPolicy(policy),
	}
	if now != "" {
		m, err := experience.ParseYearMonth(now)
		if err != nil {
			return nil, fmt.Errorf("invalid --now value: %w", err)
		}
		opts = append(opts, experience.WithClock(experience.FixedClock(m)))
	}
	return experience.NewExtractor(opts...), nil
}

// newLLMConfig applies the configured temperature and model override to the
// default models.
func newLLMConfig(cfg config.Config) (*llm.Config, llm.ModelTier, error) {
	tier, err := llm.ParseTier(cfg.ModelTier)
	if err != nil {
		return nil, "", err
	}
	lc := llm.DefaultConfig()
	if cfg.Model != "" {
		lc = lc.WithModel(tier, cfg.Model)
	}
	if cfg.Temperature != nil {
		lc.Temperature = *cfg.Temperature
	}
	return lc, tier, nil
}

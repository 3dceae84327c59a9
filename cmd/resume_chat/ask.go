package main

import (
	"context"
	"fmt"

	"github.com/jonathan/resume-chat/internal/analytics"
	"github.com/jonathan/resume-chat/internal/chat"
	"github.com/jonathan/resume-chat/internal/config"
	"github.com/jonathan/resume-chat/internal/ingestion"
	"github.com/jonathan/resume-chat/internal/llm"
	"github.com/jonathan/resume-chat/internal/observability"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask",
	Short: "Ask a question about a resume",
	Long:  "Answers one question about a PDF or DOCX resume. Questions about experience, months or years are answered from the dated ranges in the resume; other questions are answered by the language model using only the resume text.",
	RunE:  runAsk,
}

var (
	askFile     string
	askQuestion string
	askNow      string
	askAPIKey   string
)

func init() {
	askCmd.Flags().StringVarP(&askFile, "file", "f", "", "Resume file (.pdf or .docx) (required)")
	askCmd.Flags().StringVarP(&askQuestion, "question", "q", "", "Question to ask (required)")
	askCmd.Flags().StringVar(&askNow, "now", "", "Month that Present/Current resolves to, as YYYY-MM (default: this month)")
	askCmd.Flags().StringVar(&askAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")

	if err := askCmd.MarkFlagRequired("file"); err != nil {
		panic(fmt.Sprintf("failed to mark file flag as required: %v", err))
	}
	if err := askCmd.MarkFlagRequired("question"); err != nil {
		panic(fmt.Sprintf("failed to mark question flag as required: %v", err))
	}

	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, _ []string) error {
	cfg, err := loadSettings(configPath, nil)
	if err != nil {
		return err
	}
	if askAPIKey != "" {
		cfg.APIKey = askAPIKey
	}
	logger := newLogger(cfg, cmd.ErrOrStderr())
	ctx := cmd.Context()

	extractor, err := newExtractor(cfg, logger, askNow)
	if err != nil {
		return err
	}

	llmConfig, tier, err := newLLMConfig(cfg)
	if err != nil {
		return err
	}
	var client llm.Client
	if cfg.APIKey != "" {
		client, err = llm.NewClient(ctx, llmConfig, cfg.APIKey)
		if err != nil {
			return err
		}
		defer func() { _ = client.Close() }()
	}

	sink := openSink(ctx, cfg, logger)
	defer func() { _ = sink.Close() }()

	session := &askSession{
		loader:   ingestion.NewLoader(),
		answerer: chat.NewAnswerer(extractor, client, tier, logger),
		sink:     sink,
		logger:   logger,
	}
	answer, err := session.ask(ctx, askFile, askQuestion)
	if err != nil {
		return err
	}

	if cfg.Verbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintAnswer(askQuestion, answer)
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), answer.Text)
	return nil
}

// openSink returns the Postgres sink when a database URL is configured and
// reachable, otherwise a log sink.
func openSink(ctx context.Context, cfg config.Config, logger zerolog.Logger) analytics.Sink {
	fallback := analytics.NewLogSink(logger)
	if cfg.DatabaseURL == "" {
		return fallback
	}

	pg, err := analytics.ConnectPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Warn().Err(err).Msg("analytics database unavailable, logging events instead")
		return fallback
	}
	if err := pg.EnsureSchema(ctx); err != nil {
		logger.Warn().Err(err).Msg("failed to create analytics tables, logging events instead")
		_ = pg.Close()
		return fallback
	}
	return pg
}

// askSession runs one question against one resume and records the exchange.
type askSession struct {
	loader   documentLoader
	answerer *chat.Answerer
	sink     analytics.Sink
	logger   zerolog.Logger
}

func (s *askSession) ask(ctx context.Context, path, question string) (*chat.Answer, error) {
	sessionID := analytics.NewSessionID()
	logger := s.logger.With().Str("session_id", sessionID.String()).Logger()

	if err := s.sink.CreateSession(ctx, sessionID); err != nil {
		logger.Warn().Err(err).Msg("failed to record session")
	}

	doc, err := s.loader.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load resume: %w", err)
	}
	if err := s.sink.LogResumeUpload(ctx, sessionID, string(doc.Format)); err != nil {
		logger.Warn().Err(err).Msg("failed to record resume upload")
	}

	answer, err := s.answerer.Answer(ctx, doc.Text, question)
	if err != nil {
		return nil, err
	}
	logger.Info().Str("source", string(answer.Source)).Msg("answered question")

	if err := s.sink.LogChat(ctx, sessionID, question, answer.Text); err != nil {
		logger.Warn().Err(err).Msg("failed to record chat")
	}
	return answer, nil
}

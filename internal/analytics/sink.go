// Package analytics records sessions, resume uploads and chat exchanges.
// Recording is best-effort: callers log sink errors and carry on.
package analytics

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Sink receives usage events for one chat session.
type Sink interface {
	CreateSession(ctx context.Context, sessionID uuid.UUID) error
	LogResumeUpload(ctx context.Context, sessionID uuid.UUID, fileType string) error
	LogChat(ctx context.Context, sessionID uuid.UUID, userMessage, assistantMessage string) error
	Close() error
}

// NewSessionID returns a random session identifier.
func NewSessionID() uuid.UUID {
	return uuid.New()
}

// NopSink discards every event.
type NopSink struct{}

func (NopSink) CreateSession(context.Context, uuid.UUID) error { return nil }
func (NopSink) LogResumeUpload(context.Context, uuid.UUID, string) error { return nil }
func (NopSink) LogChat(context.Context, uuid.UUID, string, string) error { return nil }
func (NopSink) Close() error { return nil }

// LogSink writes events to a zerolog logger at info level. Message bodies
// are reduced to their lengths.
type LogSink struct {
	logger zerolog.Logger
}

// NewLogSink returns a sink that writes to l.
func NewLogSink(l zerolog.Logger) *LogSink {
	return &LogSink{logger: l.With().Str("component", "analytics").Logger()}
}

func (s *LogSink) CreateSession(_ context.Context, sessionID uuid.UUID) error {
	s.logger.Info().Str("session_id", sessionID.String()).Msg("session created")
	return nil
}

func (s *LogSink) LogResumeUpload(_ context.Context, sessionID uuid.UUID, fileType string) error {
	s.logger.Info().Str("session_id", sessionID.String()).Str("file_type", fileType).Msg("resume uploaded")
	return nil
}

func (s *LogSink) LogChat(_ context.Context, sessionID uuid.UUID, userMessage, assistantMessage string) error {
	s.logger.Info().
		Str("session_id", sessionID.String()).
		Int("user_chars", len(userMessage)).
		Int("assistant_chars", len(assistantMessage)).
		Msg("chat exchange")
	return nil
}

func (s *LogSink) Close() error { return nil }

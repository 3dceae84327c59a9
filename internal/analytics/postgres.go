package analytics

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var schemaSQL string

// execer is the subset of pgxpool.Pool the sink needs
type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PostgresSink stores events in the sessions, resume_uploads and chat_logs tables.
type PostgresSink struct {
	db   execer
	pool *pgxpool.Pool
}

// ConnectPostgres establishes a connection pool to the database
func ConnectPostgres(ctx context.Context, databaseURL string) (*PostgresSink, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresSink{db: pool, pool: pool}, nil
}

// EnsureSchema creates the analytics tables if they do not exist.
func (s *PostgresSink) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to create analytics schema: %w", err)
	}
	return nil
}

// CreateSession inserts the session once; repeated calls are ignored.
func (s *PostgresSink) CreateSession(ctx context.Context, sessionID uuid.UUID) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO sessions (session_id) VALUES ($1)
		 ON CONFLICT (session_id) DO NOTHING`,
		sessionID,
	)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// LogResumeUpload records the format of an uploaded resume.
func (s *PostgresSink) LogResumeUpload(ctx context.Context, sessionID uuid.UUID, fileType string) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO resume_uploads (session_id, file_type) VALUES ($1, $2)`,
		sessionID, fileType,
	)
	if err != nil {
		return fmt.Errorf("failed to log resume upload: %w", err)
	}
	return nil
}

// LogChat records one question and its answer.
func (s *PostgresSink) LogChat(ctx context.Context, sessionID uuid.UUID, userMessage, assistantMessage string) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO chat_logs (session_id, user_message, assistant_message) VALUES ($1, $2, $3)`,
		sessionID, userMessage, assistantMessage,
	)
	if err != nil {
		return fmt.Errorf("failed to log chat: %w", err)
	}
	return nil
}

// Close closes the connection pool
func (s *PostgresSink) Close() error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}

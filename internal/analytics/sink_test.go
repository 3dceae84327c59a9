package analytics

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type execCall struct {
	sql  string
	args []any
}

type fakeExecer struct {
	calls []execCall
	err   error
}

func (f *fakeExecer) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.calls = append(f.calls, execCall{sql: sql, args: args})
	return pgconn.CommandTag{}, f.err
}

func TestPostgresSink_Inserts(t *testing.T) {
	ctx := context.Background()
	fake := &fakeExecer{}
	sink := &PostgresSink{db: fake}
	id := uuid.MustParse("550e8400-e29b-41d4-a716-446655440000")

	require.NoError(t, sink.CreateSession(ctx, id))
	require.NoError(t, sink.LogResumeUpload(ctx, id, "docx"))
	require.NoError(t, sink.LogChat(ctx, id, "How many years of experience?", "Total professional experience: 3 years 0 months."))
	require.NoError(t, sink.Close())

	require.Len(t, fake.calls, 3)

	assert.Contains(t, fake.calls[0].sql, "INSERT INTO sessions")
	assert.Contains(t, fake.calls[0].sql, "ON CONFLICT (session_id) DO NOTHING")
	assert.Equal(t, []any{id}, fake.calls[0].args)

	assert.Contains(t, fake.calls[1].sql, "INSERT INTO resume_uploads")
	assert.Equal(t, []any{id, "docx"}, fake.calls[1].args)

	assert.Contains(t, fake.calls[2].sql, "INSERT INTO chat_logs")
	assert.Equal(t, id, fake.calls[2].args[0])
	assert.Equal(t, "How many years of experience?", fake.calls[2].args[1])
}

func TestPostgresSink_WrapsErrors(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("connection reset")
	sink := &PostgresSink{db: &fakeExecer{err: boom}}

	err := sink.CreateSession(ctx, NewSessionID())
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "failed to create session")

	err = sink.LogResumeUpload(ctx, NewSessionID(), "pdf")
	assert.ErrorIs(t, err, boom)

	err = sink.LogChat(ctx, NewSessionID(), "q", "a")
	assert.ErrorIs(t, err, boom)

	err = sink.EnsureSchema(ctx)
	assert.ErrorIs(t, err, boom)
}

func TestPostgresSink_EnsureSchema(t *testing.T) {
	fake := &fakeExecer{}
	sink := &PostgresSink{db: fake}

	require.NoError(t, sink.EnsureSchema(context.Background()))
	require.Len(t, fake.calls, 1)
	for _, table := range []string{"sessions", "resume_uploads", "chat_logs"} {
		assert.Contains(t, fake.calls[0].sql, "CREATE TABLE IF NOT EXISTS "+table)
	}
}

func TestLogSink(t *testing.T) {
	var buf bytes.Buffer
	sink := NewLogSink(zerolog.New(&buf))
	ctx := context.Background()
	id := NewSessionID()

	require.NoError(t, sink.CreateSession(ctx, id))
	require.NoError(t, sink.LogResumeUpload(ctx, id, "pdf"))
	require.NoError(t, sink.LogChat(ctx, id, "secret question", "secret answer"))

	out := buf.String()
	assert.Contains(t, out, id.String())
	assert.Contains(t, out, `"file_type":"pdf"`)
	assert.Contains(t, out, `"user_chars":15`)
	assert.Contains(t, out, `"component":"analytics"`)
	assert.NotContains(t, out, "secret")
}

func TestNopSink(t *testing.T) {
	var s Sink = NopSink{}
	ctx := context.Background()
	assert.NoError(t, s.CreateSession(ctx, NewSessionID()))
	assert.NoError(t, s.LogResumeUpload(ctx, NewSessionID(), "pdf"))
	assert.NoError(t, s.LogChat(ctx, NewSessionID(), "q", "a"))
	assert.NoError(t, s.Close())
}

func TestNewSessionID_Unique(t *testing.T) {
	assert.NotEqual(t, NewSessionID(), NewSessionID())
}

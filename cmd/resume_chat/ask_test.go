package main

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"testing"

	"github.com/google/uuid"
	"github.com/jonathan/resume-chat/internal/analytics"
	"github.com/jonathan/resume-chat/internal/chat"
	"github.com/jonathan/resume-chat/internal/config"
	"github.com/jonathan/resume-chat/internal/llm"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	analytics.NopSink
	sessions []uuid.UUID
	uploads  []string
	chats    []string
	err      error
}

func (r *recordingSink) CreateSession(_ context.Context, id uuid.UUID) error {
	r.sessions = append(r.sessions, id)
	return r.err
}

func (r *recordingSink) LogResumeUpload(_ context.Context, _ uuid.UUID, fileType string) error {
	r.uploads = append(r.uploads, fileType)
	return r.err
}

func (r *recordingSink) LogChat(_ context.Context, _ uuid.UUID, userMessage, _ string) error {
	r.chats = append(r.chats, userMessage)
	return r.err
}

type stubClient struct {
	reply string
}

func (s stubClient) GenerateContent(context.Context, string, llm.ModelTier) (string, error) {
	return s.reply, nil
}

func (s stubClient) Close() error { return nil }

func newTestSession(sink analytics.Sink, client llm.Client, logs *bytes.Buffer) *askSession {
	logger := zerolog.New(logs)
	return &askSession{
		loader: fakeLoader{texts: map[string]string{
			"cv.docx": "Jane Doe\nEngineer (Jan 2020 - Dec 2021)\nSkills: Go",
		}},
		answerer: chat.NewAnswerer(testExtractor(), client, llm.TierLite, logger),
		sink:     sink,
		logger:   logger,
	}
}

func TestAskSession_ExperienceQuestion(t *testing.T) {
	sink := &recordingSink{}
	s := newTestSession(sink, nil, &bytes.Buffer{})

	answer, err := s.ask(context.Background(), "cv.docx", "How much experience?")
	require.NoError(t, err)

	assert.Equal(t, "Total professional experience: 2 years 0 months.", answer.Text)
	assert.Equal(t, chat.SourceDeterministic, answer.Source)
	assert.Len(t, sink.sessions, 1)
	assert.Equal(t, []string{"docx"}, sink.uploads)
	assert.Equal(t, []string{"How much experience?"}, sink.chats)
}

func TestAskSession_ModelQuestion(t *testing.T) {
	sink := &recordingSink{}
	s := newTestSession(sink, stubClient{reply: "Go"}, &bytes.Buffer{})

	answer, err := s.ask(context.Background(), "cv.docx", "Which languages?")
	require.NoError(t, err)
	assert.Equal(t, "Go", answer.Text)
	assert.Equal(t, chat.SourceLLM, answer.Source)
}

func TestAskSession_SinkFailuresAreLogged(t *testing.T) {
	var logs bytes.Buffer
	sink := &recordingSink{err: errors.New("db down")}
	s := newTestSession(sink, nil, &logs)

	answer, err := s.ask(context.Background(), "cv.docx", "years?")
	require.NoError(t, err)
	assert.NotEmpty(t, answer.Text)
	assert.Contains(t, logs.String(), "failed to record session")
	assert.Contains(t, logs.String(), "failed to record chat")
	assert.Contains(t, logs.String(), "db down")
}

func TestAskSession_LoadFailure(t *testing.T) {
	sink := &recordingSink{}
	s := newTestSession(sink, nil, &bytes.Buffer{})

	_, err := s.ask(context.Background(), "missing.pdf", "experience?")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load resume")
	assert.Empty(t, sink.chats)
}

func TestAskSession_NoModel(t *testing.T) {
	s := newTestSession(&recordingSink{}, nil, &bytes.Buffer{})

	_, err := s.ask(context.Background(), "cv.docx", "Where did she study?")
	assert.ErrorIs(t, err, chat.ErrNoModel)
}

func TestOpenSink_WithoutDatabaseLogs(t *testing.T) {
	sink := openSink(context.Background(), config.Config{}, zerolog.Nop())
	_, ok := sink.(*analytics.LogSink)
	assert.True(t, ok)
}

func TestAskCommand_MissingQuestionFlag(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "ask", "--file", "resume.pdf")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "required")
}

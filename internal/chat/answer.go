// Package chat answers questions about a single resume.
//
// Questions that mention experience, months or years are answered from the
// extracted employment intervals; everything else is sent to the language
// model together with the full resume text.
package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/resume-chat/internal/experience"
	"github.com/jonathan/resume-chat/internal/llm"
	"github.com/jonathan/resume-chat/internal/prompts"
	"github.com/rs/zerolog"
)

// experienceKeywords route a question to the deterministic answer
var experienceKeywords = []string{"experience", "month", "year"}

// IsExperienceQuestion reports whether the lowercased question mentions
// experience, month or year.
func IsExperienceQuestion(question string) bool {
	q := strings.ToLower(question)
	for _, kw := range experienceKeywords {
		if strings.Contains(q, kw) {
			return true
		}
	}
	return false
}

// Source says how an answer was produced.
type Source string

const (
	SourceDeterministic Source = "deterministic"
	SourceLLM           Source = "llm"
)

// Answer is the reply to one question.
type Answer struct {
	Text    string              `json:"text"`
	Source  Source              `json:"source"`
	Summary *experience.Summary `json:"summary,omitempty"`
}

// Answerer routes questions between the experience extractor and the LLM.
type Answerer struct {
	extractor *experience.Extractor
	client    llm.Client
	tier      llm.ModelTier
	logger    zerolog.Logger
}

// NewAnswerer builds an Answerer. client may be nil, in which case
// non-experience questions fail with ErrNoModel.
func NewAnswerer(extractor *experience.Extractor, client llm.Client, tier llm.ModelTier, logger zerolog.Logger) *Answerer {
	if extractor == nil {
		extractor = experience.NewExtractor()
	}
	if tier == "" {
		tier = llm.TierLite
	}
	return &Answerer{
		extractor: extractor,
		client:    client,
		tier:      tier,
		logger:    logger,
	}
}

// Answer replies to question using resumeText. Blank resume text fails with
// *experience.EmptyTextError before routing.
func (a *Answerer) Answer(ctx context.Context, resumeText, question string) (*Answer, error) {
	if strings.TrimSpace(resumeText) == "" {
		return nil, &experience.EmptyTextError{}
	}
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, &QuestionError{Message: "question is empty"}
	}

	if IsExperienceQuestion(question) {
		return a.answerExperience(resumeText)
	}
	return a.answerWithModel(ctx, resumeText, question)
}

func (a *Answerer) answerExperience(resumeText string) (*Answer, error) {
	summary, err := a.extractor.Analyze(resumeText)
	if err != nil {
		return nil, err
	}

	a.logger.Debug().
		Int("intervals", len(summary.Intervals)).
		Int("total_months", summary.TotalMonths).
		Msg("answered experience question deterministically")

	return &Answer{
		Text:    ExperienceReply(summary),
		Source:  SourceDeterministic,
		Summary: summary,
	}, nil
}

func (a *Answerer) answerWithModel(ctx context.Context, resumeText, question string) (*Answer, error) {
	if a.client == nil {
		return nil, ErrNoModel
	}

	tmpl, err := prompts.Get(prompts.ChatFile, prompts.KeyResumeQA)
	if err != nil {
		return nil, fmt.Errorf("failed to load prompt: %w", err)
	}
	prompt := prompts.Format(tmpl, map[string]string{
		"Context":  resumeText,
		"Question": question,
	})

	text, err := a.client.GenerateContent(ctx, prompt, a.tier)
	if err != nil {
		return nil, fmt.Errorf("failed to answer question: %w", err)
	}

	a.logger.Debug().Str("tier", string(a.tier)).Int("answer_chars", len(text)).Msg("answered question with model")

	return &Answer{
		Text:   strings.TrimSpace(text),
		Source: SourceLLM,
	}, nil
}

// ExperienceReply renders the user-facing sentence for a summary. A nil or
// empty summary still reports "0 years 0 months".
func ExperienceReply(summary *experience.Summary) string {
	total := 0
	if summary != nil {
		total = summary.TotalMonths
	}
	key := prompts.KeyExperienceAns
	if total == 0 {
		key = prompts.KeyNoExperience
	}
	return prompts.Format(prompts.MustGet(prompts.ChatFile, key), map[string]string{
		"Formatted": experience.FormatYearsMonths(total),
	})
}

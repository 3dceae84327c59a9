package chat

import (
	"errors"
	"fmt"
)

// ErrNoModel is returned for questions that need the language model when no
// client is configured.
var ErrNoModel = errors.New("no language model configured (set GEMINI_API_KEY)")

// QuestionError represents an unusable question
type QuestionError struct {
	Message string
}

func (e *QuestionError) Error() string {
	return fmt.Sprintf("question error: %s", e.Message)
}

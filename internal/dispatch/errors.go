package dispatch

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BerylCAtieno/content-studio/internal/normalize"
)

var (
	ErrInvalidAction = errors.New("invalid action")
	ErrTopicRequired = errors.New("topic is required")
)

// ValidationError rejects a request before any generation call.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string { return e.Err.Error() }
func (e *ValidationError) Unwrap() error { return e.Err }

// GenerationError wraps a failed upstream call, unmodified.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("AI generation failed: %v", e.Err)
}
func (e *GenerationError) Unwrap() error { return e.Err }

// SemanticError is only produced in strict mode: the reply parsed but
// drifted from what the prompt asked for.
type SemanticError struct {
	Issues []string
}

func (e *SemanticError) Error() string {
	return "AI response did not match the request: " + strings.Join(e.Issues, "; ")
}

type Kind string

const (
	KindNone       Kind = ""
	KindValidation Kind = "validation"
	KindGeneration Kind = "generation"
	KindFormat     Kind = "format"
	KindSemantic   Kind = "semantic"
	KindInternal   Kind = "internal"
)

// Classify maps an error from Handle to its kind.
func Classify(err error) Kind {
	if err == nil {
		return KindNone
	}

	var (
		ve *ValidationError
		ge *GenerationError
		fe *normalize.FormatError
		se *SemanticError
	)
	switch {
	case errors.As(err, &ve):
		return KindValidation
	case errors.As(err, &ge):
		return KindGeneration
	case errors.As(err, &fe):
		return KindFormat
	case errors.As(err, &se):
		return KindSemantic
	default:
		return KindInternal
	}
}

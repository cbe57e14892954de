package services

import (
	"errors"
	"strings"
)

// ErrVideoGeneration is the root of every error produced by a generation run.
var ErrVideoGeneration = errors.New("video generation error")

// kind marks one branch of the video generation error family.
type kind struct {
	name string
}

func (k *kind) Error() string { return k.name }

func (k *kind) Is(target error) bool { return target == ErrVideoGeneration }

var (
	ErrValidation        error = &kind{name: "validation error"}
	ErrImageProcessing   error = &kind{name: "image processing error"}
	ErrAudioProcessing   error = &kind{name: "audio processing error"}
	ErrCaptionGeneration error = &kind{name: "caption generation error"}
	ErrTransition        error = &kind{name: "transition error"}
	ErrEncoding          error = &kind{name: "encoding error"}
)

// Error carries a kind marker, the stage/operation that failed and a message
// suitable for showing to the user.
type Error struct {
	Kind      error
	Stage     string
	Operation string
	Message   string
	Err       error
}

func (e *Error) Error() string {
	parts := make([]string, 0, 5)
	if e.Kind != nil {
		parts = append(parts, e.Kind.Error())
	}
	parts = append(parts, buildDetail(e.Stage, e.Operation, e.Message))
	if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}
	return strings.Join(parts, ": ")
}

func (e *Error) Unwrap() []error {
	out := make([]error, 0, 2)
	if e.Kind != nil {
		out = append(out, e.Kind)
	}
	if e.Err != nil {
		out = append(out, e.Err)
	}
	return out
}

// Wrap builds an error that includes stage context while tagging it with the
// provided kind marker. The marker should be one of the exported kinds above;
// nil falls back to ErrVideoGeneration.
func Wrap(marker error, stage, operation, message string, err error) error {
	if marker == nil {
		marker = ErrVideoGeneration
	}
	return &Error{
		Kind:      marker,
		Stage:     strings.TrimSpace(stage),
		Operation: strings.TrimSpace(operation),
		Message:   strings.TrimSpace(message),
		Err:       err,
	}
}

// UserMessage returns the message of the outermost *Error in the chain, or
// the plain error text when the chain carries none.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var typed *Error
	if errors.As(err, &typed) && typed.Message != "" {
		return typed.Message
	}
	return err.Error()
}

// KindOf reports the kind marker of err, or nil when err is not part of the
// video generation family.
func KindOf(err error) error {
	for _, k := range []error{ErrValidation, ErrImageProcessing, ErrAudioProcessing, ErrCaptionGeneration, ErrTransition, ErrEncoding} {
		if errors.Is(err, k) {
			return k
		}
	}
	if errors.Is(err, ErrVideoGeneration) {
		return ErrVideoGeneration
	}
	return nil
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "generation failure"
	}
	return strings.Join(parts, ": ")
}

package models

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedLanguage is matched by UnsupportedLanguageError.
	ErrUnsupportedLanguage = errors.New("unsupported language")
	// ErrMalformedRecord is matched by MalformedRecordError.
	ErrMalformedRecord = errors.New("malformed record")
	// ErrInvalidFraction is returned when a train fraction is outside (0, 1).
	ErrInvalidFraction = errors.New("train fraction must be strictly between 0 and 1")
	// ErrStageOrder is returned when a split is moved out of pipeline order.
	ErrStageOrder = errors.New("stage transition out of order")
)

// UnsupportedLanguageError carries the language code that has no stop-word list
// or is outside the configured supported set.
type UnsupportedLanguageError struct {
	Code string
}

func (e *UnsupportedLanguageError) Error() string {
	if e.Code == "" {
		return "unsupported language: undetected"
	}
	return fmt.Sprintf("unsupported language: %s", e.Code)
}

func (e *UnsupportedLanguageError) Is(target error) bool {
	return target == ErrUnsupportedLanguage
}

// MalformedRecordError identifies a row (1-based, header excluded) with a
// missing or unparseable required field. Row 0 is the header.
type MalformedRecordError struct {
	Row    int
	Field  string
	Reason string // "missing" when empty
}

func (e *MalformedRecordError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = "missing"
	}
	return fmt.Sprintf("malformed record at row %d: %s %s", e.Row, reason, e.Field)
}

func (e *MalformedRecordError) Is(target error) bool {
	return target == ErrMalformedRecord
}

package domain

import (
	"errors"
	"strings"
)

var (
	ErrMissingColumn  = errors.New("missing column")
	ErrUnknownColumn  = errors.New("unknown column")
	ErrUnknownAct     = errors.New("unknown act")
	ErrUnknownPersona = errors.New("unknown persona")
)

// MissingColumnsError lists every required column absent from a source header.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return "missing column(s): " + strings.Join(e.Columns, ", ")
}

func (e *MissingColumnsError) Unwrap() error {
	return ErrMissingColumn
}

package shape

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// Input is raw, unvalidated user input from a form or flags.
type Input struct {
	Shape  string
	Rows   string
	Symbol string
}

// Field names reported by ValidationError.
const (
	FieldShape  = "shape"
	FieldRows   = "rows"
	FieldSymbol = "symbol"
)

// ValidationError describes input rejected before generation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// ParseRequest validates raw input and converts it to a Request.
// maxRows <= 0 disables the upper bound on rows.
// The first failing field is reported, checked in the order shape, rows, symbol.
func ParseRequest(in Input, maxRows int) (Request, error) {
	if strings.TrimSpace(in.Shape) == "" {
		return Request{}, invalid(FieldShape, "Please select a triangle type.")
	}
	s, err := Parse(in.Shape)
	if err != nil {
		return Request{}, invalid(FieldShape, "Invalid triangle type %q.", strings.TrimSpace(in.Shape))
	}

	rows, err := parseRows(in.Rows)
	if err != nil {
		return Request{}, err
	}
	if maxRows > 0 && rows > maxRows {
		return Request{}, invalid(FieldRows, "Rows must be at most %d.", maxRows)
	}

	sym, err := parseSymbol(in.Symbol)
	if err != nil {
		return Request{}, err
	}

	return Request{Shape: s, Rows: rows, Symbol: sym}, nil
}

// parseRows accepts decimal digits only, so signs and spaces inside are rejected.
func parseRows(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.TrimLeft(raw, "0123456789") != "" {
		return 0, invalid(FieldRows, "Rows must be a positive integer.")
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, invalid(FieldRows, "Rows must be a positive integer.")
	}
	return n, nil
}

func parseSymbol(raw string) (rune, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, invalid(FieldSymbol, "Symbol cannot be empty.")
	}
	if utf8.RuneCountInString(raw) != 1 {
		return 0, invalid(FieldSymbol, "Symbol must be a single character.")
	}
	r, _ := utf8.DecodeRuneInString(raw)
	if r == utf8.RuneError || !unicode.IsPrint(r) {
		return 0, invalid(FieldSymbol, "Symbol must be a printable character.")
	}
	// Alignment is counted in columns; wide or zero-width runes would skew it.
	if runewidth.RuneWidth(r) != 1 {
		return 0, invalid(FieldSymbol, "Symbol %q must occupy a single column.", raw)
	}
	return r, nil
}

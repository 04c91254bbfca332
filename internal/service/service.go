// Package service runs the validate, generate, persist pipeline shared by
// the CLI, the web form and the terminal form.
package service

import (
	"context"
	"time"

	"github.com/dkoosis/trigen/internal/store"
	"github.com/dkoosis/trigen/pkg/render"
	"github.com/dkoosis/trigen/pkg/shape"
)

// Options configures a Service.
type Options struct {
	// Store receives one record per generated pattern. Nil disables persistence.
	Store store.Saver
	// MaxRows caps the row count; <= 0 means no cap.
	MaxRows int
	// GateOnStore hides the pattern when saving fails.
	GateOnStore bool
	// Now stamps records; defaults to time.Now.
	Now func() time.Time
}

// Service turns raw input into a pattern and optionally stores it.
// It is safe for concurrent use when its Store is.
type Service struct {
	opts Options
}

// New creates a Service.
func New(opts Options) *Service {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Service{opts: opts}
}

// Outcome is the result of one Generate call.
type Outcome struct {
	Pattern render.Pattern
	// Persisting is true when a store was configured for this call.
	Persisting bool
	Stored     bool
	// StoreErr is the *store.Error from a failed save.
	StoreErr error
	// Hidden is set when GateOnStore suppressed the pattern after StoreErr.
	Hidden bool
}

// Visible reports whether the pattern should be displayed.
func (o Outcome) Visible() bool {
	return !o.Hidden && len(o.Pattern.Result.Lines) > 0
}

// Messages describing what happened to the save.
const (
	MsgStored      = "Pattern stored successfully."
	MsgUnavailable = "Database connection failed! The pattern was not stored."
	MsgInsert      = "Storing the pattern failed. It was not saved."
)

// StoreMessage reports the save outcome as a status kind ("success" or
// "warning") and a user-facing message. Both are empty when nothing was saved
// and nothing failed.
func (o Outcome) StoreMessage() (kind, msg string) {
	switch {
	case o.StoreErr != nil && store.IsUnavailable(o.StoreErr):
		return "warning", MsgUnavailable
	case o.StoreErr != nil:
		return "warning", MsgInsert
	case o.Stored:
		return "success", MsgStored
	}
	return "", ""
}

// MaxRows returns the configured row cap.
func (s *Service) MaxRows() int {
	return s.opts.MaxRows
}

// Persisting reports whether a store is configured.
func (s *Service) Persisting() bool {
	return s.opts.Store != nil
}

// Generate validates in, builds the pattern and saves it. The only error
// returned is a *shape.ValidationError; storage problems land in Outcome.
func (s *Service) Generate(ctx context.Context, in shape.Input) (Outcome, error) {
	req, err := shape.ParseRequest(in, s.opts.MaxRows)
	if err != nil {
		return Outcome{}, err
	}

	out := Outcome{
		Pattern: render.Pattern{Request: req, Result: shape.Generate(req)},
	}
	if s.opts.Store == nil {
		return out, nil
	}

	out.Persisting = true
	if err := s.opts.Store.Save(ctx, store.NewRecord(out.Pattern.Request, out.Pattern.Result, s.opts.Now())); err != nil {
		out.StoreErr = err
		out.Hidden = s.opts.GateOnStore
		return out, nil
	}
	out.Stored = true
	return out, nil
}

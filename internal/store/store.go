// Package store persists generated patterns to a document collection.
//
// Saving is best effort: every failure comes back as a *Error so callers can
// warn and carry on without the pattern being lost from the display.
package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dkoosis/trigen/internal/config"
	"github.com/dkoosis/trigen/pkg/shape"
)

// Record is one stored pattern. Field names match the documents written by
// earlier versions of the tool.
type Record struct {
	Shape     string    `bson:"triangle_type" json:"triangle_type"`
	Rows      int       `bson:"rows" json:"rows"`
	Symbol    string    `bson:"symbol" json:"symbol"`
	Pattern   string    `bson:"pattern" json:"pattern"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// NewRecord builds the record for a generated pattern.
func NewRecord(req shape.Request, res shape.Result, at time.Time) Record {
	return Record{
		Shape:     req.Shape.Label(),
		Rows:      req.Rows,
		Symbol:    string(req.Symbol),
		Pattern:   res.String(),
		CreatedAt: at,
	}
}

// Saver inserts a single record.
type Saver interface {
	Save(ctx context.Context, rec Record) error
}

// Store is a Saver holding a connection that must be released.
type Store interface {
	Saver
	Close(ctx context.Context) error
}

// Open returns the backend selected by the URL scheme. It does not contact
// the server; reachability is checked on every Save within timeout.
func Open(cfg config.Store, timeout time.Duration) (Store, error) {
	switch {
	case strings.HasPrefix(cfg.URL, "mongodb://"), strings.HasPrefix(cfg.URL, "mongodb+srv://"):
		return OpenMongo(cfg, timeout)
	case strings.HasPrefix(cfg.URL, "sqlite://"):
		return OpenSQLite(cfg, timeout)
	default:
		scheme := cfg.URL
		if i := strings.Index(scheme, "://"); i >= 0 {
			scheme = scheme[:i]
		}
		return nil, fmt.Errorf("unsupported store URL scheme %q (expected mongodb, mongodb+srv or sqlite)", scheme)
	}
}

// Package cache stores pipeline results keyed by content hashes.
//
// # Overview
//
// A [Cache] is a byte-oriented key/value store with per-entry TTLs. Three
// backends are provided:
//
//   - [NullCache]: stores nothing; used when caching is disabled
//   - [FileCache]: one JSON file per entry, for the CLI
//   - [RedisCache]: shared cache for the HTTP server
//
// Keys are derived by a [Keyer] from the hash of the canonical graph JSON
// plus the options that influence the result, so two runs over the same
// input with the same options hit the same entry. [ScopedKeyer] prefixes
// keys to keep deployments apart on a shared Redis.
package cache

import (
	"context"
	"time"
)

// Default TTLs per entry kind.
const (
	GraphTTL    = 24 * time.Hour
	ResultTTL   = 7 * 24 * time.Hour
	ArtifactTTL = 7 * 24 * time.Hour
)

// Cache is the storage contract shared by all backends. Get reports a miss
// with ok == false and a nil error; errors are reserved for backend failures.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Keyer derives cache keys.
type Keyer interface {
	// GraphKey addresses a canonical input graph by its content hash.
	GraphKey(graphHash string) string
	// ResultKey addresses a processed graph.
	ResultKey(graphHash string, opts ResultKeyOpts) string
	// ArtifactKey addresses a rendered output of a processed graph.
	ArtifactKey(resultHash string, opts ArtifactKeyOpts) string
}

// ResultKeyOpts are the transform options that change a processed graph.
type ResultKeyOpts struct {
	Repair      bool `json:"repair"`
	StickFigure bool `json:"stick_figure"`
	Processes   bool `json:"processes"`
}

// ArtifactKeyOpts are the render options that change an artifact.
type ArtifactKeyOpts struct {
	Format      string `json:"format"`
	Detailed    bool   `json:"detailed"`
	Attachments bool   `json:"attachments"`
}

// DefaultKeyer is the unscoped [Keyer].
type DefaultKeyer struct{}

// NewDefaultKeyer returns a [DefaultKeyer].
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) GraphKey(graphHash string) string {
	return "graph:" + graphHash
}

func (DefaultKeyer) ResultKey(graphHash string, opts ResultKeyOpts) string {
	return hashKey("result", graphHash, opts)
}

func (DefaultKeyer) ArtifactKey(resultHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", resultHash, opts)
}

var _ Keyer = DefaultKeyer{}

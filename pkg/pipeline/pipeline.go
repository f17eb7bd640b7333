// Package pipeline runs morphology graphs through the transform stages.
//
// The pipeline is shared by the CLI and the HTTP API so both apply the same
// stages in the same order with the same caching:
//
//  1. Repair: bridge disconnected components in every graph of the tree
//  2. Reduce: collapse process nodes into stick figures
//  3. Processes: list the unbranched chains of what is left
//  4. Export: produce the requested output formats
//
// Stages 1-3 are optional and run on a copy of the input; the caller's
// graph is never mutated.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, g, pipeline.Options{
//	    Repair:      true,
//	    StickFigure: true,
//	    Formats:     []string{"json", "svg"},
//	})
//	if err != nil {
//	    return err
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/morphgraph/pkg/cache"
	"github.com/matzehuels/morphgraph/pkg/errors"
	"github.com/matzehuels/morphgraph/pkg/morph"
	"github.com/matzehuels/morphgraph/pkg/morph/transform"
	"github.com/matzehuels/morphgraph/pkg/render"
)

// DefaultPNGScale is the resolution multiplier for PNG output.
const DefaultPNGScale = 2.0

// ValidFormats lists the supported output formats in display order.
var ValidFormats = []string{
	render.FormatJSON,
	render.FormatDOT,
	render.FormatSVG,
	render.FormatPDF,
	render.FormatPNG,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options configures one pipeline run. It is decoded from API requests.
type Options struct {
	// Transform options
	Repair      bool `json:"repair,omitempty"`
	StickFigure bool `json:"stick_figure,omitempty"`
	Processes   bool `json:"processes,omitempty"`

	// Export options
	Formats     []string `json:"formats,omitempty"`
	Detailed    bool     `json:"detailed,omitempty"`
	Attachments bool     `json:"attachments,omitempty"`

	// Refresh skips cache reads; results are still written.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	validated bool
}

// ValidateAndSetDefaults checks the options and fills in defaults. It is
// idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{render.FormatJSON}
	}
	if err := errors.ValidateFormats(o.Formats, ValidFormats); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// ResultKeyOpts returns the cache key options for the transform stages.
func (o *Options) ResultKeyOpts() cache.ResultKeyOpts {
	return cache.ResultKeyOpts{
		Repair:      o.Repair,
		StickFigure: o.StickFigure,
		Processes:   o.Processes,
	}
}

// ArtifactKeyOpts returns the cache key options for one output format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:      format,
		Detailed:    o.Detailed,
		Attachments: o.Attachments,
	}
}

// =============================================================================
// Result
// =============================================================================

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID identifies this run in logs and API responses.
	RunID string

	// Graph is the processed graph tree.
	Graph *morph.Graph

	// GraphHash is the content hash of the input graph; ResultHash that of
	// the processed one.
	GraphHash  string
	ResultHash string

	Repair    *transform.Report
	Reduce    *transform.Report
	Processes *transform.ProcessSet

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Graphs      int           `json:"graphs"`
	NodesBefore int           `json:"nodes_before"`
	EdgesBefore int           `json:"edges_before"`
	NodesAfter  int           `json:"nodes_after"`
	EdgesAfter  int           `json:"edges_after"`
	RepairTime  time.Duration `json:"repair_ns"`
	ReduceTime  time.Duration `json:"reduce_ns"`
	ExportTime  time.Duration `json:"export_ns"`
}

// CacheInfo tracks cache hits for each stage.
type CacheInfo struct {
	ResultHit bool `json:"result_hit"` // transforms came from cache
	ExportHit bool `json:"export_hit"` // every artifact came from cache
}

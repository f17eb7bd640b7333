package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/morphgraph/pkg/cache"
	graphio "github.com/matzehuels/morphgraph/pkg/io"
	"github.com/matzehuels/morphgraph/pkg/morph"
	"github.com/matzehuels/morphgraph/pkg/morph/transform"
	"github.com/matzehuels/morphgraph/pkg/observability"
)

// Cache key types reported to observability hooks.
const (
	keyTypeResult   = "result"
	keyTypeArtifact = "artifact"
)

// Runner encapsulates pipeline execution with caching. It holds no
// per-run state, so one Runner can serve concurrent requests.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL overrides the per-kind default cache TTLs when positive.
	TTL time.Duration
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer
// means [cache.DefaultKeyer] and a nil logger means log.Default().
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Load decodes a graph tree from JSON.
func (r *Runner) Load(ctx context.Context, rd io.Reader) (*morph.Graph, error) {
	var g *morph.Graph
	d, err := stage(ctx, observability.StageLoad, func() error {
		var err error
		g, err = graphio.ReadJSON(rd)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	graphs, nodes, edges := g.TreeSize()
	r.Logger.Debug("loaded graph tree", "graphs", graphs, "nodes", nodes, "edges", edges, "duration", d)
	return g, nil
}

// Execute runs the enabled stages over a copy of g.
func (r *Runner) Execute(ctx context.Context, g *morph.Graph, opts Options) (*Result, error) {
	if g == nil {
		return nil, morph.ErrNilGraph
	}
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{
		RunID:     uuid.NewString(),
		Artifacts: make(map[string][]byte),
	}
	logger := opts.Logger.With("run", result.RunID[:8])

	input, err := graphio.MarshalGraph(g)
	if err != nil {
		return nil, fmt.Errorf("encode input: %w", err)
	}
	result.GraphHash = cache.Hash(input)
	result.Stats.Graphs, result.Stats.NodesBefore, result.Stats.EdgesBefore = g.TreeSize()

	work, output, err := r.transformWithCache(ctx, input, opts, result, logger)
	if err != nil {
		return nil, err
	}
	result.Graph = work
	result.ResultHash = cache.Hash(output)
	_, result.Stats.NodesAfter, result.Stats.EdgesAfter = work.TreeSize()

	var artifacts map[string][]byte
	var exportHit bool
	result.Stats.ExportTime, err = stage(ctx, observability.StageExport, func() error {
		var err error
		artifacts, exportHit, err = r.exportWithCache(ctx, work, result.ResultHash, opts)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	result.Artifacts = artifacts
	result.CacheInfo.ExportHit = exportHit

	logger.Info("pipeline complete",
		"graphs", result.Stats.Graphs,
		"nodes", fmt.Sprintf("%d→%d", result.Stats.NodesBefore, result.Stats.NodesAfter),
		"edges", fmt.Sprintf("%d→%d", result.Stats.EdgesBefore, result.Stats.EdgesAfter),
		"formats", opts.Formats,
		"cached", result.CacheInfo.ResultHit)
	return result, nil
}

// cachedResult is the cache encoding of the transform stages.
type cachedResult struct {
	Graph     json.RawMessage       `json:"graph"`
	Repair    *transform.Report     `json:"repair,omitempty"`
	Reduce    *transform.Report     `json:"reduce,omitempty"`
	Processes *transform.ProcessSet `json:"processes,omitempty"`
}

// transformWithCache returns the processed graph and its canonical JSON.
func (r *Runner) transformWithCache(ctx context.Context, input []byte, opts Options, res *Result, logger *log.Logger) (*morph.Graph, []byte, error) {
	work, err := graphio.UnmarshalGraph(input)
	if err != nil {
		return nil, nil, fmt.Errorf("copy input: %w", err)
	}
	if !opts.Repair && !opts.StickFigure && !opts.Processes {
		return work, input, nil
	}

	key := r.Keyer.ResultKey(res.GraphHash, opts.ResultKeyOpts())
	if !opts.Refresh {
		if cached, ok := r.lookupResult(ctx, key); ok {
			g, err := graphio.UnmarshalGraph(cached.Graph)
			if err == nil {
				res.Repair, res.Reduce, res.Processes = cached.Repair, cached.Reduce, cached.Processes
				res.CacheInfo.ResultHit = true
				logger.Debug("transforms served from cache", "key", key)
				return g, cached.Graph, nil
			}
			logger.Warn("discarding unreadable cache entry", "key", key, "err", err)
		}
	}

	if err := r.runTransforms(ctx, work, opts, res, logger); err != nil {
		return nil, nil, err
	}

	output, err := graphio.MarshalGraph(work)
	if err != nil {
		return nil, nil, fmt.Errorf("encode result: %w", err)
	}
	data, err := json.Marshal(cachedResult{
		Graph:     output,
		Repair:    res.Repair,
		Reduce:    res.Reduce,
		Processes: res.Processes,
	})
	if err == nil {
		if err := r.Cache.Set(ctx, key, data, r.ttl(cache.ResultTTL)); err != nil {
			logger.Warn("cache write failed", "key", key, "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, keyTypeResult, len(data))
		}
	}
	return work, output, nil
}

func (r *Runner) lookupResult(ctx context.Context, key string) (cachedResult, bool) {
	var cached cachedResult
	data, ok, err := r.Cache.Get(ctx, key)
	if err != nil || !ok {
		observability.Cache().OnCacheMiss(ctx, keyTypeResult)
		return cached, false
	}
	if err := json.Unmarshal(data, &cached); err != nil {
		observability.Cache().OnCacheMiss(ctx, keyTypeResult)
		return cached, false
	}
	observability.Cache().OnCacheHit(ctx, keyTypeResult)
	return cached, true
}

// runTransforms applies repair, reduction and process listing to g in place.
func (r *Runner) runTransforms(ctx context.Context, g *morph.Graph, opts Options, res *Result, logger *log.Logger) error {
	hooks := observability.Pipeline()

	if opts.Repair {
		var err error
		res.Stats.RepairTime, err = stage(ctx, observability.StageRepair, func() error {
			rep, err := transform.RepairConnectivity(ctx, g)
			res.Repair = rep
			return err
		})
		if err != nil {
			return fmt.Errorf("repair: %w", err)
		}
		t := res.Repair.Totals()
		hooks.OnRepair(ctx, t.Bridges)
		logger.Info("repaired connectivity",
			"fragmented", t.Fragmented,
			"bridges", t.Bridges,
			"duration", res.Stats.RepairTime)
	}

	if opts.StickFigure {
		var err error
		res.Stats.ReduceTime, err = stage(ctx, observability.StageReduce, func() error {
			rep, err := transform.ToStickFigure(ctx, g)
			res.Reduce = rep
			return err
		})
		if err != nil {
			return fmt.Errorf("reduce: %w", err)
		}
		t := res.Reduce.Totals()
		hooks.OnReduce(ctx, t.Removed)
		logger.Info("reduced to stick figure",
			"removed", t.Removed,
			"rewired", t.Rewired,
			"duration", res.Stats.ReduceTime)
	}

	if opts.Processes {
		_, err := stage(ctx, observability.StageProcesses, func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res.Processes = transform.ProcessTree(g)
			return nil
		})
		if err != nil {
			return fmt.Errorf("processes: %w", err)
		}
		logger.Info("listed processes", "chains", res.Processes.Count())
	}
	return nil
}

// exportWithCache renders every requested format, serving all of them from
// the cache when possible.
func (r *Runner) exportWithCache(ctx context.Context, g *morph.Graph, resultHash string, opts Options) (map[string][]byte, bool, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	if !opts.Refresh {
		for _, format := range opts.Formats {
			key := r.Keyer.ArtifactKey(resultHash, opts.ArtifactKeyOpts(format))
			data, ok, err := r.Cache.Get(ctx, key)
			if err != nil || !ok {
				observability.Cache().OnCacheMiss(ctx, keyTypeArtifact)
				break
			}
			observability.Cache().OnCacheHit(ctx, keyTypeArtifact)
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			return artifacts, true, nil
		}
	}

	rendered, err := Render(ctx, g, opts)
	if err != nil {
		return nil, false, err
	}
	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(resultHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, r.ttl(cache.ArtifactTTL)); err == nil {
			observability.Cache().OnCacheSet(ctx, keyTypeArtifact, len(data))
		}
	}
	return rendered, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) ttl(def time.Duration) time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return def
}

func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// stage times fn and reports it to the pipeline hooks.
func stage(ctx context.Context, name string, fn func() error) (time.Duration, error) {
	hooks := observability.Pipeline()
	hooks.OnStageStart(ctx, name)
	start := time.Now()
	err := fn()
	d := time.Since(start)
	hooks.OnStageComplete(ctx, name, d, err)
	return d, err
}

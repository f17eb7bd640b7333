package pipeline

import (
	"bytes"
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/morphgraph/pkg/cache"
	mgerrors "github.com/matzehuels/morphgraph/pkg/errors"
	graphio "github.com/matzehuels/morphgraph/pkg/io"
	"github.com/matzehuels/morphgraph/pkg/morph"
	"github.com/matzehuels/morphgraph/pkg/observability"
)

// Two three-node lines along the x axis; node 3 and node 4 are 1 apart.
const twoLines = `{
  "structure_id": 0,
  "nodes": [
    {"id": 1, "z": 0, "shape": {"kind": "point", "center": [0, 0]}},
    {"id": 2, "z": 0, "shape": {"kind": "point", "center": [1, 0]}},
    {"id": 3, "z": 0, "shape": {"kind": "point", "center": [2, 0]}},
    {"id": 4, "z": 0, "shape": {"kind": "point", "center": [3, 0]}},
    {"id": 5, "z": 0, "shape": {"kind": "point", "center": [4, 0]}},
    {"id": 6, "z": 0, "shape": {"kind": "point", "center": [5, 0]}}
  ],
  "edges": [{"a": 1, "b": 2}, {"a": 2, "b": 3}, {"a": 4, "b": 5}, {"a": 5, "b": 6}]
}`

func load(t *testing.T, r *Runner) *morph.Graph {
	t.Helper()
	g, err := r.Load(context.Background(), strings.NewReader(twoLines))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return g
}

func TestOptionsDefaults(t *testing.T) {
	var opts Options
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error = %v", err)
	}
	if !slices.Equal(opts.Formats, []string{"json"}) {
		t.Errorf("Formats = %v, want [json]", opts.Formats)
	}
	if opts.Logger == nil {
		t.Error("Logger not defaulted")
	}

	bad := Options{Formats: []string{"svg", "gif"}}
	err := bad.ValidateAndSetDefaults()
	if !mgerrors.Is(err, mgerrors.ErrCodeInvalidFormat) {
		t.Errorf("ValidateAndSetDefaults(gif) error = %v, want INVALID_FORMAT", err)
	}
}

func TestExecuteRepairAndReduce(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	g := load(t, r)

	res, err := r.Execute(context.Background(), g, Options{
		Repair:      true,
		StickFigure: true,
		Formats:     []string{"json", "dot"},
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if got := res.Repair.Totals().Bridges; got != 1 {
		t.Errorf("bridges = %d, want 1", got)
	}
	if !slices.Equal(res.Repair.Bridges, []morph.EdgeKey{{A: 3, B: 4}}) {
		t.Errorf("Repair.Bridges = %v, want [(3,4)]", res.Repair.Bridges)
	}
	if !slices.Equal(res.Reduce.Removed, []uint64{2, 3, 4, 5}) {
		t.Errorf("Reduce.Removed = %v, want [2 3 4 5]", res.Reduce.Removed)
	}
	if !res.Graph.HasEdge(1, 6) || res.Graph.NodeCount() != 2 {
		t.Errorf("result graph: %d nodes, edge (1,6) = %v", res.Graph.NodeCount(), res.Graph.HasEdge(1, 6))
	}
	if res.Stats.NodesBefore != 6 || res.Stats.NodesAfter != 2 {
		t.Errorf("Stats = %+v, want 6 -> 2 nodes", res.Stats)
	}

	// The caller's graph is untouched.
	if g.NodeCount() != 6 || g.EdgeCount() != 4 {
		t.Errorf("input mutated: %d nodes, %d edges", g.NodeCount(), g.EdgeCount())
	}

	back, err := graphio.UnmarshalGraph(res.Artifacts["json"])
	if err != nil {
		t.Fatalf("json artifact: %v", err)
	}
	if !back.HasEdge(1, 6) {
		t.Error("json artifact missing edge (1,6)")
	}
	if !bytes.Contains(res.Artifacts["dot"], []byte("s0_n1 -- s0_n6;")) {
		t.Errorf("dot artifact missing edge:\n%s", res.Artifacts["dot"])
	}
	if res.RunID == "" || res.GraphHash == "" || res.ResultHash == res.GraphHash {
		t.Errorf("RunID = %q, GraphHash = %q, ResultHash = %q", res.RunID, res.GraphHash, res.ResultHash)
	}
}

func TestExecuteProcesses(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(context.Background(), load(t, r), Options{Processes: true})
	if err != nil {
		t.Fatal(err)
	}
	want := [][]uint64{{1, 2, 3}, {4, 5, 6}}
	if !slices.EqualFunc(res.Processes.Chains, want, slices.Equal) {
		t.Errorf("Processes.Chains = %v, want %v", res.Processes.Chains, want)
	}
	if res.Repair != nil || res.Reduce != nil {
		t.Error("disabled stages produced reports")
	}
}

func TestExecuteCaching(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(fc, nil, nil)
	g := load(t, r)
	opts := Options{Repair: true, Formats: []string{"json"}}

	first, err := r.Execute(context.Background(), g, opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.CacheInfo.ResultHit || first.CacheInfo.ExportHit {
		t.Errorf("first run CacheInfo = %+v, want misses", first.CacheInfo)
	}

	second, err := r.Execute(context.Background(), g, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheInfo.ResultHit || !second.CacheInfo.ExportHit {
		t.Errorf("second run CacheInfo = %+v, want hits", second.CacheInfo)
	}
	if second.ResultHash != first.ResultHash {
		t.Errorf("ResultHash changed: %s vs %s", first.ResultHash, second.ResultHash)
	}
	if !slices.Equal(second.Repair.Bridges, first.Repair.Bridges) {
		t.Errorf("cached Repair.Bridges = %v, want %v", second.Repair.Bridges, first.Repair.Bridges)
	}
	if !bytes.Equal(second.Artifacts["json"], first.Artifacts["json"]) {
		t.Error("cached artifact differs")
	}
	if first.RunID == second.RunID {
		t.Error("RunID reused across runs")
	}

	opts.Refresh = true
	third, err := r.Execute(context.Background(), g, opts)
	if err != nil {
		t.Fatal(err)
	}
	if third.CacheInfo.ResultHit {
		t.Error("Refresh still read the cache")
	}
}

func TestExecuteErrors(t *testing.T) {
	r := NewRunner(nil, nil, nil)

	if _, err := r.Execute(context.Background(), nil, Options{}); !errors.Is(err, morph.ErrNilGraph) {
		t.Errorf("Execute(nil) error = %v, want ErrNilGraph", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := r.Execute(ctx, load(t, r), Options{Repair: true}); !errors.Is(err, context.Canceled) {
		t.Errorf("Execute(canceled) error = %v, want context.Canceled", err)
	}

	if _, err := r.Load(context.Background(), strings.NewReader("{")); err == nil {
		t.Error("Load(malformed) error = nil")
	}
}

type recordingHooks struct {
	observability.NoopPipelineHooks
	mu     sync.Mutex
	stages []string
}

func (h *recordingHooks) OnStageComplete(_ context.Context, stage string, _ time.Duration, _ error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stages = append(h.stages, stage)
}

func TestExecuteHooks(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetPipelineHooks(hooks)
	defer observability.Reset()

	r := NewRunner(nil, nil, nil)
	if _, err := r.Execute(context.Background(), load(t, r), Options{Repair: true, StickFigure: true, Processes: true}); err != nil {
		t.Fatal(err)
	}
	want := []string{
		observability.StageLoad,
		observability.StageRepair,
		observability.StageReduce,
		observability.StageProcesses,
		observability.StageExport,
	}
	if !slices.Equal(hooks.stages, want) {
		t.Errorf("stages = %v, want %v", hooks.stages, want)
	}
}

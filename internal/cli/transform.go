package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	mgerrors "github.com/matzehuels/morphgraph/pkg/errors"
	graphio "github.com/matzehuels/morphgraph/pkg/io"
	"github.com/matzehuels/morphgraph/pkg/pipeline"
	"github.com/matzehuels/morphgraph/pkg/render"
)

// runFlags are shared by the commands that run the pipeline.
type runFlags struct {
	output  string
	noCache bool
	refresh bool
}

func (f *runFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable the result cache")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "recompute even when a cached result exists")
}

func (c *CLI) repairCommand() *cobra.Command {
	var flags runFlags
	cmd := &cobra.Command{
		Use:   "repair <graph.json>",
		Short: "Bridge disconnected fragments in every graph of a tree",
		Long: `Repair joins the connected components of every graph in the tree by
adding, for each fragment, one edge between its nearest node pair and the
rest of the graph. Subgraphs are repaired as well. Use "-" to read stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := pipeline.Options{Repair: true, Refresh: flags.refresh}
			res, err := c.run(cmd, args[0], opts, flags)
			if err != nil {
				return err
			}
			t := res.Repair.Totals()
			printSuccess(cmd.ErrOrStderr(), "Repaired %d of %d graphs with %d bridging edges", t.Fragmented, t.Graphs, t.Bridges)
			printReport(cmd.ErrOrStderr(), res.Repair)
			printStats(cmd.ErrOrStderr(), res.Stats, res.CacheInfo.ResultHit)
			return emit(cmd, res, flags.output)
		},
	}
	flags.register(cmd)
	return cmd
}

func (c *CLI) reduceCommand() *cobra.Command {
	var flags runFlags
	var noRepair bool
	cmd := &cobra.Command{
		Use:   "reduce <graph.json>",
		Short: "Collapse unbranched processes into a stick figure",
		Long: `Reduce removes every node of degree two, linking its neighbors directly,
until only branch points, terminals and isolated nodes remain. Fragments
are bridged first unless --no-repair is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := pipeline.Options{Repair: !noRepair, StickFigure: true, Refresh: flags.refresh}
			res, err := c.run(cmd, args[0], opts, flags)
			if err != nil {
				return err
			}
			if res.Repair != nil {
				printReport(cmd.ErrOrStderr(), res.Repair)
			}
			t := res.Reduce.Totals()
			printSuccess(cmd.ErrOrStderr(), "Removed %d process nodes, added %d edges", t.Removed, t.Rewired)
			printStats(cmd.ErrOrStderr(), res.Stats, res.CacheInfo.ResultHit)
			return emit(cmd, res, flags.output)
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&noRepair, "no-repair", false, "skip connectivity repair")
	return cmd
}

func (c *CLI) processesCommand() *cobra.Command {
	var flags runFlags
	var asJSON, repair bool
	cmd := &cobra.Command{
		Use:   "processes <graph.json>",
		Short: "List the unbranched chains of every graph",
		Long: `Processes walks every chain of degree-two nodes, including the branch
points or terminals at either end, and prints one chain per line. Closed
rings are listed once.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("repair") {
				repair = c.cfg().Pipeline.Repair
			}
			opts := pipeline.Options{Repair: repair, Processes: true, Refresh: flags.refresh}
			res, err := c.run(cmd, args[0], opts, flags)
			if err != nil {
				return err
			}
			if !asJSON {
				printProcesses(cmd.OutOrStdout(), res.Processes)
				return nil
			}
			data, err := json.MarshalIndent(res.Processes, "", "  ")
			if err != nil {
				return err
			}
			return writeOutput(cmd, flags.output, append(data, '\n'))
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print chains as JSON")
	cmd.Flags().BoolVar(&repair, "repair", false, "bridge fragments before walking (default from [pipeline].repair)")
	return cmd
}

// run loads path and executes the pipeline with a spinner on stderr.
func (c *CLI) run(cmd *cobra.Command, path string, opts pipeline.Options, flags runFlags) (*pipeline.Result, error) {
	if err := mgerrors.ValidatePath(path); err != nil {
		return nil, err
	}
	ctx := cmd.Context()
	logger := commandLogger(ctx)

	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return nil, err
	}
	defer runner.Close()

	g, err := loadGraph(ctx, runner, path, cmd.InOrStdin())
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	opts.Logger = logger
	prog := newProgress(logger)
	sp := startSpinner(ctx, cmd.ErrOrStderr(), "Processing "+path)
	res, err := runner.Execute(ctx, g, opts)
	sp.Stop()
	if err != nil {
		return nil, err
	}
	prog.done("pipeline complete", "run", res.RunID[:8], "graphs", res.Stats.Graphs)
	return res, nil
}

// emit writes the processed graph as JSON.
func emit(cmd *cobra.Command, res *pipeline.Result, output string) error {
	data, ok := res.Artifacts[render.FormatJSON]
	if !ok {
		var err error
		if data, err = graphio.MarshalGraph(res.Graph); err != nil {
			return err
		}
	}
	return writeOutput(cmd, output, data)
}

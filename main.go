package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// app carries the state shared by every subcommand.
type app struct {
	configPath string
	verbose    bool
	cfg        Config
	logger     *log.Logger
}

func newRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:          "prm",
		Short:        "Probabilistic roadmap planner over occupancy maps",
		Long:         `prm samples a probabilistic roadmap over a map, reduces it to a minimum spanning tree and answers point-to-point queries along the tree.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := log.InfoLevel
			if a.verbose {
				level = log.DebugLevel
			}
			a.logger = newLogger(os.Stderr, level)
			log.SetDefault(a.logger)

			cfg, err := LoadConfig(a.configPath)
			if err != nil {
				return err
			}
			a.cfg = cfg
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "YAML configuration file")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(a.generateCommand())
	root.AddCommand(a.pathCommand())
	root.AddCommand(a.serveCommand())

	return root
}

// mapFlags lets any command override the map source from the command line.
type mapFlags struct {
	image     string
	obstacles string
}

func (f *mapFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.image, "map", "", "occupancy bitmap (overrides config)")
	cmd.Flags().StringVar(&f.obstacles, "obstacles", "", "GeoJSON obstacle file or directory (overrides config)")
}

func (f *mapFlags) apply(cfg *Config) {
	if f.image != "" {
		cfg.Map.Image = f.image
		cfg.Map.Obstacles = ""
	}
	if f.obstacles != "" {
		cfg.Map.Obstacles = f.obstacles
	}
}

func (a *app) generateCommand() *cobra.Command {
	var maps mapFlags

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Sample a roadmap and save it with its minimum spanning tree",
		RunE: func(cmd *cobra.Command, args []string) error {
			maps.apply(&a.cfg)
			flags := cmd.Flags()
			if flags.Changed("vertices") {
				a.cfg.Vertices, _ = flags.GetInt("vertices")
			}
			if flags.Changed("radius") {
				a.cfg.Radius, _ = flags.GetFloat64("radius")
			}
			if flags.Changed("seed") {
				a.cfg.Seed, _ = flags.GetUint64("seed")
			}
			if flags.Changed("retries") {
				a.cfg.Retries, _ = flags.GetInt("retries")
			}
			return a.runGenerate()
		},
	}

	maps.register(cmd)
	cmd.Flags().Int("vertices", 0, "number of roadmap vertices")
	cmd.Flags().Float64("radius", 0, "connection radius in map units")
	cmd.Flags().Uint64("seed", 0, "random seed (0 = time based)")
	cmd.Flags().Int("retries", 0, "resamples allowed when the roadmap is disconnected")
	return cmd
}

func (a *app) runGenerate() error {
	oracle, err := a.cfg.OpenOracle()
	if err != nil {
		return err
	}

	prog := newProgress(a.logger)
	roadmap, err := Generate(oracle, a.cfg.Sampler(), NewRand(a.cfg.Seed), a.cfg.Retries)
	if err != nil {
		var disconnected *DisconnectedError
		if errors.As(err, &disconnected) {
			return fmt.Errorf("giving up after %d attempts: %w", a.cfg.Retries+1, err)
		}
		return err
	}
	prog.done("Spanning tree ready",
		"attempts", roadmap.Attempts,
		"roadmap_edges", roadmap.Graph.EdgeCount(),
		"tree_weight", roadmap.Tree.TotalWeight())

	if err := SaveGraphCSV(roadmap.Graph, a.cfg.GraphOut); err != nil {
		return err
	}
	a.logger.Info("Roadmap saved", "file", a.cfg.GraphOut)

	if err := SaveGraphCSV(roadmap.Tree, a.cfg.TreeOut); err != nil {
		return err
	}
	a.logger.Info("Spanning tree saved", "file", a.cfg.TreeOut)
	return nil
}

func (a *app) pathCommand() *cobra.Command {
	var maps mapFlags
	var treeFile, out string

	cmd := &cobra.Command{
		Use:   "path X1 Y1 X2 Y2",
		Short: "Find the tree path between two coordinates",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			maps.apply(&a.cfg)
			if treeFile != "" {
				a.cfg.TreeOut = treeFile
			}
			if out != "" {
				a.cfg.PathOut = out
			}

			coords := make([]float64, len(args))
			for i, arg := range args {
				v, err := strconv.ParseFloat(arg, 64)
				if err != nil {
					return fmt.Errorf("coordinate %q: %w", arg, err)
				}
				coords[i] = v
			}
			return a.runPath(Point{X: coords[0], Y: coords[1]}, Point{X: coords[2], Y: coords[3]})
		},
	}

	maps.register(cmd)
	cmd.Flags().StringVar(&treeFile, "tree", "", "spanning tree CSV (overrides config)")
	cmd.Flags().StringVarP(&out, "output", "o", "", "path CSV output (overrides config)")
	return cmd
}

func (a *app) runPath(start, end Point) error {
	oracle, err := a.cfg.OpenOracle()
	if err != nil {
		return err
	}
	tree, err := LoadGraphCSV(a.cfg.TreeOut)
	if err != nil {
		return err
	}

	result, err := Route(tree, oracle, start, end)
	if err != nil {
		return err
	}
	a.logger.Info("Nearest vertices",
		"start", tree.Vertices[result.StartVertex],
		"end", tree.Vertices[result.EndVertex])
	a.logger.Info("Path found", "vertices", result.Path, "length", result.Length)

	if err := SavePathCSV(tree, result.Path, a.cfg.PathOut); err != nil {
		return err
	}
	a.logger.Info("Path saved", "file", a.cfg.PathOut)
	return nil
}

func (a *app) serveCommand() *cobra.Command {
	var maps mapFlags
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve roadmap building and routing over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			maps.apply(&a.cfg)
			if listen != "" {
				a.cfg.Listen = listen
			}
			return a.runServe(cmd.Context())
		},
	}

	maps.register(cmd)
	cmd.Flags().StringVar(&listen, "listen", "", "listen address (overrides config)")
	return cmd
}

func (a *app) runServe(ctx context.Context) error {
	oracle, err := a.cfg.OpenOracle()
	if err != nil {
		return err
	}

	tree, err := loadExistingTree(a.cfg.TreeOut)
	if err != nil {
		return err
	}
	if tree != nil {
		a.logger.Info("Loaded existing spanning tree", "file", a.cfg.TreeOut, "vertices", tree.Len())
	} else {
		a.logger.Info("No existing spanning tree, call POST /roadmap to build one", "file", a.cfg.TreeOut)
	}

	srv := &http.Server{
		Addr:              a.cfg.Listen,
		Handler:           newServer(a.cfg, oracle, tree).routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		a.logger.Info("Server starting", "addr", a.cfg.Listen)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		a.logger.Info("Shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

// Command colonysim runs the headless colony simulation: peons, sheep and
// bears living off a generated island until stopped.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/talgya/mini-colony/internal/agents"
	"github.com/talgya/mini-colony/internal/catalog"
	"github.com/talgya/mini-colony/internal/engine"
	"github.com/talgya/mini-colony/internal/entropy"
	"github.com/talgya/mini-colony/internal/journal"
	"github.com/talgya/mini-colony/internal/tuning"
	"github.com/talgya/mini-colony/internal/world"
)

func main() {
	var (
		seedFlag    = flag.Int64("seed", 0, "world seed (0 = random)")
		ticks       = flag.Uint64("ticks", 3*engine.TicksPerSimDay, "stop after this many ticks (0 = run until interrupted)")
		interval    = flag.Duration("interval", 0, "wall-clock time per tick (0 = as fast as possible)")
		tuningPath  = flag.String("tuning", "", "YAML tuning file (empty = built-in defaults)")
		journalPath = flag.String("journal", "data/colony.db", "SQLite journal path (empty = disabled)")
		traceDir    = flag.String("trace", "", "directory for the zstd JSONL tick trace (empty = disabled)")
		width       = flag.Int("width", 0, "grid width (0 = default)")
		height      = flag.Int("height", 0, "grid height (0 = default)")
		verbose     = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	seed := entropy.Seed(*seedFlag)
	runID := uuid.NewString()
	slog.Info("colony simulation", "run", runID, "seed", seed)

	// ── Tuning ────────────────────────────────────────────────────────
	tn := tuning.Default()
	if *tuningPath != "" {
		var err error
		if tn, err = tuning.Load(*tuningPath); err != nil {
			slog.Error("failed to load tuning", "path", *tuningPath, "error", err)
			os.Exit(1)
		}
	}
	rules, err := tn.Rules()
	if err != nil {
		slog.Error("invalid tuning", "error", err)
		os.Exit(1)
	}

	// ── World Map (deterministic from seed) ───────────────────────────
	cfg := world.DefaultGenConfig()
	cfg.Seed = seed
	if *width > 0 {
		cfg.Width = *width
	}
	if *height > 0 {
		cfg.Height = *height
	}
	grid := world.Generate(cfg)

	landTiles := 0
	for t, c := range world.TerrainCounts(grid) {
		if t != world.TerrainOcean {
			landTiles += c
		}
		slog.Debug("terrain", "type", world.TerrainName(t), "count", c)
	}

	// ── Simulation ────────────────────────────────────────────────────
	w := engine.NewWorld(grid, rules)
	sim := engine.NewSimulation(w, rules, entropy.New(seed, entropy.StreamSimulation))
	spawner := agents.NewSpawner(rules, seed)
	placed := sim.Populate(grid, spawner, engine.DefaultPopulationConfig(), entropy.New(seed, entropy.StreamPopulation))

	// ── Journal ───────────────────────────────────────────────────────
	store, trace, err := openOutputs(*journalPath, *traceDir, runID, seed)
	if err != nil {
		slog.Error("failed to open run outputs", "error", err)
		os.Exit(1)
	}
	if store != nil {
		defer store.Close()
	}

	flush := func() {
		events := sim.DrainEvents()
		if store == nil {
			return
		}
		if err := store.RecordEvents(runID, events); err != nil {
			slog.Error("journal events failed", "error", err)
		}
	}

	// ── Engine ────────────────────────────────────────────────────────
	eng := engine.NewEngine()
	eng.Interval = *interval
	eng.StopAfter = *ticks

	eng.OnTick = func(tick uint64) {
		sim.Step(tick)
		if trace != nil {
			if err := trace.Write(journal.TraceEntry{RunID: runID, Tick: tick, Census: sim.Census()}); err != nil {
				slog.Error("trace write failed", "error", err)
			}
		}
	}
	eng.OnHour = func(tick uint64) { flush() }
	eng.OnDay = func(tick uint64) {
		sim.Report(tick)
		if store != nil {
			if err := store.RecordCensus(runID, sim.Census()); err != nil {
				slog.Error("journal census failed", "error", err)
			}
		}
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("received signal, shutting down", "signal", sig)
		eng.Stop()
	}()

	fmt.Printf("\nColony is alive: %d peons, %d sheep, %d bears on %s land tiles.\n",
		placed[catalog.SpeciesPeon], placed[catalog.SpeciesSheep], placed[catalog.SpeciesBear],
		humanize.Comma(int64(landTiles)))
	fmt.Println("Starting simulation... (Ctrl+C to stop)")

	started := time.Now()
	eng.Run()

	// Final flush on shutdown.
	sim.Report(eng.Tick)
	flush()
	if store != nil {
		if err := store.RecordCensus(runID, sim.Census()); err != nil {
			slog.Error("journal census failed", "error", err)
		}
	}
	if trace != nil {
		if err := trace.Close(); err != nil {
			slog.Error("trace close failed", "error", err)
		}
	}

	fmt.Printf("Simulation stopped after %s ticks (%s, started %s).\n",
		humanize.Comma(int64(eng.Tick)), engine.SimTime(eng.Tick), humanize.Time(started))
	fmt.Printf("Deaths: %s peons, %s sheep, %s bears. Kills %s, meals %s, harvests %s.\n",
		humanize.Comma(int64(sim.Stats.Deaths[catalog.SpeciesPeon])),
		humanize.Comma(int64(sim.Stats.Deaths[catalog.SpeciesSheep])),
		humanize.Comma(int64(sim.Stats.Deaths[catalog.SpeciesBear])),
		humanize.Comma(int64(sim.Stats.Kills)),
		humanize.Comma(int64(sim.Stats.Meals)),
		humanize.Comma(int64(sim.Stats.Harvests)),
	)
	if *journalPath != "" {
		if fi, err := os.Stat(*journalPath); err == nil {
			fmt.Printf("Journal: %s (%s)\n", *journalPath, humanize.Bytes(uint64(fi.Size())))
		}
	}
	if trace != nil {
		fmt.Printf("Trace: %s\n", trace.Path())
	}
}

// openOutputs opens the journal and the trace, either of which may be
// disabled with an empty path. On failure nothing is left open.
func openOutputs(journalPath, traceDir, runID string, seed int64) (*journal.Store, *journal.TraceWriter, error) {
	var store *journal.Store
	if journalPath != "" {
		if err := os.MkdirAll(filepath.Dir(journalPath), 0o755); err != nil {
			return nil, nil, fmt.Errorf("journal dir: %w", err)
		}
		var err error
		store, err = journal.Open(journalPath)
		if err != nil {
			return nil, nil, err
		}
		if err := store.BeginRun(runID, seed); err != nil {
			store.Close()
			return nil, nil, err
		}
	}

	var trace *journal.TraceWriter
	if traceDir != "" {
		var err error
		trace, err = journal.NewTraceWriter(traceDir, runID)
		if err != nil {
			if store != nil {
				store.Close()
			}
			return nil, nil, err
		}
	}
	return store, trace, nil
}

// Command ising-sweep samples one chain per β on a worker pool and reports the
// magnetization curve.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	"spinlab/internal/export"
	"spinlab/internal/ising"
	"spinlab/internal/logger"
	"spinlab/internal/render"
	"spinlab/internal/store"
)

type options struct {
	cfg       ising.SweepConfig
	csvPath   string
	chartPath string
	dbPath    string
}

func parseFlags(args []string) (options, error) {
	def := ising.DefaultSweepConfig()
	opts := options{cfg: def}
	var betaMin, betaMax float64
	var points int

	fs := flag.NewFlagSet("ising-sweep", flag.ContinueOnError)
	fs.IntVar(&opts.cfg.Size, "n", def.Size, "lattice side length N")
	fs.IntVar(&opts.cfg.Steps, "steps", def.Steps, "energy series length per chain")
	fs.Float64Var(&betaMin, "beta-min", def.Betas[0], "smallest β")
	fs.Float64Var(&betaMax, "beta-max", def.Betas[len(def.Betas)-1], "largest β")
	fs.IntVar(&points, "points", len(def.Betas), "number of β values")
	fs.IntVar(&opts.cfg.BurnIn, "burn-in", def.BurnIn, "energies discarded before computing statistics")
	fs.Int64Var(&opts.cfg.Seed, "seed", def.Seed, "seed of the first chain; chain k uses seed+k")
	fs.IntVar(&opts.cfg.Workers, "workers", def.Workers, "parallel chains")
	fs.StringVar(&opts.csvPath, "csv", "", "write the sweep as CSV to this path")
	fs.StringVar(&opts.chartPath, "chart", "", "write a magnetization chart PNG to this path")
	fs.StringVar(&opts.dbPath, "db", "", "persist the sweep to this SQLite database")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	betas, err := ising.BetaRange(betaMin, betaMax, points)
	if err != nil {
		return opts, err
	}
	opts.cfg.Betas = betas
	return opts, opts.cfg.Validate()
}

func run(ctx context.Context, opts options, out io.Writer, log *logger.Logger) error {
	cfg := opts.cfg
	log.Infof("sweeping %d β values on %dx%d with %d workers", len(cfg.Betas), cfg.Size, cfg.Size, cfg.Workers)
	start := time.Now()
	points, err := ising.Sweep(ctx, cfg)
	if err != nil {
		return err
	}
	log.Infof("sweep finished in %s", time.Since(start).Round(time.Millisecond))

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "beta\tm\t|m|\t<E>\tc\tacc\t")
	for _, p := range points {
		fmt.Fprintf(tw, "%.4f\t%.4f\t%.4f\t%.2f\t%.4f\t%.4f\t\n",
			p.Beta, p.Magnetization, p.AbsMagnetization, p.MeanEnergy, p.SpecificHeat, p.AcceptanceRate)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if opts.csvPath != "" {
		if err := export.ToFile(opts.csvPath, func(w io.Writer) error {
			return export.WriteSweep(w, points)
		}); err != nil {
			return err
		}
		log.Infof("wrote %s", opts.csvPath)
	}
	if opts.chartPath != "" {
		if err := export.ToFile(opts.chartPath, func(w io.Writer) error {
			return render.MagnetizationChart(w, points)
		}); err != nil {
			return err
		}
		log.Infof("wrote %s", opts.chartPath)
	}
	if opts.dbPath != "" {
		db, err := store.NewSQLiteDB(opts.dbPath)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := db.Migrate(); err != nil {
			return err
		}
		sweep := &store.Sweep{Size: cfg.Size, Steps: cfg.Steps, BurnIn: cfg.BurnIn, Seed: cfg.Seed, Points: points}
		if err := db.SaveSweep(sweep); err != nil {
			return err
		}
		fmt.Fprintf(out, "sweep id=%s\n", sweep.ID)
		log.Event("sweep", sweep.ID, fmt.Sprintf("stored %d points in %s", len(points), opts.dbPath))
	}
	return nil
}

func main() {
	log := logger.New("sweep")
	opts, err := parseFlags(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatalf("%v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := run(ctx, opts, os.Stdout, log); err != nil {
		log.Fatalf("%v", err)
	}
}

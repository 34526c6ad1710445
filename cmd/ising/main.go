// Command ising runs one Metropolis-Hastings chain and reports the result.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"spinlab/internal/export"
	"spinlab/internal/ising"
	"spinlab/internal/logger"
	"spinlab/internal/render"
	"spinlab/internal/store"
)

type options struct {
	cfg     ising.Config
	csvPath string
	pngPath string
	chart   string
	dbPath  string
	scale   int
	stride  int
}

func parseFlags(args []string) (options, error) {
	def := ising.DefaultConfig()
	opts := options{cfg: def}
	fs := flag.NewFlagSet("ising", flag.ContinueOnError)
	fs.IntVar(&opts.cfg.Size, "n", def.Size, "lattice side length N")
	fs.IntVar(&opts.cfg.Steps, "steps", def.Steps, "length of the energy series (steps-1 proposals)")
	fs.Float64Var(&opts.cfg.Beta, "beta", def.Beta, "inverse temperature β")
	fs.Float64Var(&opts.cfg.Coupling, "coupling", def.Coupling, "coupling constant J")
	fs.Int64Var(&opts.cfg.Seed, "seed", def.Seed, "random seed")
	fs.StringVar(&opts.csvPath, "csv", "", "write the energy series as CSV to this path")
	fs.StringVar(&opts.pngPath, "png", "", "write the final lattice as PNG to this path")
	fs.StringVar(&opts.chart, "chart", "", "write an energy chart PNG to this path")
	fs.StringVar(&opts.dbPath, "db", "", "persist the run to this SQLite database")
	fs.IntVar(&opts.scale, "scale", 4, "pixels per spin in the lattice PNG")
	fs.IntVar(&opts.stride, "stride", 1, "keep every k-th energy in CSV, chart and database")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if opts.stride < 1 {
		return opts, fmt.Errorf("stride must be positive, got %d", opts.stride)
	}
	return opts, opts.cfg.Validate()
}

func run(opts options, out io.Writer, log *logger.Logger) error {
	start := time.Now()
	res, err := ising.Run(opts.cfg, nil)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	cfg := opts.cfg
	stats := ising.Summarize(res.Energies, 0)
	fmt.Fprintf(out, "n=%d steps=%d beta=%g coupling=%g seed=%d\n", cfg.Size, cfg.Steps, cfg.Beta, cfg.Coupling, cfg.Seed)
	fmt.Fprintf(out, "energy initial=%g final=%g mean=%g\n", res.Energies[0], res.Energies[len(res.Energies)-1], stats.Mean)
	fmt.Fprintf(out, "bond energy initial=%g final=%g\n", ising.BondEnergy(res.Initial, cfg.Coupling), ising.BondEnergy(res.Lattice, cfg.Coupling))
	fmt.Fprintf(out, "magnetization=%g accepted=%d/%d (%.4f)\n", res.Magnetization(), res.Accepted, res.Proposals, res.AcceptanceRate())
	log.Infof("sampled %d steps in %s", cfg.Steps, elapsed.Round(time.Millisecond))

	if opts.csvPath != "" {
		if err := export.ToFile(opts.csvPath, func(w io.Writer) error {
			return export.WriteEnergySeries(w, res.Energies, opts.stride)
		}); err != nil {
			return err
		}
		log.Infof("wrote %s", opts.csvPath)
	}
	if opts.pngPath != "" {
		if err := export.ToFile(opts.pngPath, func(w io.Writer) error {
			return render.EncodeLattice(w, res.Lattice, opts.scale)
		}); err != nil {
			return err
		}
		log.Infof("wrote %s", opts.pngPath)
	}
	if opts.chart != "" {
		if err := export.ToFile(opts.chart, func(w io.Writer) error {
			return render.EnergyChart(w, res.Energies, opts.stride)
		}); err != nil {
			return err
		}
		log.Infof("wrote %s", opts.chart)
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
		r, series := store.NewRun(cfg, res, opts.stride)
		if err := db.SaveRun(r, series); err != nil {
			return err
		}
		fmt.Fprintf(out, "run id=%s\n", r.ID)
		log.Event("run", r.ID, fmt.Sprintf("stored %d energy points in %s", len(series), opts.dbPath))
	}
	return nil
}

func main() {
	log := logger.New("ising")
	opts, err := parseFlags(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatalf("%v", err)
	}
	if err := run(opts, os.Stdout, log); err != nil {
		log.Fatalf("%v", err)
	}
}

// Command ec2bgen generates Ec2b seed files and their xorpads.
//
// Usage:
//
//	ec2bgen [-config path] [generate] [-count n] [-workers n] [-out dir] [-seed hex]
//	ec2bgen [-config path] reproduce -seed-file path [-out path] [-verify path]
package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/udisondev/ec2bgen/internal/artifact"
	"github.com/udisondev/ec2bgen/internal/config"
	"github.com/udisondev/ec2bgen/internal/ec2b"
)

const ConfigPath = "config/ec2bgen.yaml"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, logOut io.Writer) error {
	fs := flag.NewFlagSet("ec2bgen", flag.ContinueOnError)
	cfgPath := fs.String("config", ConfigPath, "path to the YAML `config` (env EC2BGEN_CONFIG)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if p := os.Getenv("EC2BGEN_CONFIG"); p != "" && !flagSet(fs, "config") {
		*cfgPath = p
	}

	cfg, err := config.LoadGenerator(*cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	cmd, rest := "generate", fs.Args()
	if len(rest) > 0 {
		cmd, rest = rest[0], rest[1:]
	}

	switch cmd {
	case "generate":
		return generate(ctx, cfg, rest, logOut)
	case "reproduce":
		return reproduce(cfg, rest, logOut)
	default:
		return fmt.Errorf("unknown command %q (want generate or reproduce)", cmd)
	}
}

func generate(ctx context.Context, cfg config.Generator, args []string, logOut io.Writer) error {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	fs.IntVar(&cfg.Count, "count", cfg.Count, "number of artifact `pairs` to generate")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "parallel `jobs`")
	fs.StringVar(&cfg.OutputDir, "out", cfg.OutputDir, "output `dir`")
	fs.StringVar(&cfg.Seed, "seed", cfg.Seed, "`hex` seed for reproducible output")
	fs.StringVar(&cfg.TablesPath, "tables", cfg.TablesPath, "constant tables `file`")
	if err := fs.Parse(args); err != nil {
		return err
	}

	d, err := setup(cfg, logOut)
	if err != nil {
		return err
	}
	seed, _ := cfg.SeedBytes() // validated in setup

	newGenerator := func(i int) *ec2b.Generator {
		if seed == nil {
			return ec2b.NewGenerator(d, nil)
		}
		return ec2b.NewGenerator(d, ec2b.NewSeededSource(seed, i))
	}
	w := &artifact.Writer{Dir: cfg.OutputDir, SeedName: cfg.SeedFile, KeyName: cfg.KeyFile}

	slog.Info("generating artifacts", "count", cfg.Count, "workers", cfg.Workers, "seeded", seed != nil)
	records, err := artifact.Batch(ctx, cfg.Count, cfg.Workers, newGenerator, w)
	if err != nil {
		return fmt.Errorf("generating artifacts: %w", err)
	}
	slog.Info("files generated successfully", "pairs", len(records), "dir", cfg.OutputDir)
	return nil
}

func reproduce(cfg config.Generator, args []string, logOut io.Writer) error {
	fs := flag.NewFlagSet("reproduce", flag.ContinueOnError)
	seedPath := fs.String("seed-file", "", "seed `file` to reproduce the xorpad from (required)")
	outPath := fs.String("out", "", "write the xorpad to `path`")
	verifyPath := fs.String("verify", "", "compare the xorpad with an existing key `file`")
	fs.StringVar(&cfg.TablesPath, "tables", cfg.TablesPath, "constant tables `file`")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *seedPath == "" {
		return errors.New("reproduce: -seed-file is required")
	}

	d, err := setup(cfg, logOut)
	if err != nil {
		return err
	}

	raw, err := os.ReadFile(*seedPath)
	if err != nil {
		return fmt.Errorf("reading seed file: %w", err)
	}
	sf, err := ec2b.ParseSeedFile(raw)
	if err != nil {
		return fmt.Errorf("parsing seed file %s: %w", *seedPath, err)
	}
	xorpad, err := ec2b.NewGenerator(d, nil).Reproduce(sf)
	if err != nil {
		return fmt.Errorf("reproducing xorpad: %w", err)
	}
	slog.Info("xorpad reproduced", "seed", *seedPath, "fingerprint", artifact.Fingerprint(xorpad))

	if *verifyPath != "" {
		existing, err := os.ReadFile(*verifyPath)
		if err != nil {
			return fmt.Errorf("reading key file: %w", err)
		}
		if !bytes.Equal(existing, xorpad) {
			return fmt.Errorf("key file %s does not match seed file %s", *verifyPath, *seedPath)
		}
		slog.Info("key file matches", "key", *verifyPath)
	}

	if *outPath == "" && *verifyPath == "" {
		*outPath = filepath.Join(cfg.OutputDir, cfg.KeyFile)
	}
	if *outPath != "" {
		if err := artifact.WriteFile(*outPath, xorpad); err != nil {
			return err
		}
		slog.Info("xorpad written", "key", *outPath, "bytes", len(xorpad))
	}
	return nil
}

// setup validates cfg, configures logging and loads the constant tables.
func setup(cfg config.Generator, logOut io.Writer) (*ec2b.Deriver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	level, _ := cfg.Level()
	slog.SetDefault(slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{
		Level: level,
	})))

	tables, err := ec2b.LoadTables(cfg.TablesPath)
	if err != nil {
		return nil, fmt.Errorf("loading tables: %w", err)
	}
	d, err := ec2b.NewDeriver(tables)
	if err != nil {
		return nil, fmt.Errorf("preparing key schedule: %w", err)
	}
	slog.Debug("tables loaded", "path", cfg.TablesPath)
	return d, nil
}

func flagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

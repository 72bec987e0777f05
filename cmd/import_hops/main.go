package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"gorm.io/gorm"

	"brewkit/internal/beerxml"
	"brewkit/internal/config"
	"brewkit/internal/db"
	"brewkit/internal/hop"
	applog "brewkit/internal/log"
)

var openDatabase = func(cfg config.DatabaseConfig) (*gorm.DB, error) {
	database, err := db.Initialize(cfg)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.AutoMigrate(database); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}
	return database, nil
}

func main() {
	flags := flag.NewFlagSet("import_hops", flag.ExitOnError)
	export := flags.Bool("export", false, "write the stored hops to the file instead of importing it")
	flags.Usage = func() {
		fmt.Fprintf(flags.Output(), "usage: import_hops [-export] hops.xml\n")
		flags.PrintDefaults()
	}
	flags.Parse(os.Args[1:])

	path := "hops.xml"
	if flags.NArg() > 0 {
		path = flags.Arg(0)
	}

	run := runImport
	if *export {
		run = runExport
	}
	if err := run(context.Background(), path, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "import_hops failed: %v\n", err)
		os.Exit(1)
	}
}

func openStore() (*db.HopStore, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := applog.SetLevel(cfg.Logging.Level); err != nil {
		return nil, err
	}
	database, err := openDatabase(cfg.Database)
	if err != nil {
		return nil, err
	}
	return db.NewHopStore(database), nil
}

// runImport upserts every hop in the BeerXML file at path, matching by name.
func runImport(ctx context.Context, path string, out io.Writer) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("beerxml path must not be empty")
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("locate beerxml: %w", err)
	}

	store, err := openStore()
	if err != nil {
		return err
	}

	hops, err := beerxml.LoadFile(ctx, path, applog.Logger())
	if err != nil {
		return fmt.Errorf("read beerxml: %w", err)
	}
	for idx, h := range hops {
		if strings.TrimSpace(h.Name()) == "" {
			return fmt.Errorf("hop %d has no name", idx+1)
		}
	}

	created, updated, err := store.UpsertAll(ctx, hops)
	if err != nil {
		return fmt.Errorf("store hops: %w", err)
	}

	applog.Info(ctx, "hops imported", "file", path, "created", created, "updated", updated)
	fmt.Fprintf(out, "imported %d hops (%d new, %d updated)\n", created+updated, created, updated)
	return nil
}

// runExport writes every stored hop to path as a BeerXML HOPS document.
func runExport(ctx context.Context, path string, out io.Writer) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("beerxml path must not be empty")
	}

	store, err := openStore()
	if err != nil {
		return err
	}

	records, err := store.List(ctx)
	if err != nil {
		return err
	}
	hops := make([]*hop.Hop, 0, len(records))
	for _, record := range records {
		hops = append(hops, record.Hop)
	}

	if err := beerxml.SaveFile(path, hops); err != nil {
		return err
	}
	applog.Info(ctx, "hops exported", "file", path, "count", len(hops))
	fmt.Fprintf(out, "exported %d hops to %s\n", len(hops), path)
	return nil
}

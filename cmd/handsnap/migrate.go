package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/ayusman/handsnap/internal/config"
	"github.com/ayusman/handsnap/internal/store"
)

const migrateUsage = `Usage: handsnap migrate [flags] <action>

Actions:
  status    show the catalog schema version
  up        apply all pending migrations
  down      roll back the most recent migration

Opening the catalog applies pending migrations, so "down" is meant to be
followed by running an older handsnap build against the catalog.
`

func migrateCommand(cfg config.Config, args []string, out io.Writer) error {
	flags := flag.NewFlagSet("migrate", flag.ContinueOnError)
	flags.StringVar(&cfg.OutputDir, "out", cfg.OutputDir, "directory holding the catalog")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() != 1 {
		fmt.Fprint(out, migrateUsage)
		return fmt.Errorf("expected one action, got %d", flags.NArg())
	}
	action := flags.Arg(0)

	st, err := store.New(cfg.DBPath())
	if err != nil {
		return fmt.Errorf("open catalog: %w", err)
	}
	defer st.Close()

	switch action {
	case "status":
	case "up":
		if err := st.MigrateUp(); err != nil {
			return err
		}
	case "down":
		if err := st.MigrateDown(); err != nil {
			return err
		}
	default:
		fmt.Fprint(out, migrateUsage)
		return fmt.Errorf("unknown migrate action %q", action)
	}

	version, dirty, err := st.MigrateVersion()
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	fmt.Fprintf(out, "Catalog %s at version %d (dirty: %v)\n", st.Path(), version, dirty)
	return nil
}

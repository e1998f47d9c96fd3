package main

import (
	"flag"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/ayusman/handsnap/internal/config"
	"github.com/ayusman/handsnap/internal/sink"
	"github.com/ayusman/handsnap/internal/store"
)

func listCommand(cfg config.Config, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	fs.StringVar(&cfg.OutputDir, "out", cfg.OutputDir, "directory holding the catalog")
	user := fs.String("user", "", "only show selfies of this operator")
	limit := fs.Int("limit", 20, "maximum number of selfies to show (0 for all)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	st, err := store.New(cfg.DBPath())
	if err != nil {
		return fmt.Errorf("open catalog: %w", err)
	}
	defer st.Close()

	var captures []*store.Capture
	if *user != "" {
		captures, err = st.Captures().ListByUsername(*user)
		if err == nil && *limit > 0 && len(captures) > *limit {
			captures = captures[:*limit]
		}
	} else {
		captures, err = st.Captures().List(*limit)
	}
	if err != nil {
		return fmt.Errorf("list captures: %w", err)
	}

	if len(captures) == 0 {
		fmt.Fprintln(out, "No selfies recorded.")
		return nil
	}

	total, err := st.Captures().Count()
	if err != nil {
		return fmt.Errorf("count captures: %w", err)
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTAKEN\tUSER\tFILE")
	for _, c := range captures {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", c.ID, c.TakenAt.Local().Format(sink.TimestampFormat), c.Username, c.Path)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(out, "%d of %d selfies\n", len(captures), total)
	return nil
}

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/ayusman/handsnap/internal/config"
	"github.com/ayusman/handsnap/internal/store"
)

// deleteCommand removes catalog entries by ID. Their images are removed too
// unless -keep-files is set. A missing image is not an error.
func deleteCommand(cfg config.Config, args []string, out io.Writer) error {
	flags := flag.NewFlagSet("delete", flag.ContinueOnError)
	flags.StringVar(&cfg.OutputDir, "out", cfg.OutputDir, "directory holding the catalog")
	keepFiles := flags.Bool("keep-files", false, "only remove catalog entries, leave the images")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() == 0 {
		return errors.New("usage: handsnap delete [flags] <id> [id ...]")
	}

	st, err := store.New(cfg.DBPath())
	if err != nil {
		return fmt.Errorf("open catalog: %w", err)
	}
	defer st.Close()

	repo := st.Captures()
	for _, id := range flags.Args() {
		c, err := repo.GetByID(id)
		if err != nil {
			return fmt.Errorf("capture %s: %w", id, err)
		}

		if !*keepFiles {
			if err := os.Remove(c.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("remove %s: %w", c.Path, err)
			}
		}
		if err := repo.Delete(id); err != nil {
			return fmt.Errorf("delete capture %s: %w", id, err)
		}
		fmt.Fprintf(out, "Deleted %s (%s, %s)\n", id, c.Username, c.Filename)
	}
	return nil
}

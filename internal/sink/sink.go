// Package sink persists captured selfies: it asks for the operator's name,
// writes the image, appends the CSV log, records the capture in the catalog
// and announces the result.
package sink

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gocv.io/x/gocv"

	"github.com/ayusman/handsnap/internal/speech"
	"github.com/ayusman/handsnap/internal/store"
)

// DefaultDir is the output directory for images, the log and the catalog.
const DefaultDir = "selfies"

// LogName is the capture log filename inside the output directory.
const LogName = "selfie_log.csv"

// Event is a capture request. The sink owns Frame and closes it.
type Event struct {
	Timestamp time.Time
	Frame     gocv.Mat
}

// Record describes what a capture persisted.
type Record struct {
	ID        string
	Timestamp time.Time
	Filename  string
	Username  string
	Path      string
}

// Catalog stores capture records. *store.CaptureRepository satisfies it.
type Catalog interface {
	Create(c *store.Capture) error
}

// Options configures a Sink. Zero fields take defaults.
type Options struct {
	Dir            string
	TimestampNames bool
	Prompter       Prompter
	Writer         ImageWriter
	Speaker        speech.Speaker
	Catalog        Catalog
}

// Sink carries out the capture side effects.
type Sink struct {
	dir         string
	timestamped bool
	prompter    Prompter
	writer      ImageWriter
	speaker     speech.Speaker
	log         *CSVLog
	catalog     Catalog
}

// New creates a Sink. Without a prompter every capture is filed under
// UnknownIdentifier; without a speaker announcements are skipped.
func New(opts Options) *Sink {
	s := &Sink{
		dir:         opts.Dir,
		timestamped: opts.TimestampNames,
		prompter:    opts.Prompter,
		writer:      opts.Writer,
		speaker:     opts.Speaker,
		catalog:     opts.Catalog,
	}
	if s.dir == "" {
		s.dir = DefaultDir
	}
	if s.prompter == nil {
		s.prompter = PromptFunc(func(context.Context) (string, error) { return "", nil })
	}
	if s.writer == nil {
		s.writer = GoCVWriter{}
	}
	if s.speaker == nil {
		s.speaker = speech.Silent{}
	}
	s.log = NewCSVLog(filepath.Join(s.dir, LogName))
	return s
}

// Dir returns the output directory.
func (s *Sink) Dir() string {
	return s.dir
}

// Log returns the capture log.
func (s *Sink) Log() *CSVLog {
	return s.log
}

// Capture handles one capture event. The returned record always carries the
// resolved identifier, even when a later step fails. A failed image write
// stops the capture; log and catalog failures are reported together after
// every step has been attempted.
func (s *Sink) Capture(ctx context.Context, ev Event) (Record, error) {
	defer ev.Frame.Close()

	raw, err := s.prompter.Prompt(ctx)
	if err != nil {
		log.Printf("Name prompt failed, using %q: %v", UnknownIdentifier, err)
		raw = ""
	}
	id := NormalizeIdentifier(raw)

	filename := Filename(id, ev.Timestamp, s.timestamped)
	rec := Record{
		ID:        uuid.NewString(),
		Timestamp: ev.Timestamp,
		Filename:  filename,
		Username:  id,
		Path:      filepath.Join(s.dir, filename),
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return rec, fmt.Errorf("create output directory: %w", err)
	}

	if _, err := os.Stat(rec.Path); err == nil {
		log.Printf("[WARN] Overwriting existing selfie %s", rec.Path)
	}

	if err := s.writer.Write(rec.Path, ev.Frame); err != nil {
		return rec, fmt.Errorf("write image: %w", err)
	}
	log.Printf("Saved selfie %s for %s", rec.Path, id)

	if err := s.speaker.Say(ctx, fmt.Sprintf("Selfie taken, %s!", id)); err != nil {
		log.Printf("Announcement failed: %v", err)
	}

	var errs []error
	if err := s.log.Append(rec); err != nil {
		errs = append(errs, err)
	}
	if s.catalog != nil {
		err := s.catalog.Create(&store.Capture{
			ID:       rec.ID,
			TakenAt:  rec.Timestamp,
			Filename: rec.Filename,
			Username: rec.Username,
			Path:     rec.Path,
		})
		if err != nil {
			errs = append(errs, fmt.Errorf("record capture: %w", err))
		}
	}

	return rec, errors.Join(errs...)
}

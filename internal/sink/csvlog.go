package sink

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
)

// LogHeader is the first row of the capture log.
var LogHeader = []string{"Timestamp", "Filename", "Username"}

// CSVLog is the append-only capture log.
type CSVLog struct {
	path string
}

// NewCSVLog creates a log at path. The file is created on first append.
func NewCSVLog(path string) *CSVLog {
	return &CSVLog{path: path}
}

// Path returns the log file path.
func (l *CSVLog) Path() string {
	return l.path
}

// Append writes one row for rec, writing the header first if the file is new
// or empty.
func (l *CSVLog) Append(rec Record) error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat log: %w", err)
	}

	w := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := w.Write(LogHeader); err != nil {
			return fmt.Errorf("write log header: %w", err)
		}
	}

	row := []string{rec.Timestamp.Format(TimestampFormat), rec.Filename, rec.Username}
	if err := w.Write(row); err != nil {
		return fmt.Errorf("write log row: %w", err)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush log: %w", err)
	}
	return nil
}

// ReadAll returns every data row of the log, without the header.
func (l *CSVLog) ReadAll() ([][]string, error) {
	f, err := os.Open(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}
	if len(rows) > 0 {
		rows = rows[1:]
	}
	return rows, nil
}

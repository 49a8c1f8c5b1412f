// Package interactionlog appends prompt/response pairs to a JSON-lines file.
//
// Each entry is written with a single write on a file opened with O_APPEND,
// so concurrent appends from separate requests never interleave partial
// lines. The file is never read back, truncated or rewritten.
package interactionlog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/zulandar/minivault/internal/logging"
	"github.com/zulandar/minivault/internal/models"
)

// TimestampLayout is ISO-8601 with microseconds and a numeric UTC offset.
const TimestampLayout = "2006-01-02T15:04:05.000000-07:00"

// Writer appends LogEntry lines to a file.
type Writer struct {
	path string
	now  func() time.Time
	log  logrus.FieldLogger
}

// Option configures a Writer.
type Option func(*Writer)

// WithClock replaces time.Now as the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(w *Writer) { w.now = now }
}

// WithLogger sets the logger used for debug output after each append.
func WithLogger(l logrus.FieldLogger) Option {
	return func(w *Writer) { w.log = l }
}

// New returns a Writer for path, creating the containing directory if needed.
func New(path string, opts ...Option) (*Writer, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("interactionlog: path is required")
	}
	w := &Writer{path: path, now: time.Now, log: logging.Discard()}
	for _, opt := range opts {
		opt(w)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("interactionlog: create dir for %s: %w", path, err)
	}
	return w, nil
}

// Path returns the file the Writer appends to.
func (w *Writer) Path() string { return w.path }

// Append stamps the pair with the current time and appends it as one line.
// Open and write failures are returned as-is to the caller; nothing is retried.
func (w *Writer) Append(input models.PromptInput, output models.GenerateResponse) (models.LogEntry, error) {
	entry := models.LogEntry{
		Timestamp: w.now().Format(TimestampLayout),
		Input:     input,
		Output:    output,
	}
	line, err := json.Marshal(entry)
	if err != nil {
		return models.LogEntry{}, fmt.Errorf("interactionlog: encode entry: %w", err)
	}
	line = append(line, '\n')

	f, err := os.OpenFile(w.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return models.LogEntry{}, fmt.Errorf("interactionlog: append %s: %w", w.path, err)
	}
	n, err := f.Write(line)
	if err == nil && n < len(line) {
		err = io.ErrShortWrite
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return models.LogEntry{}, fmt.Errorf("interactionlog: append %s: %w", w.path, err)
	}

	w.log.WithField("path", w.path).Debug("logged interaction")
	return entry, nil
}

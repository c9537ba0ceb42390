package source

import (
	"compress/gzip"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/rickgao/lob-response/internal/model"
)

// Source provides the ordered event sequence for one instrument-day.
type Source interface {
	Events(ticker, day string) ([]model.Event, error)
}

// FileSource reads gzipped CSV day files from a data directory.
type FileSource struct {
	dir    string
	logger *slog.Logger
}

// NewFileSource creates a FileSource rooted at dir.
func NewFileSource(dir string, logger *slog.Logger) *FileSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileSource{dir: dir, logger: logger}
}

// Path returns the on-disk location for a (ticker, day) pair. day is an
// ISO date, e.g. "2008-01-02".
func (s *FileSource) Path(ticker, day string) string {
	compact := strings.ReplaceAll(day, "-", "")
	year := day[:4]
	return filepath.Join(s.dir, "original_data_"+year,
		fmt.Sprintf("%s_%s.csv.gz", compact, ticker))
}

// Events implements Source. A missing day file is ErrInputNotFound; the
// caller treats that day as "no data" and continues.
func (s *FileSource) Events(ticker, day string) ([]model.Event, error) {
	path := s.Path(ticker, day)

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, model.ErrInputNotFound)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("gunzip %s: %w", path, err)
	}
	defer gz.Close()

	events, err := s.decode(gz)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	s.logger.Debug("day file loaded", "ticker", ticker, "day", day, "events", len(events))
	return events, nil
}

// decode reads the CSV stream, skipping the header row. Records with an
// unknown letter code are dropped with a warning rather than failing the
// day; the exchange occasionally emits message types outside the extract.
func (s *FileSource) decode(r io.Reader) ([]model.Event, error) {
	cr := csv.NewReader(r)
	cr.ReuseRecord = true
	cr.FieldsPerRecord = -1

	var events []model.Event
	first := true
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if first {
			first = false
			continue
		}
		if len(rec) < 6 {
			return nil, fmt.Errorf("record has %d fields, want 6", len(rec))
		}
		ev, err := normalize(rec[0], rec[2], rec[3], rec[4], rec[5])
		if err != nil {
			if _, kindErr := ParseKind(rec[3]); kindErr != nil {
				s.logger.Warn("skipping record with unknown code", "code", rec[3])
				continue
			}
			return nil, err
		}
		events = append(events, ev)
	}
	return events, nil
}

package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/quakelab/completeness"
)

// catalogRow mirrors the tabular catalog schema: one timestamped magnitude
// per event.
type catalogRow struct {
	DateTime  time.Time `parquet:"DateTime"`
	Magnitude float64   `parquet:"Magnitude"`
}

// timeLayouts are tried in order when parsing CSV timestamps.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
}

// listCatalogFiles returns the catalog files in dir with the given
// extension, sorted by name, dotfiles skipped.
func listCatalogFiles(dir, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read data dir: %w", err)
	}
	var files []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") || !strings.HasSuffix(name, ext) {
			continue
		}
		files = append(files, filepath.Join(dir, name))
	}
	sort.Strings(files)
	return files, nil
}

// shortName strips the directory and extension from a catalog path.
func shortName(path, ext string) string {
	return strings.TrimSuffix(filepath.Base(path), ext)
}

func loadCatalog(path string) ([]completeness.Event, error) {
	switch filepath.Ext(path) {
	case ".parquet":
		return loadParquet(path)
	case ".csv":
		return loadCSV(path)
	default:
		return nil, fmt.Errorf("unsupported catalog format %q", filepath.Ext(path))
	}
}

func loadParquet(path string) ([]completeness.Event, error) {
	rows, err := parquet.ReadFile[catalogRow](path)
	if err != nil {
		return nil, err
	}
	events := make([]completeness.Event, len(rows))
	for i, row := range rows {
		events[i] = completeness.Event{DateTime: row.DateTime, Magnitude: row.Magnitude}
	}
	return events, nil
}

func loadCSV(path string) ([]completeness.Event, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	timeCol, magCol := -1, -1
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case "DateTime":
			timeCol = i
		case "Magnitude":
			magCol = i
		}
	}
	if timeCol < 0 || magCol < 0 {
		return nil, fmt.Errorf("missing DateTime or Magnitude column in %s", path)
	}

	var events []completeness.Event
	for line := 2; ; line++ {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		when, err := parseTime(record[timeCol])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		mag, err := strconv.ParseFloat(strings.TrimSpace(record[magCol]), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: magnitude: %w", line, err)
		}
		events = append(events, completeness.Event{DateTime: when, Magnitude: mag})
	}
	return events, nil
}

func parseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable timestamp %q", s)
}

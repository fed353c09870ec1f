package sgf

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// DefaultSize is the board size of records without SZ.
const DefaultSize = 19

// GameInfo holds metadata read from a record's root node.
type GameInfo struct {
	Width       int
	Height      int
	Komi        float64
	Handicap    int
	PlayerBlack string
	BlackRank   string
	PlayerWhite string
	WhiteRank   string
	GameName    string
	Event       string
	Date        string
	Result      Result
}

// Info extracts metadata from a record's root node.
func Info(root Node) GameInfo {
	info := GameInfo{Width: DefaultSize, Height: DefaultSize}
	if p, ok := root.Property("SZ"); ok {
		size := p.(Size)
		info.Width, info.Height = size.Width, size.Height
	}
	if p, ok := root.Property("KM"); ok {
		info.Komi = p.(Real).Value
	}
	if p, ok := root.Property("HA"); ok {
		info.Handicap = int(p.(Number).Value)
	}
	if p, ok := root.Property("RE"); ok {
		info.Result = ParseResult(p.(Text).Value)
	}
	for ident, dst := range map[string]*string{
		"PB": &info.PlayerBlack,
		"BR": &info.BlackRank,
		"PW": &info.PlayerWhite,
		"WR": &info.WhiteRank,
		"GN": &info.GameName,
		"EV": &info.Event,
		"DT": &info.Date,
	} {
		if p, ok := root.Property(ident); ok {
			*dst = p.(Text).Value
		}
	}
	return info
}

// Loader reads record files from disk into one Collection.
type Loader struct {
	log *zap.SugaredLogger
}

// NewLoader creates a loader that reports skipped files to log.
func NewLoader(log *zap.SugaredLogger) *Loader {
	return &Loader{log: log}
}

// LoadFile reads, decodes and parses a single record file.
func (l *Loader) LoadFile(path string) (*Collection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	text, charset := DecodeRecord(data)
	l.log.Debugw("decoded record file", "path", path, "charset", charset)

	coll, err := Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return coll, nil
}

// LoadDirs parses every .sgf file in dirs. A file or directory that fails is
// logged and skipped; the failures are also returned. Records are collected
// in directory order, then file name order.
func (l *Loader) LoadDirs(dirs []string) (*Collection, []error) {
	all := &Collection{}
	var failures []error
	for _, dir := range dirs {
		paths, err := ListRecordFiles(dir)
		if err != nil {
			l.log.Warnw("skipping record directory", "dir", dir, "error", err)
			failures = append(failures, err)
			continue
		}
		for _, path := range paths {
			coll, err := l.LoadFile(path)
			if err != nil {
				l.log.Warnw("skipping record file", "path", path, "error", err)
				failures = append(failures, err)
				continue
			}
			all.Extend(coll)
		}
	}
	l.log.Infow("loaded records", "records", all.Len(), "nodes", all.NodeCount(), "failures", len(failures))
	return all, failures
}

// ListRecordFiles returns the .sgf files directly inside dir, sorted by name.
func ListRecordFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read record dir: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".sgf") {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

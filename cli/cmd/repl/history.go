package repl

import (
	"bufio"
	"errors"
	"io/fs"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/zeebo/xxh3"
)

const (
	// HistoryFile is the base name of the history file.
	HistoryFile = "history.utf8"

	// maxHistory bounds the number of entries kept in memory and on disk.
	maxHistory = 1000

	evalPrefix = "E:"
	ctrlPrefix = "C:"
)

// HistoryEntry is one submitted line and the mode it was entered in.
type HistoryEntry struct {
	Line string
	Mode inputMode
}

func (e HistoryEntry) encode() string {
	if e.Mode == modeCtrl {
		return ctrlPrefix + e.Line
	}

	return evalPrefix + e.Line
}

// key identifies the entry in the duplicate index.
func (e HistoryEntry) key() uint64 {
	return xxh3.HashString(e.encode())
}

func decodeEntry(s string) HistoryEntry {
	if line, ok := strings.CutPrefix(s, ctrlPrefix); ok {
		return HistoryEntry{Line: line, Mode: modeCtrl}
	}

	// Unprefixed lines are expressions.
	line, _ := strings.CutPrefix(s, evalPrefix)

	return HistoryEntry{Line: line, Mode: modeEval}
}

// History is the list of submitted lines, persisted one per line to a file
// with a mode prefix. An empty path keeps history in memory only.
type History struct {
	path    string
	entries []HistoryEntry
	seen    map[uint64]int // entry key -> number of entries with that key
	mu      sync.RWMutex
}

// NewHistory returns an empty History backed by the file at path.
func NewHistory(path string) *History {
	return &History{path: path, seen: make(map[uint64]int)}
}

// Load replaces the entries with the contents of the history file.
// A missing file is not an error.
func (h *History) Load() error {
	if h.path == "" {
		return nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	file, err := os.Open(h.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	if err != nil {
		return err
	}
	defer file.Close()

	var loaded []HistoryEntry

	scan := bufio.NewScanner(file)
	for scan.Scan() {
		line := strings.TrimSpace(scan.Text())
		if line == "" {
			continue
		}

		loaded = append(loaded, decodeEntry(line))
	}

	// Keep only the most recent occurrence of each entry.
	h.entries = h.entries[:0]
	clear(h.seen)

	for _, e := range slices.Backward(loaded) {
		if h.seen[e.key()] > 0 && slices.Contains(h.entries, e) {
			continue
		}

		h.entries = append(h.entries, e)
		h.seen[e.key()]++
	}

	slices.Reverse(h.entries)
	h.trim()

	return scan.Err()
}

// Append records line entered in mode. An earlier identical entry is moved
// to the end instead of being duplicated.
func (h *History) Append(line string, mode inputMode) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}

	entry := HistoryEntry{Line: line, Mode: mode}

	h.mu.Lock()
	defer h.mu.Unlock()

	if n := len(h.entries); n > 0 && h.entries[n-1] == entry {
		return nil
	}

	rewrite := false
	key := entry.key()

	// The index only rules out duplicates; a hit is confirmed by a scan.
	if h.seen[key] > 0 {
		if i := slices.Index(h.entries, entry); i >= 0 {
			h.entries = slices.Delete(h.entries, i, i+1)
			h.seen[key]--
			rewrite = true
		}
	}

	h.entries = append(h.entries, entry)
	h.seen[key]++

	if h.trim() {
		rewrite = true
	}

	if h.path == "" {
		return nil
	}

	if rewrite {
		return h.rewrite()
	}

	file, err := os.OpenFile(h.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = file.WriteString(entry.encode() + "\n")

	return err
}

// Entry returns the entry at index i, oldest first.
func (h *History) Entry(i int) (HistoryEntry, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if i < 0 || i >= len(h.entries) {
		return HistoryEntry{}, ErrOutOfBounds
	}

	return h.entries[i], nil
}

// Len returns the number of entries.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.entries)
}

// Entries returns a copy of all entries, oldest first.
func (h *History) Entries() []HistoryEntry {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return slices.Clone(h.entries)
}

// trim drops the oldest entries beyond maxHistory and reports whether any
// were dropped. Must be called with h.mu held.
func (h *History) trim() bool {
	over := len(h.entries) - maxHistory
	if over <= 0 {
		return false
	}

	for _, e := range h.entries[:over] {
		k := e.key()
		if h.seen[k]--; h.seen[k] <= 0 {
			delete(h.seen, k)
		}
	}

	h.entries = slices.Delete(h.entries, 0, over)

	return true
}

// rewrite replaces the history file with the current entries.
// Must be called with h.mu held.
func (h *History) rewrite() error {
	file, err := os.OpenFile(h.path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	defer file.Close()

	w := bufio.NewWriter(file)

	for _, e := range h.entries {
		if _, err := w.WriteString(e.encode() + "\n"); err != nil {
			return err
		}
	}

	return w.Flush()
}

// Package store persists loan applications to a newline-delimited record
// file, one encoded line per application, plus a sibling single-line counter
// file for id allocation. There is no cross-process locking: a second
// process can race an upsert or double-allocate an id. That is an accepted
// limitation of the format, not something this package tries to hide.
package store

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"loanbuddy/internal/logging"
)

// counterSeed is the value assumed when no counter file exists yet; the
// first allocated id is therefore 1001.
const counterSeed = 1000

// Counter issues monotonically increasing application ids backed by a
// single-line file holding the last value handed out. Each Next call
// persists the new value before returning it, so a crash cannot reissue an
// id it already returned.
type Counter struct {
	path string
}

// NewCounter returns a counter backed by the given file path.
func NewCounter(path string) *Counter {
	return &Counter{path: path}
}

// Next increments the persisted counter and returns the new value. Not
// transactional: two processes reading the same file can be handed the same
// value.
func (c *Counter) Next() (int, error) {
	last := counterSeed
	data, err := os.ReadFile(c.path)
	if err == nil {
		if n, perr := strconv.Atoi(strings.TrimSpace(string(data))); perr == nil {
			last = n
		}
	} else if !os.IsNotExist(err) {
		return 0, fmt.Errorf("failed to read counter file: %w", err)
	}

	next := last + 1
	if err := os.WriteFile(c.path, []byte(strconv.Itoa(next)+"\n"), 0644); err != nil {
		return 0, fmt.Errorf("failed to persist counter: %w", err)
	}
	logging.Store("counter advanced to %d", next)
	return next, nil
}

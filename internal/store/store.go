package store

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"loanbuddy/internal/logging"
	"loanbuddy/internal/record"
)

// Sentinel errors callers branch on. A terminal-status match is reported
// distinctly from an absent record so the chat can tell the applicant which
// of the two happened.
var (
	ErrNotFound  = errors.New("application not found")
	ErrCompleted = errors.New("application already completed and cannot be modified")
)

// Store is the file-backed application collection. Every save rewrites the
// whole file (delete-then-append), which is O(n) per upsert and fine for the
// hundreds of records this tool deals with.
type Store struct {
	path    string
	counter *Counter
}

// New returns a store over the given records file, allocating ids from the
// given counter.
func New(recordsPath string, counter *Counter) *Store {
	return &Store{path: recordsPath, counter: counter}
}

// AllocateID draws the next application id from the counter.
func (s *Store) AllocateID() (string, error) {
	n, err := s.counter.Next()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("APP-%d", n), nil
}

// Load reads and decodes every record in the file. Lines with fewer than
// the mandatory field count are skipped, but counted and logged so data
// loss is at least visible. A missing file is an empty store.
func (s *Store) Load() (apps []*record.Application, skipped int, err error) {
	lines, err := s.readLines()
	if err != nil {
		return nil, 0, err
	}

	for _, line := range lines {
		app, derr := record.Decode(line)
		if derr != nil {
			skipped++
			continue
		}
		apps = append(apps, app)
	}
	if skipped > 0 {
		logging.StoreWarn("skipped %d malformed record line(s) in %s", skipped, s.path)
	}
	return apps, skipped, nil
}

// Upsert replaces any line whose id matches the record's id and appends the
// new encoding at the end of the file. Exactly one line per id survives.
// The record is encoded before the file is touched, so an encoding failure
// never damages existing data.
func (s *Store) Upsert(app *record.Application) error {
	encoded, err := record.Encode(app)
	if err != nil {
		return fmt.Errorf("cannot save application %s: %w", app.ID, err)
	}

	lines, err := s.readLines()
	if err != nil {
		return err
	}

	kept := make([]string, 0, len(lines)+1)
	for _, line := range lines {
		if leadingID(line) != app.ID {
			kept = append(kept, line)
		}
	}
	kept = append(kept, encoded)

	if err := s.writeLines(kept); err != nil {
		return fmt.Errorf("failed to save application %s: %w", app.ID, err)
	}
	logging.Store("upserted %s (status %s)", app.ID, app.Status)
	return nil
}

// Lookup finds the record whose id and CNIC both match. Only in-progress
// checkpoint records are returned; a match on a terminal status yields
// ErrCompleted so the caller can report "already completed" rather than
// "not found".
func (s *Store) Lookup(id, cnic string) (*record.Application, error) {
	apps, _, err := s.Load()
	if err != nil {
		return nil, err
	}
	for _, app := range apps {
		if app.ID != id || app.CNIC != cnic {
			continue
		}
		if !app.Status.IsResumable() {
			return nil, ErrCompleted
		}
		return app, nil
	}
	return nil, ErrNotFound
}

// Incomplete returns every resumable record for the given CNIC, in file
// order.
func (s *Store) Incomplete(cnic string) ([]*record.Application, error) {
	return s.Scan(func(app *record.Application) bool {
		return app.CNIC == cnic && app.Status.IsResumable()
	})
}

// Scan returns every record matching the predicate, in file order.
func (s *Store) Scan(pred func(*record.Application) bool) ([]*record.Application, error) {
	apps, _, err := s.Load()
	if err != nil {
		return nil, err
	}
	var out []*record.Application
	for _, app := range apps {
		if pred(app) {
			out = append(out, app)
		}
	}
	return out, nil
}

// Counts aggregates record statuses, optionally restricted to one CNIC.
type Counts struct {
	Total      int
	Submitted  int
	Approved   int
	Rejected   int
	Incomplete int
}

// CountByStatus tallies records by status. An empty cnic counts the whole
// store.
func (s *Store) CountByStatus(cnic string) (Counts, error) {
	apps, _, err := s.Load()
	if err != nil {
		return Counts{}, err
	}
	var c Counts
	for _, app := range apps {
		if cnic != "" && app.CNIC != cnic {
			continue
		}
		c.Total++
		switch app.Status {
		case record.StatusSubmitted:
			c.Submitted++
		case record.StatusApproved:
			c.Approved++
		case record.StatusRejected:
			c.Rejected++
		case record.StatusC1, record.StatusC2, record.StatusC3, record.StatusDocsReady:
			c.Incomplete++
		}
	}
	return c, nil
}

// SetStatus flips a Submitted record to the given terminal status. This is
// the reviewer's single write path; it refuses to touch records that are
// not awaiting review.
func (s *Store) SetStatus(id string, status record.Status) error {
	if status != record.StatusApproved && status != record.StatusRejected {
		return fmt.Errorf("reviewer may only set Approved or Rejected, not %q", status)
	}
	apps, _, err := s.Load()
	if err != nil {
		return err
	}
	for _, app := range apps {
		if app.ID != id {
			continue
		}
		if app.Status != record.StatusSubmitted {
			return fmt.Errorf("application %s has status %s, only Submitted applications can be reviewed", id, app.Status)
		}
		app.Status = status
		if err := s.Upsert(app); err != nil {
			return err
		}
		logging.Review("application %s marked %s", id, status)
		return nil
	}
	return ErrNotFound
}

// =============================================================================
// FILE ACCESS
// =============================================================================

// readLines returns the non-empty lines of the records file; a missing file
// reads as empty.
func (s *Store) readLines() ([]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read record file: %w", err)
	}

	var lines []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, "\r")
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines, nil
}

func (s *Store) writeLines(lines []string) error {
	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return os.WriteFile(s.path, []byte(b.String()), 0644)
}

// leadingID extracts the first field of an encoded line without a full
// decode, so upsert can match even malformed lines by id.
func leadingID(line string) string {
	if i := strings.Index(line, record.Delimiter); i >= 0 {
		return line[:i]
	}
	return line
}

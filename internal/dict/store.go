package dict

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// minPrefixLen is the shortest id prefix Resolve will try to expand.
const minPrefixLen = 4

const entryColumns = `id, primary_text, secondary_text, notes, created_at, updated_at`

// Store handles entry persistence.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// NewStore creates a new entry store.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db, now: time.Now}
}

// Add creates a new entry. Text is trimmed; primary and secondary must be
// non-empty.
func (s *Store) Add(primary, secondary, notes string) (Entry, error) {
	primary, secondary, notes, err := normalizeText(primary, secondary, notes)
	if err != nil {
		return Entry{}, err
	}

	now := s.now().UTC()
	e := Entry{
		ID:        uuid.New().String(),
		Primary:   primary,
		Secondary: secondary,
		Notes:     notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	_, err = s.db.Exec(
		`INSERT INTO entries (`+entryColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.Primary, e.Secondary, e.Notes, formatTime(e.CreatedAt), formatTime(e.UpdatedAt),
	)
	if err != nil {
		return Entry{}, fmt.Errorf("inserting entry: %w", err)
	}
	return e, nil
}

// Update replaces the text of an existing entry and bumps UpdatedAt.
func (s *Store) Update(id, primary, secondary, notes string) (Entry, error) {
	primary, secondary, notes, err := normalizeText(primary, secondary, notes)
	if err != nil {
		return Entry{}, err
	}

	e, err := s.Get(id)
	if err != nil {
		return Entry{}, err
	}

	e.Primary, e.Secondary, e.Notes = primary, secondary, notes
	e.UpdatedAt = s.now().UTC()
	// A clock step backwards must not break UpdatedAt >= CreatedAt.
	if e.UpdatedAt.Before(e.CreatedAt) {
		e.UpdatedAt = e.CreatedAt
	}

	res, err := s.db.Exec(
		`UPDATE entries SET primary_text = ?, secondary_text = ?, notes = ?, updated_at = ? WHERE id = ?`,
		e.Primary, e.Secondary, e.Notes, formatTime(e.UpdatedAt), e.ID,
	)
	if err != nil {
		return Entry{}, fmt.Errorf("updating entry: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return Entry{}, fmt.Errorf("entry %s: %w", id, ErrNotFound)
	}
	return e, nil
}

// Put inserts or replaces an entry as-is, keeping its id and timestamps.
// Used by imports; an entry without an id gets a fresh one.
func (s *Store) Put(e Entry) (Entry, error) {
	primary, secondary, notes, err := normalizeText(e.Primary, e.Secondary, e.Notes)
	if err != nil {
		return Entry{}, err
	}
	e.Primary, e.Secondary, e.Notes = primary, secondary, notes

	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = s.now().UTC()
	}
	if e.UpdatedAt.Before(e.CreatedAt) {
		e.UpdatedAt = e.CreatedAt
	}

	_, err = s.db.Exec(
		`INSERT INTO entries (`+entryColumns+`) VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			primary_text = excluded.primary_text,
			secondary_text = excluded.secondary_text,
			notes = excluded.notes,
			created_at = excluded.created_at,
			updated_at = excluded.updated_at`,
		e.ID, e.Primary, e.Secondary, e.Notes, formatTime(e.CreatedAt), formatTime(e.UpdatedAt),
	)
	if err != nil {
		return Entry{}, fmt.Errorf("storing entry %s: %w", e.ID, err)
	}
	return e, nil
}

// Delete removes an entry.
func (s *Store) Delete(id string) error {
	res, err := s.db.Exec(`DELETE FROM entries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting entry: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("entry %s: %w", id, ErrNotFound)
	}
	return nil
}

// Get returns the entry with the exact id.
func (s *Store) Get(id string) (Entry, error) {
	row := s.db.QueryRow(`SELECT `+entryColumns+` FROM entries WHERE id = ?`, id)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, fmt.Errorf("entry %s: %w", id, ErrNotFound)
	}
	return e, err
}

// Resolve finds an entry by its full id or by a unique id prefix of at
// least four characters.
func (s *Store) Resolve(ref string) (Entry, error) {
	e, err := s.Get(ref)
	if err == nil || !errors.Is(err, ErrNotFound) {
		return e, err
	}
	if len(ref) < minPrefixLen {
		return Entry{}, fmt.Errorf("entry %s: %w", ref, ErrNotFound)
	}

	rows, err := s.db.Query(
		`SELECT `+entryColumns+` FROM entries WHERE substr(id, 1, ?) = ? LIMIT 2`,
		len(ref), ref,
	)
	if err != nil {
		return Entry{}, fmt.Errorf("resolving id: %w", err)
	}
	defer rows.Close()

	var found []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return Entry{}, err
		}
		found = append(found, e)
	}
	if err := rows.Err(); err != nil {
		return Entry{}, err
	}

	switch len(found) {
	case 0:
		return Entry{}, fmt.Errorf("entry %s: %w", ref, ErrNotFound)
	case 1:
		return found[0], nil
	default:
		return Entry{}, fmt.Errorf("%q: %w", ref, ErrAmbiguousID)
	}
}

// List returns every entry in creation order.
func (s *Store) List() ([]Entry, error) {
	rows, err := s.db.Query(`SELECT ` + entryColumns + ` FROM entries ORDER BY created_at ASC, rowid ASC`)
	if err != nil {
		return nil, fmt.Errorf("listing entries: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Count returns the number of entries.
func (s *Store) Count() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM entries`).Scan(&n)
	return n, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (Entry, error) {
	var e Entry
	var createdStr, updatedStr string
	if err := row.Scan(&e.ID, &e.Primary, &e.Secondary, &e.Notes, &createdStr, &updatedStr); err != nil {
		return Entry{}, err
	}
	e.CreatedAt = parseTime(createdStr)
	e.UpdatedAt = parseTime(updatedStr)
	return e, nil
}

// timeLayout is fixed-width so stored timestamps sort correctly as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// parseTime accepts RFC 3339 and SQLite's CURRENT_TIMESTAMP layout.
func parseTime(s string) time.Time {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t
	}
	if t, err := time.Parse("2006-01-02 15:04:05", s); err == nil {
		return t
	}
	return time.Time{}
}

package dict

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Suggestion is a word pair proposed by someone without edit rights. It
// becomes an Entry only once approved.
type Suggestion struct {
	ID        string    `json:"id"`
	Primary   string    `json:"primary"`
	Secondary string    `json:"secondary"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"createdAt"`
}

const suggestionColumns = `id, primary_text, secondary_text, notes, created_at`

// SuggestionStore handles the suggestion review queue.
type SuggestionStore struct {
	db  *sql.DB
	now func() time.Time
}

// NewSuggestionStore creates a new suggestion store.
func NewSuggestionStore(db *sql.DB) *SuggestionStore {
	return &SuggestionStore{db: db, now: time.Now}
}

// Submit queues a new suggestion.
func (s *SuggestionStore) Submit(primary, secondary, notes string) (Suggestion, error) {
	primary, secondary, notes, err := normalizeText(primary, secondary, notes)
	if err != nil {
		return Suggestion{}, err
	}

	sg := Suggestion{
		ID:        uuid.New().String(),
		Primary:   primary,
		Secondary: secondary,
		Notes:     notes,
		CreatedAt: s.now().UTC(),
	}
	_, err = s.db.Exec(
		`INSERT INTO suggestions (id, primary_text, secondary_text, notes, created_at) VALUES (?, ?, ?, ?, ?)`,
		sg.ID, sg.Primary, sg.Secondary, sg.Notes, formatTime(sg.CreatedAt),
	)
	if err != nil {
		return Suggestion{}, fmt.Errorf("inserting suggestion: %w", err)
	}
	return sg, nil
}

// List returns pending suggestions, newest first.
func (s *SuggestionStore) List() ([]Suggestion, error) {
	rows, err := s.db.Query(
		`SELECT ` + suggestionColumns + ` FROM suggestions ORDER BY created_at DESC, rowid DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing suggestions: %w", err)
	}
	defer rows.Close()

	out := []Suggestion{}
	for rows.Next() {
		sg, err := scanSuggestion(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sg)
	}
	return out, rows.Err()
}

// Get returns the suggestion with the given id.
func (s *SuggestionStore) Get(id string) (Suggestion, error) {
	row := s.db.QueryRow(
		`SELECT `+suggestionColumns+` FROM suggestions WHERE id = ?`, id,
	)
	sg, err := scanSuggestion(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Suggestion{}, fmt.Errorf("suggestion %s: %w", id, ErrNotFound)
	}
	return sg, err
}

// Resolve finds a suggestion by its full id or by a unique id prefix of at
// least four characters, like Store.Resolve.
func (s *SuggestionStore) Resolve(ref string) (Suggestion, error) {
	sg, err := s.Get(ref)
	if err == nil || !errors.Is(err, ErrNotFound) {
		return sg, err
	}
	if len(ref) < minPrefixLen {
		return Suggestion{}, fmt.Errorf("suggestion %s: %w", ref, ErrNotFound)
	}

	rows, err := s.db.Query(
		`SELECT `+suggestionColumns+` FROM suggestions WHERE substr(id, 1, ?) = ? LIMIT 2`,
		len(ref), ref,
	)
	if err != nil {
		return Suggestion{}, fmt.Errorf("resolving id: %w", err)
	}
	defer rows.Close()

	var found []Suggestion
	for rows.Next() {
		sg, err := scanSuggestion(rows)
		if err != nil {
			return Suggestion{}, err
		}
		found = append(found, sg)
	}
	if err := rows.Err(); err != nil {
		return Suggestion{}, err
	}

	switch len(found) {
	case 0:
		return Suggestion{}, fmt.Errorf("suggestion %s: %w", ref, ErrNotFound)
	case 1:
		return found[0], nil
	default:
		return Suggestion{}, fmt.Errorf("%q: %w", ref, ErrAmbiguousID)
	}
}

// Approve turns a suggestion into an entry and removes it from the queue,
// atomically. Returns the created entry.
func (s *SuggestionStore) Approve(id string) (Entry, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return Entry{}, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRow(
		`SELECT `+suggestionColumns+` FROM suggestions WHERE id = ?`, id,
	)
	sg, err := scanSuggestion(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, fmt.Errorf("suggestion %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return Entry{}, err
	}

	now := s.now().UTC()
	e := Entry{
		ID:        uuid.New().String(),
		Primary:   sg.Primary,
		Secondary: sg.Secondary,
		Notes:     sg.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := tx.Exec(
		`INSERT INTO entries (`+entryColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.Primary, e.Secondary, e.Notes, formatTime(e.CreatedAt), formatTime(e.UpdatedAt),
	); err != nil {
		return Entry{}, fmt.Errorf("inserting entry: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM suggestions WHERE id = ?`, id); err != nil {
		return Entry{}, fmt.Errorf("removing suggestion: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return Entry{}, fmt.Errorf("committing approval: %w", err)
	}
	return e, nil
}

// Discard removes a suggestion without creating an entry.
func (s *SuggestionStore) Discard(id string) error {
	res, err := s.db.Exec(`DELETE FROM suggestions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("discarding suggestion: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("suggestion %s: %w", id, ErrNotFound)
	}
	return nil
}

// Count returns the number of pending suggestions.
func (s *SuggestionStore) Count() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM suggestions`).Scan(&n)
	return n, err
}

func scanSuggestion(row scanner) (Suggestion, error) {
	var sg Suggestion
	var createdStr string
	if err := row.Scan(&sg.ID, &sg.Primary, &sg.Secondary, &sg.Notes, &createdStr); err != nil {
		return Suggestion{}, err
	}
	sg.CreatedAt = parseTime(createdStr)
	return sg, nil
}

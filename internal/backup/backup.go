// Package backup exports the dictionary to a portable JSON document and
// imports it back.
//
// The document is {"entries":[...]}. Exports may be wrapped in an armored
// age envelope encrypted with a passphrase (age scrypt). Imports detect the
// envelope, and accept both the current field names (primary/secondary)
// and the legacy ones (en/es).
package backup

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"filippo.io/age"
	"filippo.io/age/armor"

	"github.com/rnwolfe/lexi/internal/dict"
)

// ErrWrongPassphrase is returned when decryption fails due to a bad passphrase.
var ErrWrongPassphrase = errors.New("wrong passphrase")

// ErrCorrupted is returned when a backup cannot be decrypted or parsed.
var ErrCorrupted = errors.New("backup is corrupted or unreadable")

// document is the exported layout.
type document struct {
	Entries []dict.Entry `json:"entries"`
}

// record is one imported entry. Timestamps stay strings so that blank or
// odd values degrade to "now" instead of failing the whole import.
type record struct {
	ID        string `json:"id"`
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
	En        string `json:"en"`
	Es        string `json:"es"`
	Notes     string `json:"notes"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// Encode renders entries as a backup. An empty passphrase gives plain
// indented JSON.
func Encode(entries []dict.Entry, passphrase string) ([]byte, error) {
	if entries == nil {
		entries = []dict.Entry{}
	}
	plain, err := json.MarshalIndent(document{Entries: entries}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("serializing backup: %w", err)
	}
	plain = append(plain, '\n')
	if passphrase == "" {
		return plain, nil
	}
	return encrypt(plain, passphrase)
}

// WriteFile encodes entries and writes them atomically to path.
func WriteFile(path string, entries []dict.Entry, passphrase string) error {
	raw, err := Encode(entries, passphrase)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating backup directory: %w", err)
	}
	return atomicWrite(path, raw)
}

// IsEncrypted reports whether raw is an armored age file.
func IsEncrypted(raw []byte) bool {
	return bytes.HasPrefix(bytes.TrimSpace(raw), []byte(armor.Header))
}

// Decode parses a backup. passphrase is only called for encrypted input.
func Decode(raw []byte, passphrase func() (string, error)) ([]dict.Entry, error) {
	if IsEncrypted(raw) {
		if passphrase == nil {
			return nil, fmt.Errorf("%w: backup is encrypted", ErrWrongPassphrase)
		}
		p, err := passphrase()
		if err != nil {
			return nil, err
		}
		raw, err = decrypt(raw, p)
		if err != nil {
			return nil, err
		}
	}

	var doc struct {
		Entries []record `json:"entries"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: parsing backup JSON: %v", ErrCorrupted, err)
	}

	out := make([]dict.Entry, 0, len(doc.Entries))
	for _, r := range doc.Entries {
		out = append(out, r.entry())
	}
	return out, nil
}

func (r record) entry() dict.Entry {
	e := dict.Entry{
		ID:        strings.TrimSpace(r.ID),
		Primary:   r.Primary,
		Secondary: r.Secondary,
		Notes:     r.Notes,
		CreatedAt: parseTime(r.CreatedAt),
		UpdatedAt: parseTime(r.UpdatedAt),
	}
	if e.Primary == "" {
		e.Primary = r.En
	}
	if e.Secondary == "" {
		e.Secondary = r.Es
	}
	return e
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}

// Putter upserts an entry by id.
type Putter interface {
	Put(e dict.Entry) (dict.Entry, error)
}

// Result counts what an import did.
type Result struct {
	Imported int
	Skipped  int
}

// Import upserts entries into s. Entries without both texts are skipped
// and counted rather than aborting the batch.
func Import(s Putter, entries []dict.Entry) (Result, error) {
	var res Result
	for _, e := range entries {
		if _, err := s.Put(e); err != nil {
			if errors.Is(err, dict.ErrRequired) {
				res.Skipped++
				continue
			}
			return res, fmt.Errorf("importing %q: %w", e.Primary, err)
		}
		res.Imported++
	}
	return res, nil
}

// ReadFile reads and decodes the backup at path.
func ReadFile(path string, passphrase func() (string, error)) ([]dict.Entry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Decode(raw, passphrase)
}

// encrypt wraps plaintext in an armored age scrypt envelope.
func encrypt(plaintext []byte, passphrase string) ([]byte, error) {
	recipient, err := age.NewScryptRecipient(passphrase)
	if err != nil {
		return nil, fmt.Errorf("creating age recipient: %w", err)
	}

	var buf bytes.Buffer
	armorWriter := armor.NewWriter(&buf)

	w, err := age.Encrypt(armorWriter, recipient)
	if err != nil {
		return nil, fmt.Errorf("initializing age encryption: %w", err)
	}
	if _, err := w.Write(plaintext); err != nil {
		return nil, fmt.Errorf("encrypting backup: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("finalizing encryption: %w", err)
	}
	if err := armorWriter.Close(); err != nil {
		return nil, fmt.Errorf("finalizing armor: %w", err)
	}
	return buf.Bytes(), nil
}

func decrypt(raw []byte, passphrase string) ([]byte, error) {
	identity, err := age.NewScryptIdentity(passphrase)
	if err != nil {
		return nil, fmt.Errorf("creating age identity: %w", err)
	}

	r, err := age.Decrypt(armor.NewReader(bytes.NewReader(raw)), identity)
	if err != nil {
		// age has no typed error for a bad passphrase.
		msg := err.Error()
		if strings.Contains(msg, "no identity matched") || strings.Contains(msg, "incorrect") {
			return nil, fmt.Errorf("%w: %v", ErrWrongPassphrase, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrCorrupted, err)
	}

	plaintext, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: reading decrypted data: %v", ErrCorrupted, err)
	}
	return plaintext, nil
}

// atomicWrite writes data to path: temp file, fsync, rename.
func atomicWrite(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".lexi-backup-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpName)
		}
	}()

	if err := os.Chmod(tmpName, 0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("setting temp file permissions: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing backup: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("fsyncing backup: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("committing backup file: %w", err)
	}

	success = true
	return nil
}

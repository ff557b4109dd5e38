package artifact

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/udisondev/ec2bgen/internal/ec2b"
)

// Default file names, as the client expects them.
const (
	DefaultSeedName = "Ec2bSeed.bin"
	DefaultKeyName  = "Ec2bKey.bin"
)

// Record describes one written artifact pair.
type Record struct {
	SeedPath        string
	KeyPath         string
	SeedFingerprint string
	KeyFingerprint  string
}

// Writer persists artifact pairs under Dir.
type Writer struct {
	Dir      string
	SeedName string
	KeyName  string
}

// NewWriter returns a Writer using the default file names.
func NewWriter(dir string) *Writer {
	return &Writer{Dir: dir, SeedName: DefaultSeedName, KeyName: DefaultKeyName}
}

// Write stores a as two files in Dir/sub (sub may be empty). Each file is
// written to a temporary name and renamed into place, so readers never see a
// partial artifact.
func (w *Writer) Write(sub string, a *ec2b.Artifacts) (Record, error) {
	dir := filepath.Join(w.Dir, sub)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Record{}, fmt.Errorf("creating output dir %s: %w", dir, err)
	}

	rec := Record{
		SeedPath:        filepath.Join(dir, w.SeedName),
		KeyPath:         filepath.Join(dir, w.KeyName),
		SeedFingerprint: Fingerprint(a.SeedFile),
		KeyFingerprint:  Fingerprint(a.Xorpad),
	}
	if err := WriteFile(rec.SeedPath, a.SeedFile); err != nil {
		return Record{}, err
	}
	if err := WriteFile(rec.KeyPath, a.Xorpad); err != nil {
		return Record{}, err
	}

	slog.Info("artifacts written",
		"seed", rec.SeedPath, "seed_bytes", len(a.SeedFile),
		"key", rec.KeyPath, "key_bytes", len(a.Xorpad),
		"fingerprint", rec.KeyFingerprint)
	return rec, nil
}

// WriteFile atomically replaces path with data.
func WriteFile(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("creating temp file for %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("setting mode on %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("renaming into %s: %w", path, err)
	}
	return nil
}

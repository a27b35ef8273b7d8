// Package storage implements the ticket file repository on local disk.
package storage

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"fixdesk/internal/application/ticket/usecases"
	"fixdesk/internal/shared/config"
	"fixdesk/internal/shared/errors"
)

// typeDirs are the per-ticket subdirectories files are sorted into by
// extension.
var typeDirs = []string{"images", "pdfs", "documents", "spreadsheets", "text", "other"}

var dirByExtension = map[string]string{
	".jpg":  "images",
	".jpeg": "images",
	".png":  "images",
	".gif":  "images",
	".bmp":  "images",
	".webp": "images",
	".pdf":  "pdfs",
	".doc":  "documents",
	".docx": "documents",
	".odt":  "documents",
	".xls":  "spreadsheets",
	".xlsx": "spreadsheets",
	".csv":  "spreadsheets",
	".txt":  "text",
	".log":  "text",
	".md":   "text",
}

var mimeByExtension = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".bmp":  "image/bmp",
	".webp": "image/webp",
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".odt":  "application/vnd.oasis.opendocument.text",
	".xls":  "application/vnd.ms-excel",
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	".csv":  "text/csv",
	".txt":  "text/plain",
	".log":  "text/plain",
	".md":   "text/markdown",
}

// LocalFileStore keeps ticket files on local disk under a per-ticket
// directory tree. Stored names carry a timestamp and a random suffix so
// repeated uploads of the same file never collide.
type LocalFileStore struct {
	root        string
	maxFileSize int64
}

func NewLocalFileStore(cfg *config.StorageConfig) (*LocalFileStore, error) {
	if cfg.RootPath == "" {
		return nil, fmt.Errorf("storage root path is required")
	}
	if err := os.MkdirAll(cfg.RootPath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage root: %w", err)
	}

	return &LocalFileStore{
		root:        cfg.RootPath,
		maxFileSize: cfg.MaxFileSize,
	}, nil
}

// EnsureLayout creates the ticket's directory skeleton.
func (s *LocalFileStore) EnsureLayout(ticketID uint) error {
	base := s.ticketDir(ticketID)
	for _, dir := range typeDirs {
		if err := os.MkdirAll(filepath.Join(base, dir), 0o755); err != nil {
			return fmt.Errorf("failed to create ticket directory: %w", err)
		}
	}
	return nil
}

// Store writes the file into the subdirectory derived from its
// extension. The returned path reference is relative to the storage
// root.
func (s *LocalFileStore) Store(ticketID uint, originalName string, r io.Reader) (*usecases.StoredFile, error) {
	ext := strings.ToLower(filepath.Ext(originalName))

	typeDir, ok := dirByExtension[ext]
	if !ok {
		typeDir = "other"
	}

	dir := filepath.Join(s.ticketDir(ticketID), typeDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create target directory: %w", err)
	}

	storedName, err := storedFileName(originalName, ext)
	if err != nil {
		return nil, err
	}

	fullPath := filepath.Join(dir, storedName)
	f, err := os.OpenFile(fullPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}

	var src io.Reader = r
	if s.maxFileSize > 0 {
		src = io.LimitReader(r, s.maxFileSize+1)
	}

	size, err := io.Copy(f, src)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(fullPath)
		return nil, fmt.Errorf("failed to write file: %w", err)
	}
	if s.maxFileSize > 0 && size > s.maxFileSize {
		os.Remove(fullPath)
		return nil, errors.NewValidationError("file exceeds the maximum allowed size")
	}

	rel, err := filepath.Rel(s.root, fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to compute path reference: %w", err)
	}

	mimeType, ok := mimeByExtension[ext]
	if !ok {
		mimeType = "application/octet-stream"
	}

	return &usecases.StoredFile{
		PathRef:  filepath.ToSlash(rel),
		Size:     size,
		MimeType: mimeType,
		StoredAt: time.Now(),
	}, nil
}

// Delete removes a stored file by its path reference. Missing files are
// not an error; compensation may run after a partial failure.
func (s *LocalFileStore) Delete(pathRef string) error {
	full, err := s.resolve(pathRef)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// List returns the path references of every file stored for the ticket.
func (s *LocalFileStore) List(ticketID uint) ([]string, error) {
	base := s.ticketDir(ticketID)

	var refs []string
	err := filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return err
		}
		refs = append(refs, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list ticket files: %w", err)
	}

	return refs, nil
}

// Open returns a reader for a stored file.
func (s *LocalFileStore) Open(pathRef string) (io.ReadCloser, error) {
	full, err := s.resolve(pathRef)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(full)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFoundError("file not found")
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return f, nil
}

func (s *LocalFileStore) ticketDir(ticketID uint) string {
	return filepath.Join(s.root, "tickets", fmt.Sprintf("%d", ticketID))
}

// resolve maps a path reference back under the root, rejecting traversal.
func (s *LocalFileStore) resolve(pathRef string) (string, error) {
	full := filepath.Join(s.root, filepath.FromSlash(pathRef))
	rel, err := filepath.Rel(s.root, full)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("path reference escapes the storage root")
	}
	return full, nil
}

// storedFileName builds sanitizedBase_timestamp_random.ext.
func storedFileName(originalName, ext string) (string, error) {
	base := strings.TrimSuffix(filepath.Base(originalName), filepath.Ext(originalName))
	base = sanitizeBaseName(base)
	if base == "" {
		base = "file"
	}

	suffix := make([]byte, 4)
	if _, err := rand.Read(suffix); err != nil {
		return "", fmt.Errorf("failed to generate file suffix: %w", err)
	}

	return fmt.Sprintf("%s_%d_%s%s", base, time.Now().Unix(), hex.EncodeToString(suffix), ext), nil
}

func sanitizeBaseName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ', r == '.':
			b.WriteRune('_')
		}
	}
	return b.String()
}

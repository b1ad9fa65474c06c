package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

type Storage struct {
	rename func(oldpath, newpath string) error
}

func (s *Storage) move(oldpath, newpath string) error {
	if s.rename != nil {
		return s.rename(oldpath, newpath)
	}
	return os.Rename(oldpath, newpath)
}

// FileStats holds metadata about a file without reading its contents.
type FileStats struct {
	SizeBytes int64
	ModTime   time.Time
}

// File is one pending write for SaveAll.
type File struct {
	Path    string
	Content []byte
}

// SaveFile writes content to a temporary file next to filePath and renames it
// into place, so readers never observe a partial file.
func (s *Storage) SaveFile(filePath string, content []byte) error {
	return s.SaveAll([]File{{Path: filePath, Content: content}})
}

// SaveAll writes every file to a temporary sibling first and only renames
// once all of them were written. Existing targets are moved aside while the
// renames run; if any step fails every target is restored to its prior state.
func (s *Storage) SaveAll(files []File) error {
	for _, f := range files {
		if info, err := os.Lstat(f.Path); err == nil && info.IsDir() {
			return fmt.Errorf("error saving file %s: target is a directory", f.Path)
		}
	}

	temps := make([]string, 0, len(files))
	cleanup := func() {
		for _, tmp := range temps {
			_ = os.Remove(tmp)
		}
	}

	for _, f := range files {
		if dir := filepath.Dir(f.Path); dir != "" {
			if err := os.MkdirAll(dir, 0755); err != nil {
				cleanup()
				return fmt.Errorf("error creating directory for %s: %w", f.Path, err)
			}
		}
		tmp, err := os.CreateTemp(filepath.Dir(f.Path), "."+filepath.Base(f.Path)+".tmp-*")
		if err != nil {
			cleanup()
			return fmt.Errorf("error creating temp file for %s: %w", f.Path, err)
		}
		temps = append(temps, tmp.Name())
		if _, err := tmp.Write(f.Content); err != nil {
			_ = tmp.Close()
			cleanup()
			return fmt.Errorf("error saving file %s: %w", f.Path, err)
		}
		if err := tmp.Close(); err != nil {
			cleanup()
			return fmt.Errorf("error saving file %s: %w", f.Path, err)
		}
		if err := os.Chmod(tmp.Name(), 0644); err != nil {
			cleanup()
			return fmt.Errorf("error saving file %s: %w", f.Path, err)
		}
	}

	return s.commit(files, temps, cleanup)
}

// commit renames temps over their targets. Prior targets are kept as backups
// until every rename succeeded and are put back otherwise.
func (s *Storage) commit(files []File, temps []string, cleanup func()) error {
	backups := make([]string, len(files))
	rollback := func(n int) {
		for i := n; i >= 0; i-- {
			if backups[i] != "" {
				_ = s.move(backups[i], files[i].Path)
			} else if i < n {
				_ = os.Remove(files[i].Path)
			}
		}
		cleanup()
	}

	for i, f := range files {
		if _, err := os.Lstat(f.Path); err == nil {
			backup := temps[i] + ".bak"
			if err := s.move(f.Path, backup); err != nil {
				rollback(i)
				return fmt.Errorf("error moving existing %s aside: %w", f.Path, err)
			}
			backups[i] = backup
		}
		if err := s.move(temps[i], f.Path); err != nil {
			rollback(i)
			return fmt.Errorf("error moving %s into place: %w", f.Path, err)
		}
	}

	for _, b := range backups {
		if b != "" {
			_ = os.Remove(b)
		}
	}
	return nil
}

func (s *Storage) ReadFile(filePath string) ([]byte, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}
	return data, nil
}

func (s *Storage) HasFile(fn string) bool {
	_, err := os.Stat(fn)
	return err == nil
}

// GetFileStats returns metadata about a file using os.Stat (no I/O overhead).
func (s *Storage) GetFileStats(filePath string) (*FileStats, error) {
	info, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("error getting file stats: %w", err)
	}

	return &FileStats{
		SizeBytes: info.Size(),
		ModTime:   info.ModTime(),
	}, nil
}

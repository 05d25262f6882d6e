package preview

import (
	"fmt"
	"os"
	"path/filepath"
)

// Surface is an isolated place where a preview document is displayed.
type Surface interface {
	// Apply replaces the whole surface content.
	Apply(m Mutation) error
	// Clear empties the surface.
	Clear() error
	// Content returns what the surface currently shows.
	Content() string
}

// Interface compliance checks.
var (
	_ Surface = (*FileSurface)(nil)
	_ Surface = (*MemorySurface)(nil)
)

// placeholder is written when the surface is cleared, so a browser tab
// pointed at the file shows something sensible.
const placeholder = "<!DOCTYPE html>\n<html><body><p><em>Enter some markdown content to see a preview</em></p></body></html>\n"

// FileSurface shows the preview as a standalone HTML file. Writes are
// atomic, so a browser reloading the file never sees half a document.
type FileSurface struct {
	path    string
	content string
}

// NewFileSurface returns a surface backed by path. Nothing is written
// until the first Apply or Clear.
func NewFileSurface(path string) *FileSurface {
	return &FileSurface{path: path}
}

// Path returns the file the surface writes to.
func (s *FileSurface) Path() string { return s.path }

// Apply writes m.Document to the file, replacing it.
func (s *FileSurface) Apply(m Mutation) error {
	if err := writeAtomic(s.path, []byte(m.Document)); err != nil {
		return err
	}
	s.content = m.Document
	return nil
}

// Clear replaces the file with a placeholder page.
func (s *FileSurface) Clear() error {
	if err := writeAtomic(s.path, []byte(placeholder)); err != nil {
		return err
	}
	s.content = ""
	return nil
}

// Content returns the last document applied, or "" after Clear.
func (s *FileSurface) Content() string { return s.content }

func writeAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create directories: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// MemorySurface keeps the preview in memory. Used when no preview file is
// configured and in tests.
type MemorySurface struct {
	content string
	applies int
}

// Apply replaces the content.
func (s *MemorySurface) Apply(m Mutation) error {
	s.content = m.Document
	s.applies++
	return nil
}

// Clear empties the content.
func (s *MemorySurface) Clear() error {
	s.content = ""
	return nil
}

// Content returns the current content.
func (s *MemorySurface) Content() string { return s.content }

// Applies returns how many times Apply was called.
func (s *MemorySurface) Applies() int { return s.applies }

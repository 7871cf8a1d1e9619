package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/MikeBiancalana/widescreen/internal/config"
)

// SessionFileExt is the extension of exported session files
const SessionFileExt = ".yaml"

// FileStore handles exported session files under the sessions directory
type FileStore struct {
	dir string
}

// NewFileStore creates a file store rooted at the configured sessions directory
func NewFileStore() (*FileStore, error) {
	dir, err := config.SessionsDir()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve sessions directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// NewFileStoreAt creates a file store rooted at dir
func NewFileStoreAt(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// FileInfo holds file metadata
type FileInfo struct {
	Path         string
	LastModified time.Time
	Exists       bool
}

// ReadSessionFile reads an exported session and returns its content and metadata
func (fs *FileStore) ReadSessionFile(name string) (content []byte, info FileInfo, err error) {
	filePath, err := fs.SessionPath(name)
	if err != nil {
		return nil, FileInfo{}, err
	}

	// Check if file exists
	fileInfo, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		return nil, FileInfo{Path: filePath, Exists: false}, nil
	}
	if err != nil {
		return nil, FileInfo{}, fmt.Errorf("failed to stat file: %w", err)
	}

	content, err = os.ReadFile(filePath)
	if err != nil {
		return nil, FileInfo{}, fmt.Errorf("failed to read file: %w", err)
	}

	return content, FileInfo{
		Path:         filePath,
		LastModified: fileInfo.ModTime(),
		Exists:       true,
	}, nil
}

// WriteSessionFile writes an exported session
func (fs *FileStore) WriteSessionFile(name string, content []byte) (string, error) {
	filePath, err := fs.SessionPath(name)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(fs.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create sessions directory: %w", err)
	}
	if err := os.WriteFile(filePath, content, 0644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	return filePath, nil
}

// SessionPath returns the file path for a session name
func (fs *FileStore) SessionPath(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", fmt.Errorf("invalid session file name %q", name)
	}
	return filepath.Join(fs.dir, name+SessionFileExt), nil
}

// ListSessionFiles returns the names of all exported sessions (sorted)
func (fs *FileStore) ListSessionFiles() ([]string, error) {
	entries, err := os.ReadDir(fs.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to read sessions directory: %w", err)
	}

	names := make([]string, 0)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if name := entry.Name(); filepath.Ext(name) == SessionFileExt {
			names = append(names, strings.TrimSuffix(name, SessionFileExt))
		}
	}
	sort.Strings(names)

	return names, nil
}

// DeleteSessionFile deletes an exported session
func (fs *FileStore) DeleteSessionFile(name string) error {
	filePath, err := fs.SessionPath(name)
	if err != nil {
		return err
	}

	if err := os.Remove(filePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete session file: %w", err)
	}

	return nil
}

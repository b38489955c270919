package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

type LocalStorage struct {
	basePath string
	baseURL  string // e.g., "http://localhost:8080/files"
}

func NewLocalStorage(basePath, baseURL string) (*LocalStorage, error) {
	absPath, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve storage directory: %w", err)
	}

	// Create base directory if not exists
	if err := os.MkdirAll(absPath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	return &LocalStorage{
		basePath: absPath,
		baseURL:  strings.TrimRight(baseURL, "/"),
	}, nil
}

// BasePath is the directory files are stored under.
func (s *LocalStorage) BasePath() string {
	return s.basePath
}

// resolve maps a relative path into basePath, rejecting anything that escapes it.
func (s *LocalStorage) resolve(p string) (string, string, error) {
	cleanPath := filepath.Clean(strings.TrimPrefix(filepath.FromSlash(p), string(filepath.Separator)))
	if cleanPath == "." || cleanPath == "" {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidPath, p)
	}

	fullPath := filepath.Join(s.basePath, cleanPath)
	rel, err := filepath.Rel(s.basePath, fullPath)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidPath, p)
	}

	return filepath.ToSlash(rel), fullPath, nil
}

func (s *LocalStorage) Upload(ctx context.Context, file io.Reader, p string, contentType string) (string, error) {
	cleanPath, fullPath, err := s.resolve(p)
	if err != nil {
		return "", err
	}

	// Create directory structure
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	dst, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		// Cleanup on error
		os.Remove(fullPath)
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return cleanPath, nil
}

func (s *LocalStorage) Download(ctx context.Context, p string) (io.ReadCloser, error) {
	_, fullPath, err := s.resolve(p)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, p)
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	return file, nil
}

func (s *LocalStorage) Delete(ctx context.Context, p string) error {
	_, fullPath, err := s.resolve(p)
	if err != nil {
		return err
	}

	if err := os.Remove(fullPath); err != nil {
		if os.IsNotExist(err) {
			return nil // Already deleted
		}
		return fmt.Errorf("failed to delete file: %w", err)
	}

	return nil
}

// URL joins the public base URL with the stored path.
func (s *LocalStorage) URL(p string) string {
	return s.baseURL + "/" + path.Clean(strings.TrimPrefix(filepath.ToSlash(p), "/"))
}

func (s *LocalStorage) Exists(ctx context.Context, p string) (bool, error) {
	_, fullPath, err := s.resolve(p)
	if err != nil {
		return false, err
	}

	if _, err := os.Stat(fullPath); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}

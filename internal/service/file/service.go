package file

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/storage"
	"github.com/google/uuid"
)

var contentTypes = map[string]string{
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	".pdf":  "application/pdf",
}

type FileService interface {
	// SaveReport archives a generated report under payroll/<label>/.
	SaveReport(ctx context.Context, label, name, ext string, data []byte) (payroll.ArchivedFile, error)

	// Generic operations
	DeleteFile(ctx context.Context, path string) error
	GetFileURL(path string) string
}

type fileServiceImpl struct {
	storage storage.FileStorage
}

func NewFileService(storage storage.FileStorage) FileService {
	return &fileServiceImpl{
		storage: storage,
	}
}

// SaveReport writes data as payroll/<label>/<name>-<uuid><ext>.
func (s *fileServiceImpl) SaveReport(ctx context.Context, label, name, ext string, data []byte) (payroll.ArchivedFile, error) {
	ext = strings.ToLower(ext)
	contentType, ok := contentTypes[ext]
	if !ok {
		return payroll.ArchivedFile{}, fmt.Errorf("invalid file type: only xlsx, pdf allowed")
	}

	// Generate unique filename
	newFilename := fmt.Sprintf("%s-%s%s", name, uuid.New().String(), ext)
	filePath := path.Join("payroll", label, newFilename)

	stored, err := s.storage.Upload(ctx, bytes.NewReader(data), filePath, contentType)
	if err != nil {
		return payroll.ArchivedFile{}, fmt.Errorf("failed to archive %s: %w", newFilename, err)
	}

	return payroll.ArchivedFile{
		Name: newFilename,
		Path: stored,
		URL:  s.storage.URL(stored),
	}, nil
}

// DeleteFile deletes a file from storage
func (s *fileServiceImpl) DeleteFile(ctx context.Context, path string) error {
	return s.storage.Delete(ctx, path)
}

// GetFileURL returns the public URL for a stored file
func (s *fileServiceImpl) GetFileURL(path string) string {
	return s.storage.URL(path)
}

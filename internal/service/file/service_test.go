package file

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveReport(t *testing.T) {
	ctx := context.Background()
	local, err := storage.NewLocalStorage(t.TempDir(), "http://localhost:8080/files")
	require.NoError(t, err)
	svc := NewFileService(local)

	f, err := svc.SaveReport(ctx, "1403-01", "payroll-1403-01", ".XLSX", []byte("data"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(f.Path, "payroll/1403-01/payroll-1403-01-"))
	assert.True(t, strings.HasSuffix(f.Name, ".xlsx"))
	assert.Equal(t, "http://localhost:8080/files/"+f.Path, f.URL)

	rc, err := local.Download(ctx, f.Path)
	require.NoError(t, err)
	defer rc.Close()
	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "data", string(body))

	again, err := svc.SaveReport(ctx, "1403-01", "payroll-1403-01", ".xlsx", []byte("data"))
	require.NoError(t, err)
	assert.NotEqual(t, f.Path, again.Path)

	require.NoError(t, svc.DeleteFile(ctx, f.Path))
	exists, err := local.Exists(ctx, f.Path)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestSaveReport_RejectsUnknownExtension(t *testing.T) {
	local, err := storage.NewLocalStorage(t.TempDir(), "")
	require.NoError(t, err)

	_, err = NewFileService(local).SaveReport(context.Background(), "1403-01", "x", ".exe", nil)
	assert.Error(t, err)
}

//go:build windows

package filesystem

import (
	"fmt"
	"os"
	"syscall"
	"testing"

	"github.com/IvanShishkin/dewabbit/pkg/models"
)

func TestClassifyMetadataError_CloudProviderErrno(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want models.Kind
	}{
		{"Path error", &os.PathError{Op: "stat", Path: `C:\OneDrive\a.txt`, Err: syscall.Errno(362)}, models.KindCloudPlaceholderUnavailable},
		{"Wrapped path error", fmt.Errorf("stat: %w", &os.PathError{Op: "stat", Path: "a.txt", Err: syscall.Errno(362)}), models.KindCloudPlaceholderUnavailable},
		{"Access denied", &os.PathError{Op: "stat", Path: "a.txt", Err: syscall.ERROR_ACCESS_DENIED}, models.KindPermissionDenied},
		{"Other errno", &os.PathError{Op: "stat", Path: "a.txt", Err: syscall.Errno(21)}, models.KindMetadataError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyMetadataError(tt.err); got != tt.want {
				t.Errorf("ClassifyMetadataError() = %v, want %v", got, tt.want)
			}
		})
	}
}

//go:build windows

package filesystem

import (
	"errors"
	"syscall"
)

// ERROR_CLOUD_FILE_PROVIDER_NOT_RUNNING
const errCloudFileProviderNotRunning syscall.Errno = 362

// isCloudPlaceholderErrno matches the error OneDrive-style placeholders return
// while the sync client is signed out
func isCloudPlaceholderErrno(err error) bool {
	var errno syscall.Errno
	return errors.As(err, &errno) && errno == errCloudFileProviderNotRunning
}

//go:build !windows

package filesystem

// isCloudPlaceholderErrno has no native errno to match outside Windows
func isCloudPlaceholderErrno(err error) bool {
	return false
}

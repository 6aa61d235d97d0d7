package filesystem

import (
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"golang.org/x/text/unicode/norm"
)

// ResolveTarget returns the absolute form of path. The NFC spelling is used
// only when the given spelling does not exist and the NFC one does. Existence
// of the result is checked by the scanner so it can be reported as a status.
func ResolveTarget(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(abs); err == nil {
		return abs, nil
	}
	nfc := norm.NFC.String(abs)
	if nfc == abs {
		return abs, nil
	}
	if _, err := os.Stat(nfc); err == nil {
		return nfc, nil
	}
	return abs, nil
}

// OpenTarget returns an OS-backed filesystem rooted at target
func OpenTarget(target string) billy.Filesystem {
	return osfs.New(target)
}

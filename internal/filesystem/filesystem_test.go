package filesystem

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/IvanShishkin/dewabbit/pkg/models"
	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
}

func TestHashBytes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected models.ContentDigest
	}{
		{"Hello", "hello", "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"},
		{"Empty", "", "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HashBytes([]byte(tt.input)); got != tt.expected {
				t.Errorf("HashBytes(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestHashBytes_Deterministic(t *testing.T) {
	inputs := [][]byte{[]byte("a"), []byte("b"), {0x00, 0xff}, make([]byte, 4096)}
	seen := make(map[models.ContentDigest]int)

	for i, in := range inputs {
		first := HashBytes(in)
		if second := HashBytes(in); first != second {
			t.Errorf("HashBytes not deterministic for input %d: %v != %v", i, first, second)
		}
		if len(first) != 64 {
			t.Errorf("digest length = %d, want 64", len(first))
		}
		if prev, ok := seen[first]; ok {
			t.Errorf("inputs %d and %d share digest %v", prev, i, first)
		}
		seen[first] = i
	}
}

func TestHasher_Hash(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "a.txt"), "hello")

	hasher := NewHasher(OpenTarget(tmpDir))
	digest, err := hasher.Hash("/a.txt")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if digest != HashBytes([]byte("hello")) {
		t.Errorf("Hash() = %v, want digest of %q", digest, "hello")
	}
}

func TestHasher_Hash_NonExistent(t *testing.T) {
	hasher := NewHasher(OpenTarget(t.TempDir()))

	_, err := hasher.Hash("/missing.txt")
	if err == nil {
		t.Fatal("Hash() expected error for non-existent file, got nil")
	}
	if models.KindOf(err) != models.KindIOError {
		t.Errorf("Hash() error kind = %v, want %v", models.KindOf(err), models.KindIOError)
	}
}

func TestEnumerator_List(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "a.txt"), "one")
	writeFile(t, filepath.Join(tmpDir, "b.txt"), "two")
	if err := os.Mkdir(filepath.Join(tmpDir, "sub"), 0755); err != nil {
		t.Fatalf("Failed to create dir: %v", err)
	}
	writeFile(t, filepath.Join(tmpDir, "sub", "nested.txt"), "not listed")

	entries, err := NewEnumerator(OpenTarget(tmpDir), zap.NewNop()).List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("List() returned %d entries, want 3", len(entries))
	}

	byName := make(map[string]models.FileEntry)
	for _, e := range entries {
		byName[e.Name] = e
	}
	if !byName["sub"].IsDir {
		t.Error("sub should be flagged as directory")
	}
	if byName["a.txt"].IsDir || byName["a.txt"].Path != filepath.Join(Root, "a.txt") {
		t.Errorf("a.txt entry = %+v", byName["a.txt"])
	}
	if _, ok := byName["nested.txt"]; ok {
		t.Error("List() must not descend into subdirectories")
	}
}

func TestEnumerator_List_MissingRoot(t *testing.T) {
	fs := OpenTarget(filepath.Join(t.TempDir(), "gone"))

	_, err := NewEnumerator(fs, zap.NewNop()).List()
	if !errors.Is(err, models.ErrIO) {
		t.Errorf("List() error = %v, want io_error", err)
	}
}

func TestRelocator_EnsureQuarantine_Idempotent(t *testing.T) {
	tmpDir := t.TempDir()
	r := NewRelocator(OpenTarget(tmpDir), zap.NewNop())

	for i := 0; i < 2; i++ {
		if err := r.EnsureQuarantine(); err != nil {
			t.Fatalf("EnsureQuarantine() run %d error = %v", i+1, err)
		}
	}

	info, err := os.Stat(filepath.Join(tmpDir, QuarantineDirName))
	if err != nil || !info.IsDir() {
		t.Fatalf("quarantine directory missing: %v", err)
	}
}

func TestRelocator_EnsureQuarantine_NotDir(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, QuarantineDirName), "file in the way")

	err := NewRelocator(OpenTarget(tmpDir), zap.NewNop()).EnsureQuarantine()
	if !errors.Is(err, models.ErrQuarantineNotDir) {
		t.Errorf("EnsureQuarantine() error = %v, want ErrQuarantineNotDir", err)
	}
	if models.KindOf(err) != models.KindIOError {
		t.Errorf("error kind = %v, want %v", models.KindOf(err), models.KindIOError)
	}
}

func TestRelocator_Copy_Overwrites(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "first.txt"), "first content")
	writeFile(t, filepath.Join(tmpDir, "second.txt"), "second")

	r := NewRelocator(OpenTarget(tmpDir), zap.NewNop())
	if err := r.EnsureQuarantine(); err != nil {
		t.Fatalf("EnsureQuarantine() error = %v", err)
	}

	dst := r.Destination("x.txt")
	if _, err := r.Copy("/first.txt", dst); err != nil {
		t.Fatalf("Copy() error = %v", err)
	}
	if !r.Exists(dst) {
		t.Fatal("Exists() = false after Copy")
	}
	n, err := r.Copy("/second.txt", dst)
	if err != nil {
		t.Fatalf("Copy() overwrite error = %v", err)
	}
	if n != int64(len("second")) {
		t.Errorf("Copy() wrote %d bytes, want %d", n, len("second"))
	}

	got, _ := os.ReadFile(filepath.Join(tmpDir, QuarantineDirName, "x.txt"))
	if string(got) != "second" {
		t.Errorf("quarantine content = %q, want %q", got, "second")
	}
	if _, err := os.Stat(filepath.Join(tmpDir, "second.txt")); err != nil {
		t.Error("Copy() must leave the source in place")
	}
}

func TestRelocator_Remove(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "a.txt"), "hello")
	r := NewRelocator(OpenTarget(tmpDir), zap.NewNop())

	missing, err := r.Remove("/a.txt")
	if err != nil || missing {
		t.Fatalf("Remove() = (%v, %v), want (false, nil)", missing, err)
	}

	missing, err = r.Remove("/a.txt")
	if err != nil {
		t.Fatalf("Remove() of missing file error = %v, want nil", err)
	}
	if !missing {
		t.Error("Remove() of missing file should report missing")
	}
}

func TestClassifyMetadataError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected models.Kind
	}{
		{"Permission", &os.PathError{Op: "stat", Path: "/a", Err: os.ErrPermission}, models.KindPermissionDenied},
		{"Cloud placeholder", fmt.Errorf("stat /a: %w", models.ErrCloudPlaceholder), models.KindCloudPlaceholderUnavailable},
		{"Not exist", &os.PathError{Op: "stat", Path: "/a", Err: os.ErrNotExist}, models.KindMetadataError},
		{"Other", errors.New("device not ready"), models.KindMetadataError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyMetadataError(tt.err); got != tt.expected {
				t.Errorf("ClassifyMetadataError(%v) = %v, want %v", tt.err, got, tt.expected)
			}
		})
	}
}

func TestInspector_Stat(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "a.txt"), "hello")
	inspector := NewInspector(OpenTarget(tmpDir))

	info, err := inspector.Stat("/a.txt")
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if info.Size() != 5 {
		t.Errorf("Size() = %d, want 5", info.Size())
	}

	_, err = inspector.Stat("/missing")
	if models.KindOf(err) != models.KindMetadataError {
		t.Errorf("Stat() missing kind = %v, want %v", models.KindOf(err), models.KindMetadataError)
	}
}

func TestResolveTarget(t *testing.T) {
	got, err := ResolveTarget(".")
	if err != nil {
		t.Fatalf("ResolveTarget() error = %v", err)
	}
	if !filepath.IsAbs(got) {
		t.Errorf("ResolveTarget(\".\") = %q, want absolute path", got)
	}

	tmpDir := t.TempDir()
	got, err = ResolveTarget(tmpDir)
	if err != nil || got != tmpDir {
		t.Errorf("ResolveTarget(%q) = (%q, %v)", tmpDir, got, err)
	}
}

func TestResolveTarget_KeepsGivenSpelling(t *testing.T) {
	tmpDir := t.TempDir()
	nfd := filepath.Join(tmpDir, norm.NFD.String("café"))
	nfc := filepath.Join(tmpDir, norm.NFC.String("café"))

	if err := os.Mkdir(nfd, 0755); err != nil {
		t.Fatalf("Failed to create NFD dir: %v", err)
	}
	if err := os.Mkdir(nfc, 0755); err != nil {
		t.Skipf("filesystem does not keep NFC and NFD names apart: %v", err)
	}
	nfdInfo, _ := os.Stat(nfd)
	nfcInfo, _ := os.Stat(nfc)
	if os.SameFile(nfdInfo, nfcInfo) {
		t.Skip("filesystem normalizes names")
	}

	got, err := ResolveTarget(nfd)
	if err != nil {
		t.Fatalf("ResolveTarget() error = %v", err)
	}
	if got != nfd {
		t.Errorf("ResolveTarget(NFD) = %q, want the NFD directory %q", got, nfd)
	}

	got, err = ResolveTarget(nfc)
	if err != nil || got != nfc {
		t.Errorf("ResolveTarget(NFC) = (%q, %v), want %q", got, err, nfc)
	}
}

func TestResolveTarget_FallsBackToNFC(t *testing.T) {
	tmpDir := t.TempDir()
	nfc := filepath.Join(tmpDir, norm.NFC.String("café"))
	if err := os.Mkdir(nfc, 0755); err != nil {
		t.Fatalf("Failed to create NFC dir: %v", err)
	}
	nfd := filepath.Join(tmpDir, norm.NFD.String("café"))
	if _, err := os.Stat(nfd); err == nil {
		t.Skip("filesystem normalizes names")
	}

	got, err := ResolveTarget(nfd)
	if err != nil || got != nfc {
		t.Errorf("ResolveTarget(missing NFD) = (%q, %v), want %q", got, err, nfc)
	}
}

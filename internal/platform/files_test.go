package platform

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCreateDirectoryIfNotExists(t *testing.T) {
	tempDir := t.TempDir()
	testDir := filepath.Join(tempDir, "test_dir", "nested")

	// Directory should not exist initially
	if _, err := os.Stat(testDir); !os.IsNotExist(err) {
		t.Fatalf("Test directory already exists: %s", testDir)
	}

	if err := CreateDirectoryIfNotExists(testDir); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}

	if _, err := os.Stat(testDir); os.IsNotExist(err) {
		t.Fatalf("Directory was not created: %s", testDir)
	}

	// Second call should not fail
	if err := CreateDirectoryIfNotExists(testDir); err != nil {
		t.Fatalf("Failed to handle existing directory: %v", err)
	}
}

func TestCreateDirectoryIfNotExists_KeepsExistingContents(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "already-downloaded.mp4")
	if err := os.WriteFile(existing, []byte("data"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := CreateDirectoryIfNotExists(dir); err != nil {
		t.Fatalf("Expected no error for non-empty directory, got %v", err)
	}

	data, err := os.ReadFile(existing)
	if err != nil {
		t.Fatalf("Existing file was removed: %v", err)
	}
	if string(data) != "data" {
		t.Errorf("Existing file was modified: %q", data)
	}
}

func TestCreateDirectoryIfNotExists_FileInTheWay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatal(err)
	}

	if err := CreateDirectoryIfNotExists(path); err == nil {
		t.Error("Expected error when output path is a file")
	}
}

func TestPrepareOutputDirectory(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	abs, err := PrepareOutputDirectory("./output")
	if err != nil {
		t.Fatalf("PrepareOutputDirectory failed: %v", err)
	}
	if !filepath.IsAbs(abs) {
		t.Errorf("Expected absolute path, got %s", abs)
	}
	if filepath.Base(abs) != "output" {
		t.Errorf("Expected path to end with output, got %s", abs)
	}
	if info, err := os.Stat(abs); err != nil || !info.IsDir() {
		t.Errorf("Expected directory to exist at %s", abs)
	}
}

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain", "Song A", "Song A"},
		{"separators", "AC/DC: Back in Black", "AC_DC_ Back in Black"},
		{"reserved", `a<b>c|d?e*f"g`, "a_b_c_d_e_f'g"},
		{"dots and spaces trimmed", "  ..hidden.. ", "hidden"},
		{"empty", "", FallbackFileName},
		{"only dots", "...", FallbackFileName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeFileName(tt.input); got != tt.expected {
				t.Errorf("SanitizeFileName(%q) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestExpandOutputTemplate(t *testing.T) {
	longTitle := "This Is A Very Long Video Title That Goes Past Fifty Chars"

	tests := []struct {
		name     string
		template string
		title    string
		id       string
		expected string
	}{
		{
			name:     "title and ext",
			template: filepath.Join("/out", "%(title)s.%(ext)s"),
			title:    "Song A",
			id:       "a",
			expected: filepath.Join("/out", "Song A.mp4"),
		},
		{
			name:     "untruncated title",
			template: filepath.Join("/out", "%(title)s.%(ext)s"),
			title:    longTitle,
			id:       "a",
			expected: filepath.Join("/out", longTitle+".mp4"),
		},
		{
			name:     "id field",
			template: filepath.Join("/out", "%(id)s - %(title)s.%(ext)s"),
			title:    "A/B",
			id:       "abc123",
			expected: filepath.Join("/out", "abc123 - A_B.mp4"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExpandOutputTemplate(tt.template, tt.title, tt.id, NativeOutputExt)
			if got != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}
}

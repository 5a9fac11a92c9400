package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// File permissions
const (
	DefaultDirPermissions = 0755
)

// Output template fields understood by ExpandOutputTemplate
const (
	TemplateFieldTitle = "%(title)s"
	TemplateFieldID    = "%(id)s"
	TemplateFieldExt   = "%(ext)s"
)

// Filename limits
const (
	MaxFileNameLength = 200
	FallbackFileName  = "video"
)

// filenameReplacer swaps characters that are invalid in filenames on at
// least one supported OS
var filenameReplacer = strings.NewReplacer(
	"/", "_",
	"\\", "_",
	":", "_",
	"*", "_",
	"?", "_",
	"\"", "'",
	"<", "_",
	">", "_",
	"|", "_",
	"\x00", "",
)

// CreateDirectoryIfNotExists creates directory if it doesn't exist. An
// existing directory, empty or not, is left untouched.
func CreateDirectoryIfNotExists(dirPath string) error {
	info, err := os.Stat(dirPath)
	if os.IsNotExist(err) {
		return os.MkdirAll(dirPath, DefaultDirPermissions)
	}
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("output path exists and is not a directory: %s", dirPath)
	}
	return nil
}

// PrepareOutputDirectory creates dirPath if needed and returns its absolute form
func PrepareOutputDirectory(dirPath string) (string, error) {
	absPath, err := filepath.Abs(dirPath)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}
	if err := CreateDirectoryIfNotExists(absPath); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	return absPath, nil
}

// SanitizeFileName makes name safe to use as a single path element
func SanitizeFileName(name string) string {
	name = filenameReplacer.Replace(name)
	name = strings.TrimSpace(name)
	name = strings.Trim(name, ".")

	runes := []rune(name)
	if len(runes) > MaxFileNameLength {
		name = strings.TrimSpace(string(runes[:MaxFileNameLength]))
	}
	if name == "" {
		return FallbackFileName
	}
	return name
}

// ExpandOutputTemplate fills a yt-dlp style output template for engines that
// do not understand templates themselves. Only the directory part is kept
// verbatim; field values are sanitized.
func ExpandOutputTemplate(template, title, id, ext string) string {
	dir, file := filepath.Split(template)
	file = strings.NewReplacer(
		TemplateFieldTitle, SanitizeFileName(title),
		TemplateFieldID, SanitizeFileName(id),
		TemplateFieldExt, ext,
	).Replace(file)
	return filepath.Join(dir, file)
}

package utils

import (
	"bytes"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// AudioExtensions lists the formats the decoder actually handles.
var AudioExtensions = map[string]bool{
	".mp3": true,
	".wav": true,
}

// Magic numbers for the supported audio formats
var MagicNumbers = map[string][]byte{
	"mp3": {0x49, 0x44, 0x33},       // ID3
	"wav": {0x52, 0x49, 0x46, 0x46}, // RIFF
}

// IsAudioFile reports whether a path looks like a clip we can decode, by
// extension first and file header second.
func IsAudioFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if !AudioExtensions[ext] {
		return false
	}

	file, err := os.Open(path)
	if err != nil {
		return false
	}
	defer file.Close()

	header := make([]byte, 8)
	n, err := file.Read(header)
	if err != nil || n < 8 {
		return false
	}

	// Check MIME type
	mimeType := http.DetectContentType(header)
	if strings.HasPrefix(mimeType, "audio/") {
		return true
	}

	for _, magic := range MagicNumbers {
		if bytes.HasPrefix(header, magic) {
			return true
		}
	}

	// Raw mp3 frames carry no ID3 header, just the frame sync bits.
	if ext == ".mp3" && n >= 2 && header[0] == 0xFF && header[1]&0xE0 == 0xE0 {
		return true
	}

	return false
}

// GetCompletions expands a partial path into matching directories and
// decodable audio files.
func GetCompletions(partialPath string) []string {
	dir := filepath.Dir(partialPath)
	if dir == "." {
		dir = "."
	}

	prefix := filepath.Base(partialPath)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var completions []string
	for _, entry := range entries {
		name := entry.Name()
		fullPath := filepath.Join(dir, name)

		// Skip if doesn't match prefix
		if !strings.HasPrefix(strings.ToLower(name), strings.ToLower(prefix)) {
			continue
		}

		// Always include directories
		if entry.IsDir() {
			completions = append(completions, fullPath+string(os.PathSeparator))
			continue
		}

		// For files, only include decodable clips
		if IsAudioFile(fullPath) {
			completions = append(completions, fullPath)
		}
	}

	return completions
}

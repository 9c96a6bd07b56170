package dictionary

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
)

// maxChunkWords bounds the entry count a binary header may declare.
const maxChunkWords = 1000000

// FileFormat represents different dictionary file formats
type FileFormat int

const (
	FormatUnknown FileFormat = iota
	FormatTrie               // single binary dictionary
	FormatChunk              // dict_NNNN.bin chunk
	FormatText               // "word count" lines
)

func (f FileFormat) String() string {
	if info, ok := supportedFormats[f]; ok {
		return info.Description
	}
	return "Unknown"
}

// FormatInfo contains metadata about a dictionary file format
type FormatInfo struct {
	Format      FileFormat
	Description string
	Extensions  []string
	MinSize     int64 // Minimum expected file size in bytes
}

var supportedFormats = map[FileFormat]FormatInfo{
	FormatTrie: {
		Format:      FormatTrie,
		Description: "Binary Dictionary",
		Extensions:  []string{".bin"},
		MinSize:     4,
	},
	FormatChunk: {
		Format:      FormatChunk,
		Description: "Chunked Binary Dictionary",
		Extensions:  []string{".bin"},
		MinSize:     4,
	},
	FormatText: {
		Format:      FormatText,
		Description: "Word Frequency List",
		Extensions:  []string{".txt"},
		MinSize:     3, // "a 1"
	},
}

// ValidateFileFormat checks if a file matches the expected format
func ValidateFileFormat(filename string, expectedFormat FileFormat) error {
	fileInfo, err := os.Stat(filename)
	if err != nil {
		return fmt.Errorf("failed to stat file %s: %w", filename, err)
	}

	formatInfo, exists := supportedFormats[expectedFormat]
	if !exists {
		return fmt.Errorf("unknown format: %v", expectedFormat)
	}

	if fileInfo.Size() < formatInfo.MinSize {
		return fmt.Errorf("file %s is too small (%d bytes) for format %s (minimum: %d bytes)",
			filename, fileInfo.Size(), formatInfo.Description, formatInfo.MinSize)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	validExt := false
	for _, validExtension := range formatInfo.Extensions {
		if ext == validExtension {
			validExt = true
			break
		}
	}
	if !validExt {
		return fmt.Errorf("file %s has invalid extension %s for format %s (expected: %v)",
			filename, ext, formatInfo.Description, formatInfo.Extensions)
	}

	switch expectedFormat {
	case FormatTrie, FormatChunk:
		return validateBinaryFormat(filename)
	case FormatText:
		return validateTextFormat(filename)
	}
	return nil
}

// validateBinaryFormat validates binary dictionary files
func validateBinaryFormat(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open file %s: %w", filename, err)
	}
	defer file.Close()

	var wordCount int32
	if err := binary.Read(file, binary.LittleEndian, &wordCount); err != nil {
		return fmt.Errorf("failed to read header from %s: %w", filename, err)
	}
	if wordCount < 0 {
		return fmt.Errorf("invalid word count in %s: %d (negative)", filename, wordCount)
	}
	if wordCount > maxChunkWords {
		return fmt.Errorf("suspicious word count in %s: %d (too large)", filename, wordCount)
	}

	log.Debugf("Binary file %s validated: %d words", filename, wordCount)
	return nil
}

// validateTextFormat checks that the first entry line has a numeric count.
func validateTextFormat(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open file %s: %w", filename, err)
	}
	defer file.Close()

	s := bufio.NewScanner(file)
	for s.Scan() {
		line := strings.TrimSpace(s.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.Fields(line)
		if len(parts) < 2 {
			return fmt.Errorf("text file %s: first entry %q has no count", filename, line)
		}
		if _, err := strconv.ParseFloat(parts[1], 64); err != nil {
			return fmt.Errorf("text file %s: invalid count %q", filename, parts[1])
		}
		log.Debugf("Text file %s validated", filename)
		return nil
	}
	if err := s.Err(); err != nil {
		return fmt.Errorf("failed to read from text file %s: %w", filename, err)
	}
	return fmt.Errorf("text file %s has no entries", filename)
}

// DetectFileFormat attempts to detect the format of a file
func DetectFileFormat(filename string) (FileFormat, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	basename := strings.ToLower(filepath.Base(filename))

	if strings.HasPrefix(basename, "dict_") && ext == ".bin" {
		if err := ValidateFileFormat(filename, FormatChunk); err == nil {
			return FormatChunk, nil
		}
	}
	if ext == ".bin" {
		if err := ValidateFileFormat(filename, FormatTrie); err == nil {
			return FormatTrie, nil
		}
	}
	if ext == ".txt" {
		if err := ValidateFileFormat(filename, FormatText); err == nil {
			return FormatText, nil
		}
	}

	return FormatUnknown, fmt.Errorf("unable to detect format for file %s", filename)
}

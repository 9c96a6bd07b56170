// Package dictionary loads word frequency lists that feed the correction backends.
package dictionary

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/bastiangx/wordcheck/internal/utils"
	"github.com/charmbracelet/log"
	"github.com/edsrzf/mmap-go"
)

// maxRank is the rank space of chunk files; rank 1 maps to the highest score.
const maxRank = 65536

// RankedWord is one entry of a chunk file.
type RankedWord struct {
	Word string
	Rank uint16
}

// ChunkInfo contains metadata about a chunk file
type ChunkInfo struct {
	ChunkID   int
	Filename  string
	WordCount int
}

// LoadText reads a "word count" list, one entry per line.
// Words are lowercased; lines without a numeric count and entries that
// are not word tokens are skipped.
func LoadText(path string) (map[string]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dictionary %s: %w", path, err)
	}
	defer f.Close()
	return ReadText(f)
}

// ReadText is LoadText over an arbitrary reader.
func ReadText(r io.Reader) (map[string]int, error) {
	words := make(map[string]int)
	s := bufio.NewScanner(r)
	for s.Scan() {
		line := strings.TrimSpace(s.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.Fields(line)
		if len(parts) < 2 {
			continue
		}
		count, err := strconv.Atoi(parts[1])
		if err != nil {
			fv, ferr := strconv.ParseFloat(parts[1], 64)
			if ferr != nil {
				continue
			}
			count = int(fv)
		}
		word := strings.ToLower(parts[0])
		if !utils.IsWordToken(word) {
			continue
		}
		words[word] = count
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("failed to read dictionary: %w", err)
	}
	return words, nil
}

// LoadChunk memory-maps a binary chunk file and decodes it.
//
// Layout (little endian): int32 entry count, then per entry a uint16 word
// length, the word bytes and a uint16 rank. Scores are maxRank - rank so
// rank 1 scores highest.
func LoadChunk(path string) (map[string]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open chunk file %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat chunk file %s: %w", path, err)
	}
	if info.Size() < 4 {
		return nil, fmt.Errorf("chunk file %s is too small (%d bytes)", path, info.Size())
	}

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to map chunk file %s: %w", path, err)
	}
	defer func() {
		if err := m.Unmap(); err != nil {
			log.Warnf("Failed to unmap %s: %v", path, err)
		}
	}()

	words, err := decodeChunk(m)
	if err != nil {
		return nil, fmt.Errorf("chunk %s: %w", path, err)
	}
	log.Debugf("Chunk %s loaded: %d words", filepath.Base(path), len(words))
	return words, nil
}

// minEntrySize is the smallest encoded entry: an empty word and its rank.
const minEntrySize = 4

func decodeChunk(data []byte) (map[string]int, error) {
	if len(data) < 4 {
		return nil, fmt.Errorf("failed to read chunk header: %w", io.ErrUnexpectedEOF)
	}
	total := int32(binary.LittleEndian.Uint32(data))
	if total < 0 {
		return nil, fmt.Errorf("invalid word count %d", total)
	}
	if total > maxChunkWords {
		return nil, fmt.Errorf("suspicious word count %d (max %d)", total, maxChunkWords)
	}
	if int(total) > (len(data)-4)/minEntrySize {
		return nil, fmt.Errorf("word count %d does not fit in %d bytes", total, len(data))
	}

	r := bytes.NewReader(data[4:])
	words := make(map[string]int, total)
	for count := 0; count < int(total); count++ {
		var wordLen uint16
		if err := binary.Read(r, binary.LittleEndian, &wordLen); err != nil {
			return nil, fmt.Errorf("entry %d of %d: failed to read word length: %w", count+1, total, err)
		}
		wordBytes := make([]byte, wordLen)
		if _, err := io.ReadFull(r, wordBytes); err != nil {
			return nil, fmt.Errorf("entry %d of %d: failed to read word: %w", count+1, total, err)
		}
		var rank uint16
		if err := binary.Read(r, binary.LittleEndian, &rank); err != nil {
			return nil, fmt.Errorf("entry %d of %d: failed to read rank: %w", count+1, total, err)
		}
		words[string(wordBytes)] = maxRank - int(rank)
	}
	return words, nil
}

// WriteChunk writes words in the chunk layout read by LoadChunk.
func WriteChunk(path string, words []RankedWord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create chunk file %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := binary.Write(w, binary.LittleEndian, int32(len(words))); err != nil {
		return err
	}
	for _, rw := range words {
		if len(rw.Word) > 0xFFFF {
			return fmt.Errorf("word too long for chunk format: %d bytes", len(rw.Word))
		}
		if err := binary.Write(w, binary.LittleEndian, uint16(len(rw.Word))); err != nil {
			return err
		}
		if _, err := w.WriteString(rw.Word); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, rw.Rank); err != nil {
			return err
		}
	}
	return w.Flush()
}

// GetAvailableChunks scans dir for dict_NNNN.bin files, sorted by ID.
func GetAvailableChunks(dir string) ([]ChunkInfo, error) {
	files, err := filepath.Glob(filepath.Join(dir, "dict_*.bin"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan for chunk files: %w", err)
	}

	var chunks []ChunkInfo
	for _, file := range files {
		idStr := strings.TrimSuffix(strings.TrimPrefix(filepath.Base(file), "dict_"), ".bin")
		chunkID, err := strconv.Atoi(idStr)
		if err != nil {
			continue
		}
		wordCount, err := chunkWordCount(file)
		if err != nil {
			log.Warnf("Failed to get word count for chunk %s: %v", file, err)
		}
		chunks = append(chunks, ChunkInfo{ChunkID: chunkID, Filename: file, WordCount: wordCount})
	}

	sort.Slice(chunks, func(i, j int) bool {
		return chunks[i].ChunkID < chunks[j].ChunkID
	})
	return chunks, nil
}

// chunkWordCount reads the word count from a chunk file's header
func chunkWordCount(filename string) (int, error) {
	file, err := os.Open(filename)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	var wordCount int32
	if err := binary.Read(file, binary.LittleEndian, &wordCount); err != nil {
		return 0, err
	}
	return int(wordCount), nil
}

// LoadDir merges every chunk file in dir, in ID order, followed by any
// *.txt lists. Loading stops once maxWords words are known (0 = no limit).
// Later sources never lower a word's frequency.
func LoadDir(dir string, maxWords int) (map[string]int, error) {
	chunks, err := GetAvailableChunks(dir)
	if err != nil {
		return nil, err
	}
	texts, err := filepath.Glob(filepath.Join(dir, "*.txt"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan for text dictionaries: %w", err)
	}
	sort.Strings(texts)

	if len(chunks) == 0 && len(texts) == 0 {
		return nil, fmt.Errorf("no dictionary files found in %s", dir)
	}

	words := make(map[string]int)
	full := func() bool { return maxWords > 0 && len(words) >= maxWords }

	merge := func(src map[string]int) {
		keys := make([]string, 0, len(src))
		for w := range src {
			keys = append(keys, w)
		}
		// highest frequency first so a word cap keeps the common words
		sort.Slice(keys, func(i, j int) bool {
			if src[keys[i]] != src[keys[j]] {
				return src[keys[i]] > src[keys[j]]
			}
			return keys[i] < keys[j]
		})
		for _, w := range keys {
			if old, ok := words[w]; ok {
				words[w] = max(old, src[w])
				continue
			}
			if full() {
				return
			}
			words[w] = src[w]
		}
	}

	for _, c := range chunks {
		if full() {
			break
		}
		cw, err := LoadChunk(c.Filename)
		if err != nil {
			return nil, err
		}
		merge(cw)
	}
	for _, t := range texts {
		if full() {
			break
		}
		tw, err := LoadText(t)
		if err != nil {
			return nil, err
		}
		merge(tw)
	}

	log.Debugf("Loaded %d words from %s", len(words), dir)
	return words, nil
}

// Load picks the loader for path: directories go through LoadDir, files
// through the loader matching their detected format.
func Load(path string, maxWords int) (map[string]int, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat dictionary %s: %w", path, err)
	}
	if info.IsDir() {
		return LoadDir(path, maxWords)
	}

	format, err := DetectFileFormat(path)
	if err != nil {
		return nil, err
	}
	switch format {
	case FormatChunk, FormatTrie:
		return LoadChunk(path)
	case FormatText:
		return LoadText(path)
	}
	return nil, fmt.Errorf("unsupported dictionary format for %s", path)
}

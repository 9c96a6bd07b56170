package dictionary

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestReadText(t *testing.T) {
	in := `# comment line
the 2000
Spelling 150

lonely
their 950.7
bad x
1999 12
$$$ 4
their 990
`
	words, err := ReadText(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadText: %v", err)
	}

	expected := map[string]int{
		"the":      2000,
		"spelling": 150,
		"their":    990,
	}
	if len(words) != len(expected) {
		t.Fatalf("expected %d words, got %d: %v", len(expected), len(words), words)
	}
	for w, f := range expected {
		if words[w] != f {
			t.Errorf("word %q: expected %d, got %d", w, f, words[w])
		}
	}
}

func TestChunkRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dict_0001.bin")
	in := []RankedWord{
		{Word: "the", Rank: 1},
		{Word: "spelling", Rank: 2},
		{Word: "checker", Rank: 300},
	}
	if err := WriteChunk(path, in); err != nil {
		t.Fatalf("WriteChunk: %v", err)
	}

	words, err := LoadChunk(path)
	if err != nil {
		t.Fatalf("LoadChunk: %v", err)
	}
	if len(words) != 3 {
		t.Fatalf("expected 3 words, got %d", len(words))
	}
	if words["the"] != 65535 || words["spelling"] != 65534 || words["checker"] != 65236 {
		t.Errorf("unexpected scores: %v", words)
	}
	if words["the"] <= words["checker"] {
		t.Errorf("rank 1 should score above rank 300")
	}
}

func TestLoadChunkTooSmall(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dict_0001.bin")
	writeFile(t, path, "ab")
	if _, err := LoadChunk(path); err == nil {
		t.Fatal("expected error for truncated chunk")
	}
}

// chunkBytes encodes a header count followed by the given entries.
func chunkBytes(count int32, words ...string) []byte {
	buf := binary.LittleEndian.AppendUint32(nil, uint32(count))
	for i, w := range words {
		buf = binary.LittleEndian.AppendUint16(buf, uint16(len(w)))
		buf = append(buf, w...)
		buf = binary.LittleEndian.AppendUint16(buf, uint16(i+1))
	}
	return buf
}

func TestLoadChunkCorruptHeader(t *testing.T) {
	testCases := []struct {
		name string
		data []byte
	}{
		{"huge count, no entries", chunkBytes(0x7fffffff)},
		{"count above cap", append(chunkBytes(maxChunkWords+1), make([]byte, 4*(maxChunkWords+1))...)},
		{"count larger than file", chunkBytes(5, "hi")},
		{"entries missing", chunkBytes(2, "hello")},
		{"word cut short", chunkBytes(1, "spelling")[:9]},
		{"negative count", chunkBytes(-1)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "dict_0001.bin")
			if err := os.WriteFile(path, tc.data, 0644); err != nil {
				t.Fatal(err)
			}
			words, err := LoadChunk(path)
			if err == nil {
				t.Fatalf("expected error, got %d words", len(words))
			}
			if _, err := LoadDir(filepath.Dir(path), 0); err == nil {
				t.Errorf("LoadDir should fail on a corrupt chunk")
			}
		})
	}
}

func TestLoadChunkExactCount(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dict_0001.bin")
	if err := os.WriteFile(path, chunkBytes(2, "hi", "go"), 0644); err != nil {
		t.Fatal(err)
	}
	words, err := LoadChunk(path)
	if err != nil {
		t.Fatalf("LoadChunk: %v", err)
	}
	if words["hi"] != 65535 || words["go"] != 65534 {
		t.Errorf("unexpected scores: %v", words)
	}
}

func TestGetAvailableChunksSorted(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"dict_0003.bin", "dict_0001.bin", "dict_0002.bin"} {
		if err := WriteChunk(filepath.Join(dir, name), []RankedWord{{Word: name, Rank: 1}}); err != nil {
			t.Fatal(err)
		}
	}
	writeFile(t, filepath.Join(dir, "dict_xx.bin"), "0000")

	chunks, err := GetAvailableChunks(dir)
	if err != nil {
		t.Fatalf("GetAvailableChunks: %v", err)
	}
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		if c.ChunkID != i+1 {
			t.Errorf("chunk %d has id %d", i, c.ChunkID)
		}
		if c.WordCount != 1 {
			t.Errorf("chunk %d: expected 1 word, got %d", c.ChunkID, c.WordCount)
		}
	}
}

func TestLoadDirMergesAndCaps(t *testing.T) {
	dir := t.TempDir()
	if err := WriteChunk(filepath.Join(dir, "dict_0001.bin"), []RankedWord{
		{Word: "the", Rank: 1},
		{Word: "and", Rank: 2},
	}); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(dir, "extra.txt"), "spelling 10\nchecker 5\nthe 3\n")

	words, err := LoadDir(dir, 0)
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	if len(words) != 4 {
		t.Fatalf("expected 4 words, got %d: %v", len(words), words)
	}
	if words["the"] != 65535 {
		t.Errorf("text entry should not lower chunk frequency, got %d", words["the"])
	}

	capped, err := LoadDir(dir, 3)
	if err != nil {
		t.Fatalf("LoadDir capped: %v", err)
	}
	if len(capped) != 3 {
		t.Fatalf("expected 3 words with cap, got %d: %v", len(capped), capped)
	}
	if _, ok := capped["checker"]; ok {
		t.Errorf("least frequent word should be dropped by the cap")
	}
}

func TestLoadDirEmpty(t *testing.T) {
	if _, err := LoadDir(t.TempDir(), 0); err == nil {
		t.Fatal("expected error for empty directory")
	}
}

func TestLoadDetectsFormat(t *testing.T) {
	dir := t.TempDir()
	txt := filepath.Join(dir, "words.txt")
	writeFile(t, txt, "hello 10\n")
	bin := filepath.Join(dir, "dict_0001.bin")
	if err := WriteChunk(bin, []RankedWord{{Word: "world", Rank: 1}}); err != nil {
		t.Fatal(err)
	}

	testCases := []struct {
		path string
		word string
	}{
		{txt, "hello"},
		{bin, "world"},
		{dir, "hello"},
	}
	for _, tc := range testCases {
		t.Run(filepath.Base(tc.path), func(t *testing.T) {
			words, err := Load(tc.path, 0)
			if err != nil {
				t.Fatalf("Load(%s): %v", tc.path, err)
			}
			if _, ok := words[tc.word]; !ok {
				t.Errorf("expected %q in %v", tc.word, words)
			}
		})
	}
}

func TestDetectFileFormat(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "words.txt")
	writeFile(t, good, "hello 10\n")
	bad := filepath.Join(dir, "notes.txt")
	writeFile(t, bad, "just some prose\n")
	other := filepath.Join(dir, "words.csv")
	writeFile(t, other, "hello,10\n")

	if f, err := DetectFileFormat(good); err != nil || f != FormatText {
		t.Errorf("expected FormatText, got %v (%v)", f, err)
	}
	if _, err := DetectFileFormat(bad); err == nil {
		t.Errorf("expected error for text without counts")
	}
	if _, err := DetectFileFormat(other); err == nil {
		t.Errorf("expected error for unknown extension")
	}
}

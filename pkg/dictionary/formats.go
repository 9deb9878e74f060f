package dictionary

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// FileFormat represents different dictionary file formats
type FileFormat int

const (
	FormatUnknown  FileFormat = iota
	FormatText                // Plain text, one word per line
	FormatSnapshot            // msgpack encoded word list
)

// SnapshotExt is the file extension of compiled dictionary snapshots.
const SnapshotExt = ".wfs"

const snapshotMagic = "wordfind/1"

// FormatInfo contains metadata about a dictionary file format
type FormatInfo struct {
	Format      FileFormat
	Description string
	Extensions  []string
	MinSize     int64 // Minimum expected file size in bytes
}

var supportedFormats = map[FileFormat]FormatInfo{
	FormatText: {
		Format:      FormatText,
		Description: "Plain Text Dictionary",
		Extensions:  []string{".txt", ""},
		MinSize:     1,
	},
	FormatSnapshot: {
		Format:      FormatSnapshot,
		Description: "Dictionary Snapshot",
		Extensions:  []string{SnapshotExt},
		MinSize:     int64(len(snapshotMagic)),
	},
}

// snapshot is the on-disk layout of a compiled dictionary.
type snapshot struct {
	Magic  string   `msgpack:"m"`
	MinLen int      `msgpack:"n"`
	Words  []string `msgpack:"w"`
}

// DetectFormat guesses the format of a dictionary file from its extension.
// Anything that is not a snapshot is read as plain text, since word lists
// such as /usr/share/dict/words often carry no extension at all.
func DetectFormat(path string) FileFormat {
	if strings.EqualFold(filepath.Ext(path), SnapshotExt) {
		return FormatSnapshot
	}
	return FormatText
}

// GetFormatInfo returns information about a specific format
func GetFormatInfo(format FileFormat) (FormatInfo, bool) {
	info, exists := supportedFormats[format]
	return info, exists
}

// ValidateFileFormat checks that a file is large enough for its format and,
// for snapshots, that it decodes.
func ValidateFileFormat(filename string, expectedFormat FileFormat) error {
	fileInfo, err := os.Stat(filename)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}

	formatInfo, exists := supportedFormats[expectedFormat]
	if !exists {
		return fmt.Errorf("unknown format: %v", expectedFormat)
	}

	if fileInfo.Size() < formatInfo.MinSize {
		return fmt.Errorf("file %s is too small (%d bytes) for format %s (minimum: %d bytes)",
			filename, fileInfo.Size(), formatInfo.Description, formatInfo.MinSize)
	}

	if expectedFormat == FormatSnapshot {
		file, err := os.Open(filename)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
		}
		defer file.Close()
		if _, err := readSnapshot(file); err != nil {
			return err
		}
	}

	log.Debugf("Dictionary file %s validated as %s", filename, formatInfo.Description)
	return nil
}

// SourceFor returns the Source matching the detected format of path.
// minLen is the shortest word the caller's Loader keeps.
func SourceFor(path string, minLen int, showProgress bool) Source {
	switch DetectFormat(path) {
	case FormatSnapshot:
		return SnapshotSource{Path: path, MinLen: minLen}
	default:
		return FileSource{Path: path, ShowProgress: showProgress}
	}
}

// SnapshotSource reads a dictionary written by WriteSnapshot.
// MinLen is the shortest word the reading Loader keeps; zero skips the check.
type SnapshotSource struct {
	Path   string
	MinLen int
}

// Name returns the snapshot path.
func (ss SnapshotSource) Name() string {
	return ss.Path
}

// ReadLines yields each stored word as its own line.
func (ss SnapshotSource) ReadLines(yield func(line string)) error {
	file, err := os.Open(ss.Path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	defer file.Close()

	snap, err := readSnapshot(file)
	if err != nil {
		return err
	}
	ss.missingShortWords(snap.MinLen)
	for _, word := range snap.Words {
		yield(word)
	}
	return nil
}

// missingShortWords warns when the snapshot was compiled with a higher minimum
// length than the reader wants, since those shorter words were already dropped.
func (ss SnapshotSource) missingShortWords(snapMinLen int) bool {
	if ss.MinLen <= 0 || snapMinLen <= ss.MinLen {
		return false
	}
	log.Warnf("Snapshot %s was compiled with min length %d, words of length %d to %d are missing",
		ss.Path, snapMinLen, ss.MinLen, snapMinLen-1)
	return true
}

// WriteSnapshot encodes the words of idx so they can be reloaded without
// normalizing the original text file again.
func WriteSnapshot(w io.Writer, idx *Index) error {
	snap := snapshot{
		Magic:  snapshotMagic,
		MinLen: idx.MinLength(),
		Words:  idx.Words(),
	}
	if err := msgpack.NewEncoder(w).Encode(&snap); err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return nil
}

// SaveSnapshot writes idx to a snapshot file at path.
func SaveSnapshot(path string, idx *Index) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create snapshot %s: %w", path, err)
	}
	if err := WriteSnapshot(file, idx); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func readSnapshot(r io.Reader) (*snapshot, error) {
	var snap snapshot
	if err := msgpack.NewDecoder(r).Decode(&snap); err != nil {
		return nil, fmt.Errorf("%w: decode snapshot: %w", ErrSourceUnavailable, err)
	}
	if snap.Magic != snapshotMagic {
		return nil, fmt.Errorf("%w: not a dictionary snapshot (magic %q)", ErrSourceUnavailable, snap.Magic)
	}
	log.Debugf("Snapshot decoded: %d words, min length %d", len(snap.Words), snap.MinLen)
	return &snap, nil
}

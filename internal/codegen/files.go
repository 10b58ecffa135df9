package codegen

import (
	"bufio"
	"fmt"
	"hash/crc32"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// hashPrefix opens the first line of every overwritable generated file. The
// line carries a checksum of the content below it, so regeneration can skip
// files whose content would not change (and leave editor buffers, build
// caches, and mtimes alone).
const hashPrefix = "// hash:"

// WriteStatus describes what happened to one generated file.
type WriteStatus string

const (
	StatusCreated     WriteStatus = "created"
	StatusOverwritten WriteStatus = "overwritten"
	StatusSkipped     WriteStatus = "skipped (no change)"
	StatusKept        WriteStatus = "already exists"
)

// FileResult pairs a generated file's name with its write outcome.
type FileResult struct {
	Name   string
	Status WriteStatus
}

// writeOnDiff writes content to path with an embedded content hash,
// rewriting an existing file only when the hash differs.
func writeOnDiff(path, content, lineBreak string) (WriteStatus, error) {
	sum := crc32.ChecksumIEEE([]byte(content))
	withHash := hashPrefix + strconv.FormatUint(uint64(sum), 10) + lineBreak + content

	if prev, ok := readEmbeddedHash(path); ok && prev == sum {
		return StatusSkipped, nil
	}
	existed := fileExists(path)
	if err := os.WriteFile(path, []byte(withHash), 0644); err != nil {
		return "", fmt.Errorf("codegen: write %s: %w", path, err)
	}
	if existed {
		return StatusOverwritten, nil
	}
	return StatusCreated, nil
}

// writeOnce writes content to path only when the file does not exist yet.
// Used for the user-editable client stub.
func writeOnce(path, content string) (WriteStatus, error) {
	if fileExists(path) {
		return StatusKept, nil
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("codegen: write %s: %w", path, err)
	}
	return StatusCreated, nil
}

// readEmbeddedHash reads the checksum from a file's first line. Absence of
// the file, the prefix, or a parsable number all read as "no hash".
func readEmbeddedHash(path string) (uint32, bool) {
	f, err := os.Open(path)
	if err != nil {
		return 0, false
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		return 0, false
	}
	line := strings.TrimRight(scanner.Text(), "\r")
	if !strings.HasPrefix(line, hashPrefix) {
		return 0, false
	}
	sum, err := strconv.ParseUint(strings.TrimPrefix(line, hashPrefix), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint32(sum), true
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func ensureDir(dir string) error {
	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return fmt.Errorf("codegen: output path %s is not a directory", dir)
		}
		return nil
	}
	if !os.IsNotExist(err) {
		return err
	}
	if err := os.Mkdir(dir, 0755); err != nil {
		return fmt.Errorf("codegen: create output directory %s (does the parent exist?): %w", dir, err)
	}
	return nil
}

func join(dir, name string) string { return filepath.Join(dir, name) }

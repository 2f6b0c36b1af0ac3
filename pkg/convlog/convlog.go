// Package convlog persists, per directory, which export files were
// already converted and at what modification time, so unchanged files
// are skipped on the next run.
package convlog

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// FileName is the well-known log file kept inside each directory.
const FileName = "conversion_log.json"

// Log maps a path relative to its directory to the modification time
// (epoch seconds, float) at which the file was last converted.
type Log map[string]float64

// Path returns the log file location for a directory.
func Path(dir string) string {
	return filepath.Join(dir, FileName)
}

// Load reads a directory's log. A missing file yields an empty log. A
// malformed file also yields an empty log: reconverting a directory is
// always safe, aborting the run over one corrupt log is not.
func Load(dir string) Log {
	b, err := os.ReadFile(Path(dir))
	if err != nil {
		return Log{}
	}
	var l Log
	if err := json.Unmarshal(b, &l); err != nil || l == nil {
		return Log{}
	}
	return l
}

// Save overwrites the directory's log file, pretty-printed so diffs
// stay readable.
func Save(dir string, l Log) error {
	b, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(Path(dir), b, 0o644)
}

// ModTime returns a file's modification time as epoch seconds. The
// fractional part depends on the filesystem's timestamp granularity,
// which differs across hosts; that makes false changed/unchanged
// verdicts possible when files move between systems, and is accepted.
func ModTime(path string) (float64, error) {
	st, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return float64(st.ModTime().UnixNano()) / 1e9, nil
}

// ShouldSkip reports whether relKey is recorded with exactly the given
// modification time. Exact float equality, no tolerance window:
// timestamp jitter from copying files across systems causes a
// reconversion rather than a wrong skip.
func (l Log) ShouldSkip(relKey string, modTime float64) bool {
	stored, ok := l[relKey]
	return ok && stored == modTime
}

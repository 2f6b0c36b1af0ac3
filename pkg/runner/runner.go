// Package runner walks a directory tree and converts every cycler
// export it finds, keeping a per-directory conversion log so unchanged
// files are skipped.
package runner

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/battkit/bdfconvert/pkg/bdf"
	"github.com/battkit/bdfconvert/pkg/convlog"
	"github.com/battkit/bdfconvert/pkg/cycler"
	"github.com/battkit/bdfconvert/pkg/io/parquetio"
)

// OutputSuffix replaces the source extension on converted files.
const OutputSuffix = ".bdf.parquet"

// Runner converts every matching file under Root.
type Runner struct {
	// Root is the directory tree to walk.
	Root string
	// Ext filters candidate files; ".txt" when empty.
	Ext string
	// Zone is the IANA zone for raw timestamps; bdf.DefaultZone when
	// empty.
	Zone string
	// ChunkSize, when positive, switches to the batched large-file
	// loader with this many rows per batch.
	ChunkSize int
	// Out receives the per-file transcript; os.Stdout when nil.
	Out io.Writer
}

// FileResult is the outcome of one file's pipeline run.
type FileResult struct {
	Path    string
	RelKey  string
	ModTime float64
	Err     error
}

// Summary counts per-file outcomes across the whole run.
type Summary struct {
	Converted int
	Skipped   int
	Failed    int
}

// Run walks the tree rooted at Root, one directory at a time. Each
// directory loads its log, attempts every non-skipped candidate file,
// and persists the updated log once after the last file, so failed
// files stay unrecorded and are retried next run. Per-file errors go
// to the transcript and never abort the batch.
func (r *Runner) Run() (Summary, error) {
	var sum Summary
	err := filepath.WalkDir(r.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == r.Root {
				return err
			}
			// one unreadable subtree must not abort the batch
			fmt.Fprintf(r.out(), "Failed to process %s: %v\n", path, err)
			sum.Failed++
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		r.processDir(path, &sum)
		return nil
	})
	return sum, err
}

func (r *Runner) processDir(dir string, sum *Summary) {
	out := r.out()
	entries, err := os.ReadDir(dir)
	if err != nil {
		// the walker re-reads this directory and reports the error
		return
	}

	log := convlog.Load(dir)
	updated := convlog.Log{}
	for k, v := range log {
		updated[k] = v
	}

	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), r.ext()) {
			continue
		}
		res := r.processFile(dir, e.Name(), log)
		switch {
		case res == nil:
			sum.Skipped++
		case res.Err != nil:
			fmt.Fprintf(out, "Failed to process %s: %v\n", res.Path, res.Err)
			sum.Failed++
		default:
			updated[res.RelKey] = res.ModTime
			sum.Converted++
		}
	}

	if err := convlog.Save(dir, updated); err != nil {
		fmt.Fprintf(out, "Failed to process %s: %v\n", convlog.Path(dir), err)
		sum.Failed++
	}
}

// processFile applies the skip decision and, if the file is new or
// changed, runs the pipeline. A nil result means the file was skipped.
func (r *Runner) processFile(dir, name string, log convlog.Log) *FileResult {
	out := r.out()
	path := filepath.Join(dir, name)
	res := &FileResult{Path: path, RelKey: name}

	mt, err := convlog.ModTime(path)
	if err != nil {
		res.Err = err
		return res
	}
	res.ModTime = mt

	if log.ShouldSkip(name, mt) {
		fmt.Fprintf(out, "Skipping (unchanged): %s\n", path)
		return nil
	}

	fmt.Fprintf(out, "Processing: %s\n", path)
	res.Err = r.Convert(path)
	return res
}

// Convert runs the full pipeline for one file: locate the header, load
// the table, normalize to BDF, write the sibling Parquet file.
func (r *Runner) Convert(path string) error {
	hdr, err := cycler.LocateHeader(path)
	if err != nil {
		return err
	}

	var raw *bdf.Frame
	if r.ChunkSize > 0 {
		raw, err = cycler.ReadTableChunked(path, hdr.Columns, hdr.Line+1,
			cycler.ChunkOptions{ChunkSize: r.ChunkSize})
	} else {
		raw, err = cycler.ReadTable(path, hdr.Columns, hdr.Line+1)
	}
	if err != nil {
		return err
	}

	norm, err := bdf.Normalize(raw, r.Zone)
	if err != nil {
		return err
	}
	return parquetio.WriteAll(OutputPath(path), norm)
}

// OutputPath derives the destination from the source path by swapping
// the last extension for the BDF suffix.
func OutputPath(path string) string {
	ext := filepath.Ext(path)
	return path[:len(path)-len(ext)] + OutputSuffix
}

func (r *Runner) ext() string {
	if r.Ext == "" {
		return ".txt"
	}
	return r.Ext
}

func (r *Runner) out() io.Writer {
	if r.Out == nil {
		return os.Stdout
	}
	return r.Out
}

// Command bdfconvert converts battery-cycler export files under a
// directory tree into BDF Parquet files, skipping files that have not
// changed since the last run.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/battkit/bdfconvert/pkg/bdf"
	"github.com/battkit/bdfconvert/pkg/io/parquetio"
	"github.com/battkit/bdfconvert/pkg/plot"
	"github.com/battkit/bdfconvert/pkg/profile"
	"github.com/battkit/bdfconvert/pkg/runner"
)

var version = "0.1.0-dev"

func main() {
	showVersion := flag.Bool("version", false, "Print version and exit")
	configPath := flag.String("config", "", "Path to config file (TOML or YAML)")
	root := flag.String("root", "", "Root directory to convert (overrides config)")
	ext := flag.String("ext", "", "Source file extension (default .txt)")
	zone := flag.String("timezone", "", "IANA zone of raw timestamps (default CET)")
	chunkSize := flag.Int("chunk-size", 0, "Enable batched reading with this many rows per batch. 0 disables batching.")
	plotPath := flag.String("plot", "", "Render a .bdf.parquet file as ascii charts and exit")
	profilePath := flag.String("profile", "", "Print column statistics of a .bdf.parquet file and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println("bdfconvert", version)
		return
	}

	if *plotPath != "" || *profilePath != "" {
		code := 0
		if *profilePath != "" {
			if f, err := readBDF(*profilePath); err != nil {
				fmt.Fprintln(os.Stderr, err)
				code = 1
			} else {
				profile.Render(os.Stdout, profile.Collect(f))
			}
		}
		if *plotPath != "" {
			f, err := readBDF(*plotPath)
			if err == nil {
				err = plot.Render(os.Stdout, f, plot.Options{})
			}
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				code = 1
			}
		}
		os.Exit(code)
	}

	var cfg Config
	if *configPath != "" {
		var err error
		cfg, err = LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	if *root != "" {
		cfg.Root = *root
	}
	if *ext != "" {
		cfg.Ext = *ext
	}
	if *zone != "" {
		cfg.Timezone = *zone
	}
	if *chunkSize > 0 {
		cfg.ChunkSize = *chunkSize
	}
	if cfg.Root == "" {
		fmt.Fprintln(os.Stderr, "no root directory; try -root <dir> or -config <file>")
		os.Exit(2)
	}

	r := &runner.Runner{
		Root:      cfg.Root,
		Ext:       cfg.Ext,
		Zone:      cfg.Timezone,
		ChunkSize: cfg.ChunkSize,
		Out:       os.Stdout,
	}
	sum, err := r.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Printf("Done: %d converted, %d skipped, %d failed\n",
		sum.Converted, sum.Skipped, sum.Failed)
	if sum.Failed > 0 {
		os.Exit(1)
	}
}

// readBDF loads an already-converted file for the -plot and -profile
// inspection modes.
func readBDF(path string) (*bdf.Frame, error) {
	rd, err := parquetio.OpenReader(path)
	if err != nil {
		return nil, err
	}
	defer rd.Close()
	return rd.ReadAll()
}

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/reskit-dev/reskit/res"
)

var (
	// Global flags
	verbose  bool
	quiet    bool
	jsonOut  bool
	encoding string
)

var rootCmd = &cobra.Command{
	Use:   "resctl",
	Short: "Inspect pointer-linked game resource archives",
	Long: `resctl is a tool for inspecting binary resource archives whose internal
structure is stored as absolute byte offsets: model archives (FRES) and
shader binaries (BNSH). It reconstructs the full object graph from the
archive and reports what it finds.`,
	Version: "0.1.0",
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().
		StringVar(&encoding, "encoding", "", "Text encoding for names (windows-1252, shift-jis, utf-8)")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openArchive opens path with the encoding selected by the global flag.
func openArchive(path string) (*res.File, error) {
	var opts []res.Option
	if encoding != "" {
		enc, err := res.EncodingByName(encoding)
		if err != nil {
			return nil, err
		}
		opts = append(opts, res.WithEncoding(enc))
	}
	return res.Open(path, opts...)
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...interface{}) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

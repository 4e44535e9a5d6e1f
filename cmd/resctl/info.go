package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reskit-dev/reskit/res"
)

func init() {
	rootCmd.AddCommand(newInfoCmd())
}

func newInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <archive>",
		Short: "Validate an archive and report basic metadata",
		Long: `The info command reconstructs the object graph of a resource archive and
displays basic metadata: archive kind, version, name and top-level counts.

Example:
  resctl info model.bfres
  resctl info shaders.bnsh --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(args)
		},
	}
	return cmd
}

// archiveInfo is the JSON shape emitted by --json.
type archiveInfo struct {
	File          string `json:"file"`
	Kind          string `json:"kind"`
	Version       uint32 `json:"version"`
	Name          string `json:"name"`
	Size          int64  `json:"size"`
	Models        int    `json:"models,omitempty"`
	ExternalFiles int    `json:"externalFiles,omitempty"`
	Programs      int    `json:"programs,omitempty"`
}

func runInfo(args []string) error {
	path := args[0]

	printVerbose("Opening archive: %s\n", path)

	f, err := openArchive(path)
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}
	defer f.Close()

	info := archiveInfo{File: path, Size: f.Size()}
	switch {
	case f.Archive != nil:
		info.Kind = res.ArchiveSignature
		info.Version = f.Archive.Version
		info.Name = f.Archive.Name
		info.Models = f.Archive.Models.Len()
		info.ExternalFiles = f.Archive.ExternalFiles.Len()
	case f.ShaderArchive != nil:
		info.Kind = res.ShaderArchiveSignature
		info.Version = f.ShaderArchive.Version
		info.Name = f.ShaderArchive.Name
		info.Programs = f.ShaderArchive.Programs.Len()
	}

	if jsonOut {
		return printJSON(info)
	}

	printInfo("\nArchive Information:\n")
	printInfo("  File: %s\n", info.File)
	printInfo("  Kind: %s\n", info.Kind)
	printInfo("  Version: 0x%X\n", info.Version)
	printInfo("  Name: %s\n", info.Name)
	printInfo("  Size: %d bytes\n", info.Size)
	if f.Archive != nil {
		printInfo("  Models: %d\n", info.Models)
		printInfo("  External files: %d\n", info.ExternalFiles)
	}
	if f.ShaderArchive != nil {
		printInfo("  Programs: %d\n", info.Programs)
	}
	return nil
}

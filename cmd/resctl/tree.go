package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reskit-dev/reskit/res"
)

var treeBones bool

func init() {
	cmd := newTreeCmd()
	cmd.Flags().BoolVar(&treeBones, "bones", false, "Show skeleton bones too")
	rootCmd.AddCommand(cmd)
}

func newTreeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tree <archive>",
		Short: "Display the materialized object graph",
		Long: `The tree command walks the reconstructed object graph and prints models
with their shapes, materials and skeletons, or shader programs with their
uniform blocks.

Example:
  resctl tree model.bfres
  resctl tree model.bfres --bones
  resctl tree shaders.bnsh`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTree(args)
		},
	}
	return cmd
}

func runTree(args []string) error {
	path := args[0]

	printVerbose("Opening archive: %s\n", path)

	f, err := openArchive(path)
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}
	defer f.Close()

	if f.Archive != nil {
		printModelTree(f.Archive)
	}
	if f.ShaderArchive != nil {
		printShaderTree(f.ShaderArchive)
	}
	return nil
}

func printModelTree(a *res.Archive) {
	printInfo("%s (FRES v0x%X)\n", a.Name, a.Version)
	for i := 0; i < a.Models.Len(); i++ {
		name, m := a.Models.At(i)
		printInfo("└─ model %s\n", name)
		if m.Skeleton != nil {
			printInfo("   ├─ skeleton: %d bones\n", len(m.Skeleton.Bones))
			if treeBones {
				for _, b := range m.Skeleton.Bones {
					if b.ParentIndex == res.BoneNoParent {
						printInfo("   │    %s (root)\n", b.Name)
					} else {
						printInfo("   │    %s (parent %d)\n", b.Name, b.ParentIndex)
					}
				}
			}
		}
		for j := 0; j < m.Shapes.Len(); j++ {
			sname, sh := m.Shapes.At(j)
			printInfo("   ├─ shape %s: %d meshes (material %d)\n",
				sname, len(sh.Meshes), sh.MaterialIndex)
		}
		for j := 0; j < m.Materials.Len(); j++ {
			mname, mat := m.Materials.At(j)
			printInfo("   └─ material %s: %d textures, %d samplers\n",
				mname, len(mat.TextureRefs), len(mat.SamplerNames))
		}
	}
	for i := 0; i < a.ExternalFiles.Len(); i++ {
		name, ef := a.ExternalFiles.At(i)
		printInfo("└─ external file %s (%d bytes)\n", name, ef.Size)
	}
}

func printShaderTree(sa *res.ShaderArchive) {
	printInfo("%s (BNSH v0x%X)\n", sa.Name, sa.Version)
	for i := 0; i < sa.Programs.Len(); i++ {
		name, p := sa.Programs.At(i)
		printInfo("└─ program %s (stages 0x%X)\n", name, p.StageMask)
		for _, attr := range p.AttribNames {
			if attr != nil {
				printInfo("   ├─ attribute %s\n", *attr)
			}
		}
		for _, b := range p.Blocks {
			printInfo("   └─ block %s: %d uniforms, %d bytes\n",
				b.Name, len(b.Uniforms), b.Size)
		}
	}
}

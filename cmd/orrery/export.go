package main

import (
	"fmt"

	"fortio.org/log"
	"github.com/spf13/cobra"
	"github.com/taigrr/orrery/pkg/models"
	"github.com/taigrr/orrery/pkg/scene"
)

func newExportCmd(opts *options) *cobra.Command {
	var out string
	var rings bool
	cmd := &cobra.Command{
		Use:   "export <body>",
		Short: "Write a body's mesh to a GLB file",
		Long:  "Write the unit-radius mesh of the named body to a binary glTF file.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sys, err := opts.loadSystem()
			if err != nil {
				return err
			}
			if out == "" {
				out = args[0] + ".glb"
			}
			return exportBody(sys, args[0], out, rings)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default: <body>.glb)")
	cmd.Flags().BoolVar(&rings, "rings", false, "Export the body's ring mesh instead")
	return cmd
}

func exportBody(sys *scene.System, name, path string, rings bool) error {
	i := sys.Find(name)
	if i < 0 {
		return fmt.Errorf("unknown body %q", name)
	}
	b := &sys.Bodies[i]
	mesh := b.Mesh
	if rings {
		if b.Rings == nil {
			return fmt.Errorf("body %s has no rings", name)
		}
		mesh = b.Rings.Mesh
	}
	if err := models.ExportGLB(mesh, path); err != nil {
		return fmt.Errorf("export %s: %w", name, err)
	}
	log.Infof("wrote %s: %d vertices, %d triangles", path, mesh.VertexCount(), mesh.TriangleCount())
	return nil
}

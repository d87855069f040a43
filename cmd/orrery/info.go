package main

import (
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/taigrr/orrery/pkg/scene"
)

func newInfoCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Display scene information",
		Long:  "List every body in the scene with its orbit, shader, mesh detail and triangle count.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sys, err := opts.loadSystem()
			if err != nil {
				return err
			}
			return writeInfo(cmd.OutOrStdout(), sys)
		},
	}
}

// writeInfo prints a table of the bodies in sys followed by totals.
func writeInfo(w io.Writer, sys *scene.System) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tBODY\tPARENT\tRADIUS\tSHADER\tORBIT\tECC\tINCL\tPERIOD\tV(PERI)\tTRIS\tRINGS")
	for i, b := range sys.Bodies {
		parent := "-"
		if b.IsMoon() {
			parent = sys.Bodies[b.Parent].Name
		}
		orbit, period, velocity := "-", "-", "-"
		if b.Orbit.Radius > 0 {
			orbit = fmt.Sprintf("%.2f", b.Orbit.Radius)
			if p := b.Orbit.Period(); !math.IsInf(p, 1) {
				period = fmt.Sprintf("%.1fs", p)
			}
			velocity = fmt.Sprintf("%.2f", b.Orbit.VelocityAt(0))
		}
		rings := "-"
		tris := b.Mesh.TriangleCount()
		if b.Rings != nil {
			rings = fmt.Sprintf("%.1f-%.1f @%.0f°", b.Rings.Inner, b.Rings.Outer, b.Rings.Tilt*180/math.Pi)
			tris += b.Rings.Mesh.TriangleCount()
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%.2f\t%s\t%s\t%.2f\t%.1f°\t%s\t%s\t%d\t%s\n",
			i+1, b.Name, parent, b.Radius, b.Shader, orbit,
			b.Orbit.Eccentricity, b.Orbit.Inclination*180/math.Pi, period, velocity, tris, rings)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("write info: %w", err)
	}
	_, err := fmt.Fprintf(w, "\n%d bodies, %d triangles per frame\n", len(sys.Bodies), sys.TriangleCount())
	return err
}

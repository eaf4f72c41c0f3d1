package cmd

import (
	"fmt"
	"math"
	"os"

	"shape-transformer/internal/builder"
	"shape-transformer/internal/pairs"
	"shape-transformer/internal/render"
	"shape-transformer/internal/shape"
	"shape-transformer/internal/transform"
	"shape-transformer/pkg/geometry"

	"github.com/spf13/cobra"
)

const pngMargin = 40

func newRectCmd(opts *options) *cobra.Command {
	var (
		rect      []float64
		beforePNG string
		afterPNG  string
		scale     float64
	)

	cmd := &cobra.Command{
		Use:   "rect <pairs>",
		Short: "Transform a rectangle and print its labelled corners",
		Long: `Fit a transformation from pairs and apply it to a rectangle. Rotations
turn about the rectangle's centroid. With --png and --after the shape is
rendered before and after the transformation.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(rect) != 4 {
				return fmt.Errorf("--rect wants x,y,w,h, got %d value(s)", len(rect))
			}
			r := geometry.NewRect(rect[0], rect[1], rect[2], rect[3])
			if r.Empty() {
				return fmt.Errorf("--rect %v has no area", rect)
			}
			kind, err := builder.ParseKind(opts.kind)
			if err != nil {
				return err
			}
			ps, err := pairs.ParsePairs(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			before := shape.NewRectangle(r)
			t, err := fitPairs(out, kind, before.Mean(), ps)
			if err != nil {
				return err
			}
			after, err := before.Transform(t)
			if err != nil {
				return err
			}
			for _, c := range after.Corners() {
				fmt.Fprintf(out, "%s %s\n", c.Label, pairs.FormatPoint(c.Point))
			}

			// Both images share one frame so they line up.
			frame := before.Bounds().Union(after.Bounds())
			if beforePNG != "" {
				if err := writeShapePNG(beforePNG, before, frame, scale); err != nil {
					return err
				}
			}
			if afterPNG != "" {
				if err := writeShapePNG(afterPNG, after, frame, scale); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().Float64SliceVar(&rect, "rect", []float64{0, 0, 100, 100}, "rectangle as x,y,w,h")
	cmd.Flags().StringVar(&beforePNG, "png", "", "write the original rectangle to this PNG")
	cmd.Flags().StringVar(&afterPNG, "after", "", "write the transformed shape to this PNG")
	cmd.Flags().Float64Var(&scale, "scale", 1, "pixels per unit in the PNGs")
	return cmd
}

// writeShapePNG renders poly inside frame, shifted so frame's top-left sits
// at the margin.
func writeShapePNG(path string, poly shape.Polygon, frame geometry.Rect, scale float64) error {
	if scale <= 0 {
		scale = 1
	}
	shift := transform.Translation(pngMargin/scale-frame.X, pngMargin/scale-frame.Y)
	moved, err := poly.Transform(shift)
	if err != nil {
		return err
	}

	style := render.DefaultStyle()
	w := int(math.Ceil(frame.Width*scale)) + 2*pngMargin
	h := int(math.Ceil(frame.Height*scale)) + 2*pngMargin
	c := render.NewCanvas(w, h, scale, style.Background)
	render.Draw(c, render.Frame{Shapes: []shape.Polygon{moved}}, style)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := render.WritePNG(f, c.Image()); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

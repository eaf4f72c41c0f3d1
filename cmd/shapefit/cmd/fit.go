package cmd

import (
	"errors"
	"fmt"
	"io"

	"shape-transformer/internal/builder"
	"shape-transformer/internal/pairs"
	"shape-transformer/internal/transform"
	"shape-transformer/pkg/geometry"

	"github.com/spf13/cobra"
)

func newFitCmd(opts *options) *cobra.Command {
	var (
		apply   string
		pivot   string
		inverse bool
	)

	cmd := &cobra.Command{
		Use:   "fit <pairs>",
		Short: "Fit a transformation and print its matrix",
		Long: `Fit a transformation of the selected kind from "(x,y)->(x,y)" pairs.
Each destination is snapped to the legal path of its pair, exactly as a
drag in the editor would be.

Examples:
  shapefit fit "(0,0)->(5,5)"
  shapefit fit --kind rotation --pivot "(5,5)" "(10,0)->(10,10)"
  shapefit fit --kind projective --inverse \
    "(0,0)->(0,0) (1,0)->(2,0) (1,1)->(2,3) (0,1)->(0,1)"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := builder.ParseKind(opts.kind)
			if err != nil {
				return err
			}
			ps, err := pairs.ParsePairs(args[0])
			if err != nil {
				return err
			}
			center := geometry.Point2D{}
			if pivot != "" {
				pts, err := pairs.ParsePoints(pivot)
				if err != nil {
					return fmt.Errorf("--pivot: %w", err)
				}
				if len(pts) != 1 {
					return fmt.Errorf("--pivot: want one point, got %d", len(pts))
				}
				center = pts[0]
			}

			out := cmd.OutOrStdout()
			t, err := fitPairs(out, kind, center, ps)
			if err != nil {
				return err
			}
			printTransformation(out, t)

			if inverse {
				p, ok := t.(transform.Projective)
				if !ok {
					return errors.New("transformation has no matrix to invert")
				}
				inv, err := p.Inverse()
				if err != nil {
					return err
				}
				fmt.Fprintln(out, "inverse:")
				printTransformation(out, inv)
			}

			if apply != "" {
				pts, err := pairs.ParsePoints(apply)
				if err != nil {
					return fmt.Errorf("--apply: %w", err)
				}
				for _, p := range pts {
					fmt.Fprintf(out, "%s -> %s\n", pairs.FormatPoint(p), pairs.FormatPoint(t.TransformPoint(p)))
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&apply, "apply", "a", "", `points to transform, e.g. "(1,2) (3,4)"`)
	cmd.Flags().StringVar(&pivot, "pivot", "", "rotation centre")
	cmd.Flags().BoolVar(&inverse, "inverse", false, "also print the inverse transformation")
	return cmd
}

// fitPairs feeds ps to a fresh builder one pair at a time and returns the
// fitted transformation. Snapped destinations are reported on out.
func fitPairs(out io.Writer, kind builder.Kind, pivot geometry.Point2D, ps []builder.Pair) (transform.Transformation, error) {
	if len(ps) != kind.Pairs() {
		return nil, fmt.Errorf("%s needs %d pair(s), got %d", kind, kind.Pairs(), len(ps))
	}
	b, err := builder.NewFor(kind, pivot)
	if err != nil {
		return nil, err
	}
	for i, p := range ps {
		next, err := b.MovePoint(p.Src, p.Dst)
		if err != nil {
			return nil, fmt.Errorf("pair %d %s: %w", i+1, pairs.FormatPairs([]builder.Pair{p}), err)
		}
		committed := next.Pairs()
		if dst := committed[len(committed)-1].Dst; !dst.Equal(p.Dst, 1e-9) {
			fmt.Fprintf(out, "pair %d: destination %s snapped to %s\n",
				i+1, pairs.FormatPoint(p.Dst), pairs.FormatPoint(dst))
		}
		b = next
	}
	return b.Transformation()
}

func printTransformation(out io.Writer, t transform.Transformation) {
	if m, ok := transform.MatrixOf(t); ok {
		for _, row := range m {
			fmt.Fprintf(out, "  [% 12.6g % 12.6g % 12.6g ]\n", row[0], row[1], row[2])
		}
	}
	if p, ok := t.(transform.Projective); ok {
		fmt.Fprintln(out, p.Describe())
		return
	}
	fmt.Fprintln(out, t)
}

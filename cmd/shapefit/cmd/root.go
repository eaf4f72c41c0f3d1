// Package cmd implements the shapefit command tree.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"shape-transformer/internal/builder"
	"shape-transformer/internal/version"

	"github.com/spf13/cobra"
)

// options shared by every subcommand.
type options struct {
	verbose bool
	kind    string
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "shapefit",
		Short: "Fit 2D transformations from point correspondences",
		Long: `Fit translations, rotations, rigid, similarity, affine and projective
transformations from dragged point pairs, and apply them to points or
rectangles.

Examples:
  shapefit kinds
  shapefit fit --kind rigid "(0,0)->(5,5); (10,0)->(15,5)"
  shapefit fit --kind affine --apply "(3,4)" "(0,0)->(1,1) (1,0)->(3,1) (0,1)->(1,2)"
  shapefit rect --kind similarity --rect 0,0,10,10 --png before.png --after after.png \
    "(0,0)->(0,0) (10,0)->(0,10)"`,
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.verbose {
				builder.SetLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(),
					&slog.HandlerOptions{Level: slog.LevelDebug})))
			} else {
				builder.SetLogger(nil)
			}
		},
	}

	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log builder decisions to stderr")
	root.PersistentFlags().StringVarP(&opts.kind, "kind", "k", builder.KindTranslation.String(),
		"transformation kind (see 'shapefit kinds')")

	root.AddCommand(
		newFitCmd(opts),
		newRectCmd(opts),
		newKindsCmd(),
	)
	return root
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

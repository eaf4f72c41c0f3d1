// Package pairs parses textual point correspondences such as
//
//	(0,0)->(5,5); (10,0)->(15,5)
//
// and point lists such as "(1,1) (2,3)".
package pairs

import (
	"fmt"
	"strconv"
	"strings"

	"shape-transformer/internal/builder"
	"shape-transformer/pkg/geometry"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// pairLexer tokenizes correspondence lists. Arrow precedes Number so that
// "->" is never read as a sign.
var pairLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `#[^\n]*`},
	{Name: "Whitespace", Pattern: `[\s]+`},
	{Name: "Arrow", Pattern: `->`},
	{Name: "Number", Pattern: `[-+]?(\d+\.?\d*|\.\d+)([eE][-+]?\d+)?`},
	{Name: "Punct", Pattern: `[(),;]`},
})

type pairList struct {
	Pairs []*pairNode `parser:"( @@ ( ',' | ';' )? )*"`
}

type pairNode struct {
	Src *pointNode `parser:"@@ Arrow"`
	Dst *pointNode `parser:"@@"`
}

type pointList struct {
	Points []*pointNode `parser:"( @@ ( ',' | ';' )? )*"`
}

type pointNode struct {
	X float64 `parser:"'(' @Number ','"`
	Y float64 `parser:"@Number ')'"`
}

func (p *pointNode) point() geometry.Point2D {
	return geometry.NewPoint2D(p.X, p.Y)
}

var (
	pairParser = participle.MustBuild[pairList](
		participle.Lexer(pairLexer),
		participle.Elide("Comment", "Whitespace"),
	)
	pointParser = participle.MustBuild[pointList](
		participle.Lexer(pairLexer),
		participle.Elide("Comment", "Whitespace"),
	)
)

// ParsePairs parses a list of "(x,y)->(x,y)" correspondences separated by
// whitespace, commas or semicolons. '#' starts a comment.
func ParsePairs(input string) ([]builder.Pair, error) {
	list, err := pairParser.ParseString("", input)
	if err != nil {
		return nil, fmt.Errorf("parse pairs: %w", err)
	}
	out := make([]builder.Pair, len(list.Pairs))
	for i, p := range list.Pairs {
		out[i] = builder.Pair{Src: p.Src.point(), Dst: p.Dst.point()}
	}
	return out, nil
}

// ParsePoints parses a list of "(x,y)" points.
func ParsePoints(input string) ([]geometry.Point2D, error) {
	list, err := pointParser.ParseString("", input)
	if err != nil {
		return nil, fmt.Errorf("parse points: %w", err)
	}
	out := make([]geometry.Point2D, len(list.Points))
	for i, p := range list.Points {
		out[i] = p.point()
	}
	return out, nil
}

// FormatPoint renders p in the syntax ParsePoints accepts.
func FormatPoint(p geometry.Point2D) string {
	return "(" + strconv.FormatFloat(p.X, 'g', -1, 64) + "," + strconv.FormatFloat(p.Y, 'g', -1, 64) + ")"
}

// FormatPairs renders pairs in the syntax ParsePairs accepts.
func FormatPairs(pairs []builder.Pair) string {
	parts := make([]string, len(pairs))
	for i, p := range pairs {
		parts[i] = FormatPoint(p.Src) + "->" + FormatPoint(p.Dst)
	}
	return strings.Join(parts, "; ")
}

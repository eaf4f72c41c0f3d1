package pairs

import (
	"testing"

	"shape-transformer/internal/builder"
	"shape-transformer/pkg/geometry"
)

func TestParsePairs(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []builder.Pair
	}{
		{"empty", "", []builder.Pair{}},
		{"single", "(0,0)->(5,5)", []builder.Pair{
			{Src: geometry.NewPoint2D(0, 0), Dst: geometry.NewPoint2D(5, 5)},
		}},
		{"separators and spaces", " ( 0 , 0 ) -> ( 0 , 0 ) ; (1,0)->(0,1), (-2.5,1e2)->(.5,-3)", []builder.Pair{
			{Src: geometry.NewPoint2D(0, 0), Dst: geometry.NewPoint2D(0, 0)},
			{Src: geometry.NewPoint2D(1, 0), Dst: geometry.NewPoint2D(0, 1)},
			{Src: geometry.NewPoint2D(-2.5, 100), Dst: geometry.NewPoint2D(0.5, -3)},
		}},
		{"comments", "# corner A\n(0,0)->(1,1)\n# corner B\n(10,0)->(11,1)", []builder.Pair{
			{Src: geometry.NewPoint2D(0, 0), Dst: geometry.NewPoint2D(1, 1)},
			{Src: geometry.NewPoint2D(10, 0), Dst: geometry.NewPoint2D(11, 1)},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePairs(tt.input)
			if err != nil {
				t.Fatalf("ParsePairs(%q): %v", tt.input, err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d pairs, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("pair %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestParsePairsErrors(t *testing.T) {
	for _, input := range []string{
		"(0,0)",
		"(0,0)->",
		"(0,0)->(1)",
		"(a,b)->(1,1)",
		"(0 0)->(1,1)",
	} {
		if _, err := ParsePairs(input); err == nil {
			t.Errorf("ParsePairs(%q) succeeded, want error", input)
		}
	}
}

func TestParsePoints(t *testing.T) {
	got, err := ParsePoints("(1,1) (2,-3); (0.25,4)")
	if err != nil {
		t.Fatal(err)
	}
	want := []geometry.Point2D{{X: 1, Y: 1}, {X: 2, Y: -3}, {X: 0.25, Y: 4}}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("point %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestFormatRoundTrip(t *testing.T) {
	in := []builder.Pair{
		{Src: geometry.NewPoint2D(0, 0), Dst: geometry.NewPoint2D(5.5, -5)},
		{Src: geometry.NewPoint2D(10, 0), Dst: geometry.NewPoint2D(1e-3, 7)},
	}
	text := FormatPairs(in)
	if text != "(0,0)->(5.5,-5); (10,0)->(0.001,7)" {
		t.Errorf("FormatPairs = %q", text)
	}
	out, err := ParsePairs(text)
	if err != nil {
		t.Fatal(err)
	}
	for i := range in {
		if out[i] != in[i] {
			t.Errorf("pair %d = %v, want %v", i, out[i], in[i])
		}
	}
}

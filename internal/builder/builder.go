// Package builder fits transformations to point correspondences collected
// one drag at a time.
//
// A Builder is an immutable accumulator. The caller asks LegalPath for the
// region the next destination must lie in, then hands the raw destination to
// MovePoint, which projects it onto that region and returns a new Builder
// holding one more pair. Once IsDone reports true, Transformation solves for
// the parameters. Discarding a returned Builder and keeping the previous one
// is how a drag is aborted.
package builder

import (
	"errors"
	"fmt"
	"strings"

	"shape-transformer/internal/legalpath"
	"shape-transformer/internal/transform"
	"shape-transformer/pkg/geometry"
)

var (
	// ErrPrecondition is a programming error: MovePoint on a finished
	// builder or Transformation on an unfinished one.
	ErrPrecondition = errors.New("builder: precondition violated")

	// ErrDegenerate means the collected pairs do not determine a unique
	// transformation, e.g. duplicate or collinear source points.
	ErrDegenerate = errors.New("builder: degenerate correspondences")

	// ErrUnknownKind is returned by New and ParseKind for unsupported kinds.
	ErrUnknownKind = errors.New("builder: unknown transformation kind")
)

// Kind selects the transformation family to fit.
type Kind int

const (
	KindTranslation Kind = iota
	KindRigid
	KindSimilarity
	KindAffine
	KindProjective
	KindRotation
)

var kindNames = map[Kind]string{
	KindTranslation: "translation",
	KindRigid:       "rigid",
	KindSimilarity:  "similarity",
	KindAffine:      "affine",
	KindProjective:  "projective",
	KindRotation:    "rotation",
}

// Kinds returns every supported kind in menu order.
func Kinds() []Kind {
	return []Kind{KindTranslation, KindRotation, KindRigid, KindSimilarity, KindAffine, KindProjective}
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Title is the capitalized name used in menus.
func (k Kind) Title() string {
	s := k.String()
	return strings.ToUpper(s[:1]) + s[1:]
}

// Pairs returns how many correspondences the kind needs.
func (k Kind) Pairs() int {
	r, err := rulesFor(k, geometry.Point2D{})
	if err != nil {
		return 0
	}
	return r.needed()
}

// ParseKind is the inverse of Kind.String; it ignores case.
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Pair is a source point and its already-projected destination.
type Pair struct {
	Src geometry.Point2D
	Dst geometry.Point2D
}

// Builder collects correspondences for one transformation kind.
type Builder interface {
	Kind() Kind

	// LegalPath returns the region the destination of src must lie in,
	// given the pairs committed so far.
	LegalPath(src geometry.Point2D) (legalpath.Path, error)

	// MovePoint projects rawDst through LegalPath(src) and returns a new
	// builder with the pair appended. The receiver is unchanged.
	MovePoint(src, rawDst geometry.Point2D) (Builder, error)

	// IsDone reports whether the required number of pairs is collected.
	IsDone() bool

	// Sources returns the committed source points in order.
	Sources() []geometry.Point2D

	// Pairs returns the committed correspondences in order.
	Pairs() []Pair

	// Transformation fits the transformation. It requires IsDone.
	Transformation() (transform.Transformation, error)
}

// rules is the per-kind behavior behind a builder.
type rules interface {
	needed() int
	legalPath(committed []Pair, src geometry.Point2D) (legalpath.Path, error)
	fit(pairs []Pair) (transform.Transformation, error)
}

// New returns an empty builder for kind. Rotation builders created here
// pivot about the origin; use NewFor to choose the pivot.
func New(kind Kind) (Builder, error) {
	return NewFor(kind, geometry.Point2D{})
}

// NewFor returns an empty builder for kind. pivot is the fixed center of a
// rotation builder and is ignored by the other kinds.
func NewFor(kind Kind, pivot geometry.Point2D) (Builder, error) {
	r, err := rulesFor(kind, pivot)
	if err != nil {
		return nil, err
	}
	return &pairBuilder{kind: kind, rules: r}, nil
}

// MustNew is like New but panics on an unknown kind.
func MustNew(kind Kind) Builder {
	b, err := New(kind)
	if err != nil {
		panic(err)
	}
	return b
}

func rulesFor(kind Kind, pivot geometry.Point2D) (rules, error) {
	switch kind {
	case KindTranslation:
		return translationRules{}, nil
	case KindRigid:
		return rigidRules{}, nil
	case KindSimilarity:
		return similarityRules{}, nil
	case KindAffine:
		return affineRules{}, nil
	case KindProjective:
		return projectiveRules{}, nil
	case KindRotation:
		return rotationRules{pivot: pivot}, nil
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownKind, int(kind))
}

// pairBuilder is the single Builder implementation; the kind-specific parts
// live in its rules.
type pairBuilder struct {
	kind  Kind
	rules rules
	pairs []Pair
}

func (b *pairBuilder) Kind() Kind {
	return b.kind
}

func (b *pairBuilder) LegalPath(src geometry.Point2D) (legalpath.Path, error) {
	return b.rules.legalPath(b.pairs, src)
}

func (b *pairBuilder) MovePoint(src, rawDst geometry.Point2D) (Builder, error) {
	if b.IsDone() {
		return nil, fmt.Errorf("%w: %s builder already has %d pairs", ErrPrecondition, b.kind, len(b.pairs))
	}
	path, err := b.LegalPath(src)
	if err != nil {
		return nil, err
	}
	dst := path.Project(rawDst)

	pairs := make([]Pair, len(b.pairs), len(b.pairs)+1)
	copy(pairs, b.pairs)
	pairs = append(pairs, Pair{Src: src, Dst: dst})

	Logger().Debug("pair accepted",
		"kind", b.kind,
		"index", len(pairs),
		"src", src,
		"raw", rawDst,
		"dst", dst)

	return &pairBuilder{kind: b.kind, rules: b.rules, pairs: pairs}, nil
}

func (b *pairBuilder) IsDone() bool {
	return len(b.pairs) == b.rules.needed()
}

func (b *pairBuilder) Sources() []geometry.Point2D {
	out := make([]geometry.Point2D, len(b.pairs))
	for i, p := range b.pairs {
		out[i] = p.Src
	}
	return out
}

func (b *pairBuilder) Pairs() []Pair {
	return append([]Pair(nil), b.pairs...)
}

func (b *pairBuilder) Transformation() (transform.Transformation, error) {
	if !b.IsDone() {
		return nil, fmt.Errorf("%w: %s builder has %d of %d pairs",
			ErrPrecondition, b.kind, len(b.pairs), b.rules.needed())
	}
	t, err := b.rules.fit(b.pairs)
	if err != nil {
		Logger().Warn("fit failed", "kind", b.kind, "pairs", b.pairs, "err", err)
		return nil, err
	}
	Logger().Debug("transformation fitted", "kind", b.kind, "transform", t)
	return t, nil
}

func (b *pairBuilder) String() string {
	return fmt.Sprintf("%s builder (%d/%d pairs)", b.kind, len(b.pairs), b.rules.needed())
}

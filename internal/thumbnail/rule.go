package thumbnail

import "fmt"

type RuleKind string

const (
	KindWidth   RuleKind = "width"
	KindHeight  RuleKind = "height"
	KindShorter RuleKind = "shorter"
	KindLonger  RuleKind = "longer"
	KindFit     RuleKind = "fit"
	KindSquare  RuleKind = "square"
)

// LayoutRule is one of ByWidthRule, ByHeightRule, ByShorterSideRule,
// ByLongerSideRule, FitRule or SquareRule. The set is closed.
type LayoutRule interface {
	Kind() RuleKind
	Resolve(original Dimensions) CanvasPlan
	String() string

	layoutRule()
}

type ByWidthRule struct {
	Width int
}

type ByHeightRule struct {
	Height int
}

type ByShorterSideRule struct {
	Width  int
	Height int
}

type ByLongerSideRule struct {
	Width  int
	Height int
}

type FitRule struct {
	Width      int
	Height     int
	KeepAspect bool
}

type SquareRule struct {
	Side       int
	KeepAspect bool
}

func (ByWidthRule) Kind() RuleKind       { return KindWidth }
func (ByHeightRule) Kind() RuleKind      { return KindHeight }
func (ByShorterSideRule) Kind() RuleKind { return KindShorter }
func (ByLongerSideRule) Kind() RuleKind  { return KindLonger }
func (FitRule) Kind() RuleKind           { return KindFit }
func (SquareRule) Kind() RuleKind        { return KindSquare }

func (r ByWidthRule) Resolve(original Dimensions) CanvasPlan {
	return plainPlan(ByWidth(original, r.Width))
}

func (r ByHeightRule) Resolve(original Dimensions) CanvasPlan {
	return plainPlan(ByHeight(original, r.Height))
}

func (r ByShorterSideRule) Resolve(original Dimensions) CanvasPlan {
	return plainPlan(ByShorterSide(original, r.Width, r.Height))
}

func (r ByLongerSideRule) Resolve(original Dimensions) CanvasPlan {
	return plainPlan(ByLongerSide(original, r.Width, r.Height))
}

func (r FitRule) Resolve(original Dimensions) CanvasPlan {
	return Fit(original, r.Width, r.Height, r.KeepAspect)
}

func (r SquareRule) Resolve(original Dimensions) CanvasPlan {
	return Square(original, r.Side, r.KeepAspect)
}

func (r ByWidthRule) String() string  { return fmt.Sprintf("width(%d)", r.Width) }
func (r ByHeightRule) String() string { return fmt.Sprintf("height(%d)", r.Height) }

func (r ByShorterSideRule) String() string {
	return fmt.Sprintf("shorter(%d,%d)", r.Width, r.Height)
}

func (r ByLongerSideRule) String() string {
	return fmt.Sprintf("longer(%d,%d)", r.Width, r.Height)
}

func (r FitRule) String() string {
	return fmt.Sprintf("fit(%d,%d,%s)", r.Width, r.Height, mode(r.KeepAspect))
}

func (r SquareRule) String() string {
	return fmt.Sprintf("square(%d,%s)", r.Side, mode(r.KeepAspect))
}

func mode(keepAspect bool) string {
	if keepAspect {
		return "contain"
	}
	return "cover"
}

func (ByWidthRule) layoutRule()       {}
func (ByHeightRule) layoutRule()      {}
func (ByShorterSideRule) layoutRule() {}
func (ByLongerSideRule) layoutRule()  {}
func (FitRule) layoutRule()           {}
func (SquareRule) layoutRule()        {}

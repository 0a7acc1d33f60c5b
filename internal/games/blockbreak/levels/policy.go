package levels

import (
	"fmt"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/blockbreak/internal/games/blockbreak/core"
)

// Generator types.
const (
	GenRandom  = "random"
	GenStriped = "striped"
	GenCSV     = "csv"
)

var specialKinds = map[string]core.Kind{
	"heart": core.KindHeart,
	"wedge": core.KindWedge,
	"trash": core.KindTrash,
}

// Base gives a policy the stock special-block behavior. Concrete policies
// embed it and override ActivateSpecial only when they need to.
type Base struct{}

// ActivateSpecial implements core.Policy.
func (Base) ActivateSpecial(l *core.Level, p core.Pos) core.Outcome {
	return core.ResolveSpecial(l, p)
}

// RandomQueue refills with uniformly random colors.
type RandomQueue struct {
	Variants int
}

// QueueBlock implements core.Policy.
func (q RandomQueue) QueueBlock(rng *rand.Rand) core.Block {
	return core.Normal(rng.Intn(max(q.Variants, 1)))
}

// RandomPolicy fills the grid with random colors and scatters specials.
type RandomPolicy struct {
	Base
	RandomQueue
	W, H     int
	Variants int
	Specials []SpecialPlacement
}

// BuildGrid implements core.Policy.
func (p RandomPolicy) BuildGrid(rng *rand.Rand) (*core.Grid, error) {
	n := max(p.Variants, 1)
	g, err := core.NewGridFunc(p.W, p.H, func(core.Pos) core.Block {
		return core.Normal(rng.Intn(n))
	})
	if err != nil {
		return nil, err
	}
	placeSpecials(g, p.Specials, rng)
	return g, nil
}

// StripedPolicy builds the deterministic pattern of the puzzle board:
// even columns are color 0, odd columns alternate colors 1 and 2 by row.
type StripedPolicy struct {
	Base
	RandomQueue
	W, H     int
	Specials []SpecialPlacement
}

// BuildGrid implements core.Policy.
func (p StripedPolicy) BuildGrid(rng *rand.Rand) (*core.Grid, error) {
	g, err := core.NewGridFunc(p.W, p.H, func(pos core.Pos) core.Block {
		switch {
		case pos.Col%2 == 0:
			return core.Normal(0)
		case pos.Row%2 == 0:
			return core.Normal(1)
		default:
			return core.Normal(2)
		}
	})
	if err != nil {
		return nil, err
	}
	placeSpecials(g, p.Specials, rng)
	return g, nil
}

// LayoutPolicy starts every play from a fixed grid. It does not consume the
// random source while building.
type LayoutPolicy struct {
	Base
	RandomQueue
	Layout *core.Grid
}

// BuildGrid implements core.Policy.
func (p LayoutPolicy) BuildGrid(*rand.Rand) (*core.Grid, error) {
	if p.Layout == nil {
		return nil, fmt.Errorf("%w: no layout", core.ErrLevelDataCorrupt)
	}
	return p.Layout.Clone(), nil
}

// placeSpecials overwrites random normal cells with special blocks.
// Placement never stacks two specials in one cell.
func placeSpecials(g *core.Grid, specials []SpecialPlacement, rng *rand.Rand) {
	for _, sp := range specials {
		kind := specialKinds[sp.Kind]
		r := Region{W: g.Width(), H: g.Height()}
		if sp.Region != nil {
			r = clipRegion(*sp.Region, g.Width(), g.Height())
		}
		if r.W <= 0 || r.H <= 0 {
			continue
		}
		for i := 0; i < sp.Count; i++ {
			// bounded retries keep placement total on crowded regions
			for attempt := 0; attempt < r.W*r.H*4; attempt++ {
				p := core.P(r.X+rng.Intn(r.W), r.Y+rng.Intn(r.H))
				if g.At(p).Kind == core.KindNormal {
					g.Set(p, core.Special(kind))
					break
				}
			}
		}
	}
}

func clipRegion(r Region, w, h int) Region {
	x0, y0 := max(r.X, 0), max(r.Y, 0)
	x1, y1 := min(r.X+r.W, w), min(r.Y+r.H, h)
	return Region{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Builder turns specs into policies.
type Builder struct {
	Log *log.Logger
}

// Policy returns the policy for spec s of catalog c. A csv layout that
// cannot be read or parsed, or whose size differs from the level grid, is
// logged and replaced by random generation.
func (b Builder) Policy(c *Catalog, s Spec) core.Policy {
	queue := RandomQueue{Variants: s.QueueVariants()}
	random := RandomPolicy{
		RandomQueue: queue,
		W:           s.Grid.W,
		H:           s.Grid.H,
		Variants:    max(s.Generator.Variants, 1),
		Specials:    s.Specials,
	}
	if s.Generator.Variants == 0 {
		random.Variants = queue.Variants
	}

	switch s.Generator.Type {
	case GenStriped:
		return StripedPolicy{RandomQueue: queue, W: s.Grid.W, H: s.Grid.H, Specials: s.Specials}
	case GenCSV:
		layout, err := c.layout(s.Generator.Layout)
		if err == nil {
			err = checkLayoutSize(layout, s.Grid)
		}
		if err != nil {
			b.logger().Warn("level layout unusable, generating random grid",
				"level", s.ID, "layout", s.Generator.Layout, "err", err)
			return random
		}
		return LayoutPolicy{RandomQueue: queue, Layout: layout}
	default:
		return random
	}
}

// checkLayoutSize reports a layout whose dimensions differ from the level
// grid. The error points just past the shorter of the two extents.
func checkLayoutSize(layout *core.Grid, size GridSize) error {
	w, h := layout.Width(), layout.Height()
	if w == size.W && h == size.H {
		return nil
	}
	return &core.LayoutError{
		Line:   min(h, size.H) + 1,
		Column: min(w, size.W) + 1,
		Reason: fmt.Sprintf("layout is %dx%d, level grid is %dx%d", w, h, size.W, size.H),
	}
}

func (b Builder) logger() *log.Logger {
	if b.Log != nil {
		return b.Log
	}
	return log.Default()
}

// layout opens and parses a layout file from the catalog's file system.
func (c *Catalog) layout(name string) (*core.Grid, error) {
	if c.fsys == nil {
		return nil, fmt.Errorf("%w: no layout source for %q", core.ErrLevelDataCorrupt, name)
	}
	f, err := c.fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrLevelDataCorrupt, err)
	}
	defer f.Close()
	return ParseLayout(f)
}

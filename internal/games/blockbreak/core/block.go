package core

import "fmt"

// Kind is the type tag of a grid cell.
type Kind uint8

const (
	KindEmpty  Kind = iota
	KindNormal      // participates in matching
	KindHeart       // bonus score and full energy
	KindWedge       // shifts its row
	KindTrash       // inert obstacle
)

var kindNames = [...]string{"empty", "normal", "heart", "wedge", "trash"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", k)
}

// IsSpecial reports whether activation of this kind is resolved by the
// level policy instead of the match detector.
func (k Kind) IsSpecial() bool {
	return k == KindHeart || k == KindWedge || k == KindTrash
}

// Block is the content of one grid cell. Blocks are values: a cell is
// replaced wholesale, never mutated in place.
type Block struct {
	Kind    Kind
	Variant int // color index, meaningful only for KindNormal
}

// Empty returns the empty block.
func Empty() Block { return Block{} }

// Normal returns a matchable block of the given variant.
func Normal(variant int) Block {
	return Block{Kind: KindNormal, Variant: variant}
}

// Special returns a block of a special kind.
func Special(k Kind) Block {
	return Block{Kind: k}
}

// IsEmpty reports whether the cell holds nothing.
func (b Block) IsEmpty() bool { return b.Kind == KindEmpty }

// Matches reports whether two blocks belong to the same match class.
func (b Block) Matches(o Block) bool {
	return b.Kind == KindNormal && o.Kind == KindNormal && b.Variant == o.Variant
}

// Symbol is a compact single-rune form used by Grid.String and test fixtures.
func (b Block) Symbol() rune {
	switch b.Kind {
	case KindNormal:
		if b.Variant >= 0 && b.Variant < 10 {
			return rune('0' + b.Variant)
		}
		if b.Variant < 36 {
			return rune('a' + b.Variant - 10)
		}
		return '?'
	case KindHeart:
		return 'H'
	case KindWedge:
		return 'W'
	case KindTrash:
		return 'T'
	default:
		return '.'
	}
}

// ParseSymbol is the inverse of Symbol.
func ParseSymbol(r rune) (Block, bool) {
	switch {
	case r >= '0' && r <= '9':
		return Normal(int(r - '0')), true
	case r >= 'a' && r <= 'z':
		return Normal(int(r-'a') + 10), true
	case r == 'H':
		return Special(KindHeart), true
	case r == 'W':
		return Special(KindWedge), true
	case r == 'T':
		return Special(KindTrash), true
	case r == '.':
		return Empty(), true
	}
	return Block{}, false
}

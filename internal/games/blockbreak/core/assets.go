package core

import (
	"fmt"
	"strconv"
)

// Handle is an opaque drawable supplied by the asset provider. The engine
// stores handles and hands them back to the presentation layer untouched.
type Handle any

// AssetSource resolves sprite keys to handles.
type AssetSource interface {
	Get(key string) (Handle, bool)
}

// Sprite keys the level resolves at construction.
const (
	SpriteEmpty  = "empty"
	SpriteHeart  = "heart"
	SpriteWedge  = "wedge"
	SpriteTrash  = "trash"
	SpriteCursor = "cursor"
)

// SpriteKey returns the asset key for a block.
func SpriteKey(b Block) string {
	switch b.Kind {
	case KindNormal:
		return "block_" + strconv.Itoa(b.Variant)
	case KindHeart:
		return SpriteHeart
	case KindWedge:
		return SpriteWedge
	case KindTrash:
		return SpriteTrash
	default:
		return SpriteEmpty
	}
}

// resolveSprites looks up every key, failing on the first missing one.
func resolveSprites(src AssetSource, keys []string) (map[string]Handle, error) {
	out := make(map[string]Handle, len(keys))
	if src == nil {
		return out, nil
	}
	for _, k := range keys {
		h, ok := src.Get(k)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrAssetMissing, k)
		}
		out[k] = h
	}
	return out, nil
}

package glyphcloud

import (
	"github.com/emirpasic/gods/maps/treemap"
	"github.com/npillmayer/tyll/core/font"
)

// Buckets collect vertex indices by glyph, ordered by glyph index.
type Buckets struct {
	tree *treemap.Map // int(glyph index) -> []int
}

// NewBuckets creates an empty set of buckets.
func NewBuckets() *Buckets {
	return &Buckets{tree: treemap.NewWithIntComparator()}
}

// Add records vertex index i for glyph g.
func (b *Buckets) Add(g font.GlyphIndex, i int) {
	key := int(g)
	if v, ok := b.tree.Get(key); ok {
		b.tree.Put(key, append(v.([]int), i))
		return
	}
	b.tree.Put(key, []int{i})
}

// Len returns the number of distinct glyphs.
func (b *Buckets) Len() int {
	return b.tree.Size()
}

// Indices returns the vertex indices recorded for glyph g.
func (b *Buckets) Indices(g font.GlyphIndex) []int {
	if v, ok := b.tree.Get(int(g)); ok {
		return v.([]int)
	}
	return nil
}

// Each calls f for every glyph in ascending order of glyph indices.
func (b *Buckets) Each(f func(g font.GlyphIndex, indices []int)) {
	it := b.tree.Iterator()
	for it.Next() {
		f(font.GlyphIndex(it.Key().(int)), it.Value().([]int))
	}
}

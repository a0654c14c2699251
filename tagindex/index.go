package tagindex

// Tagged is what the index needs from a post. Everything else a post carries
// passes through untouched.
type Tagged interface {
	TagList() []string
	IsPublished() bool
}

// Index maps category identifiers to the published posts filed under them.
// Identifiers starts with All and then lists tags in first-encounter order.
type Index[P Tagged] struct {
	Identifiers []string
	Buckets     map[string][]P
}

// BuildIndex files every published post under All and under the identifier
// of each of its tags. Posts are visited in collection order and tags in
// post order; that order decides which tag keeps the bare identifier when two
// different forms would collide. A post repeating a tag is filed once.
func BuildIndex[P Tagged](posts []P) Index[P] {
	ix := Index[P]{
		Identifiers: []string{All},
		Buckets:     map[string][]P{All: {}},
	}
	cat := newCategorizer()
	// last holds 1 + the position of the post most recently filed per bucket.
	last := make(map[string]int)

	for i, p := range posts {
		if !p.IsPublished() {
			continue
		}
		ix.Buckets[All] = append(ix.Buckets[All], p)
		for _, tag := range p.TagList() {
			id := cat.identifier(tag)
			bucket, known := ix.Buckets[id]
			if !known {
				ix.Identifiers = append(ix.Identifiers, id)
			}
			if last[id] == i+1 {
				continue
			}
			last[id] = i + 1
			ix.Buckets[id] = append(bucket, p)
		}
	}
	return ix
}

// Has reports whether id is a category route of this index.
func (ix Index[P]) Has(id string) bool {
	_, ok := ix.Buckets[id]
	return ok
}

// Posts returns the posts filed under id, or nil if id is unknown.
func (ix Index[P]) Posts(id string) []P {
	return ix.Buckets[id]
}

// Counts returns the number of posts per identifier.
func (ix Index[P]) Counts() map[string]int {
	counts := make(map[string]int, len(ix.Buckets))
	for id, posts := range ix.Buckets {
		counts[id] = len(posts)
	}
	return counts
}

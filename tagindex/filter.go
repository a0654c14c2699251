package tagindex

// Filtered is the result of FilterByCategory.
type Filtered[P Tagged] struct {
	// Matches holds the posts in the requested category, in input order.
	Matches []P
	// Identifiers lists every category met during the scan, All first.
	Identifiers []string
}

// FilterByCategory returns the posts carrying a tag whose identifier is
// target. Each post is resolved with its own fresh Slugger so a collision in
// one post never shifts another post's identifiers.
//
// For target All every post matches, published or not; callers that must
// hide drafts pass only published posts. The scan reads every tag of every
// post so Identifiers is complete even for posts that matched early.
func FilterByCategory[P Tagged](posts []P, target string) Filtered[P] {
	out := Filtered[P]{
		Matches:     []P{},
		Identifiers: []string{All},
	}
	observed := map[string]struct{}{All: {}}

	for _, p := range posts {
		cat := newCategorizer()
		matched := target == All
		for _, tag := range p.TagList() {
			id := cat.identifier(tag)
			if _, ok := observed[id]; !ok {
				observed[id] = struct{}{}
				out.Identifiers = append(out.Identifiers, id)
			}
			if id == target {
				matched = true
			}
		}
		if matched {
			out.Matches = append(out.Matches, p)
		}
	}
	return out
}

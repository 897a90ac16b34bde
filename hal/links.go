package hal

// Links is an ordered, relation-keyed collection of Link values.
//
// Within one relation, links are deduplicated by equivalence (rel, href,
// type, profile): a later equivalent link is dropped, so the first-inserted
// link's remaining metadata wins. A per-relation array flag controls
// single-object versus array rendering; it is set once at build or parse
// time.
//
// Links is built once via NewLinks or a LinksBuilder and never mutated
// afterwards. The zero value is an empty, read-only collection.
type Links struct {
	rels      []string
	items     map[string][]Link
	arrayRels map[string]bool
	// curies is the CURI scope used for equivalent-rel lookups and for
	// compacting rel keys on rendering. It defaults to the collection's own
	// "curies" entries; a Representation replaces it with the inherited,
	// merged registry.
	curies Curies
}

// NewLinks returns a Links collection holding the given links, deduplicated
// by equivalence per relation.
func NewLinks(links ...Link) Links {
	return NewLinksBuilder().With(links...).Build()
}

// LinkBy returns the first link for the given relation type. The lookup
// tries the exact relation key first, then any key that is CURI-equivalent
// to rel under the collection's CURI scope. The second return is false when
// no link matches; absence is not an error.
func (l Links) LinkBy(rel string) (Link, bool) {
	links := l.LinksBy(rel)
	if len(links) == 0 {
		return Link{}, false
	}
	return links[0], true
}

// LinksBy returns all links for the given (possibly CURI-equivalent)
// relation type, in insertion order. The result is empty, never an error,
// when no link matches.
func (l Links) LinksBy(rel string) []Link {
	var out []Link
	resolved := l.curies.Resolve(rel)
	for _, storedRel := range l.rels {
		if storedRel == rel || l.curies.Resolve(storedRel) == resolved {
			out = append(out, l.items[storedRel]...)
		}
	}
	return out
}

// HrefOf returns the href of the first link for rel, or "" when none
// matches.
func (l Links) HrefOf(rel string) string {
	link, ok := l.LinkBy(rel)
	if !ok {
		return ""
	}
	return link.Href()
}

// Rels returns the distinct relation keys in insertion order.
func (l Links) Rels() []string {
	out := make([]string, len(l.rels))
	copy(out, l.rels)
	return out
}

// IsArray reports whether the given relation renders as a JSON array. A
// relation renders as an array when it accumulated more than one link, when
// it was flagged via WithArrayRels, or when it was parsed from an array on
// the wire.
func (l Links) IsArray(rel string) bool {
	return l.arrayRels[rel]
}

// IsEmpty reports whether the collection holds no links.
func (l Links) IsEmpty() bool {
	return len(l.rels) == 0
}

// linksFor returns the stored links for an exact relation key, without
// CURI-equivalence.
func (l Links) linksFor(rel string) []Link {
	return l.items[rel]
}

// withCuries returns a copy of the collection with its CURI scope replaced.
func (l Links) withCuries(curies Curies) Links {
	l.curies = curies
	return l
}

// ownCuries derives the registry declared by the collection's own "curies"
// entries. Entries that are not valid curi links are skipped; the strict
// variant of this check runs on the parse path.
func (l Links) ownCuries() Curies {
	var c Curies
	for _, curi := range l.linksFor(RelCuries) {
		if t, err := NewCuriTemplate(curi); err == nil {
			c.put(t)
		}
	}
	return c
}

// LinksBuilder composes a Links collection from single links, slices and
// whole collections, applying the per-relation equivalence dedup rule.
type LinksBuilder struct {
	rels      []string
	items     map[string][]Link
	arrayRels map[string]bool
}

// NewLinksBuilder returns an empty LinksBuilder.
func NewLinksBuilder() *LinksBuilder {
	return &LinksBuilder{
		items:     make(map[string][]Link),
		arrayRels: make(map[string]bool),
	}
}

// LinksBuilderFrom returns a LinksBuilder seeded with a copy of links, for
// copy-extend composition.
func LinksBuilderFrom(links Links) *LinksBuilder {
	b := NewLinksBuilder()
	b.WithLinks(links)
	for rel, isArray := range links.arrayRels {
		if isArray {
			b.arrayRels[rel] = true
		}
	}
	return b
}

// With appends the given links, skipping any link for which an equivalent
// link is already present under the same relation.
func (b *LinksBuilder) With(links ...Link) *LinksBuilder {
	for _, link := range links {
		b.add(link)
	}
	return b
}

// WithLinks appends all links of another collection, applying the same
// dedup rule.
func (b *LinksBuilder) WithLinks(links Links) *LinksBuilder {
	for _, rel := range links.rels {
		b.With(links.items[rel]...)
	}
	return b
}

// WithArrayRels flags the given relations to render as JSON arrays even
// when they hold a single link.
func (b *LinksBuilder) WithArrayRels(rels ...string) *LinksBuilder {
	for _, rel := range rels {
		b.arrayRels[rel] = true
	}
	return b
}

func (b *LinksBuilder) add(link Link) {
	rel := link.Rel()
	existing, seen := b.items[rel]
	if !seen {
		b.rels = append(b.rels, rel)
	}
	for _, e := range existing {
		if e.IsEquivalentTo(link) {
			// first-inserted equivalent wins
			return
		}
	}
	b.items[rel] = append(existing, link)
}

// Build finalizes the collection. Relations that accumulated more than one
// link are promoted to array rendering; the CURI scope is derived from the
// collection's own "curies" entries.
func (b *LinksBuilder) Build() Links {
	links := Links{
		rels:      make([]string, len(b.rels)),
		items:     make(map[string][]Link, len(b.items)),
		arrayRels: make(map[string]bool, len(b.arrayRels)),
	}
	copy(links.rels, b.rels)
	for rel, ls := range b.items {
		stored := make([]Link, len(ls))
		copy(stored, ls)
		links.items[rel] = stored
		if len(ls) > 1 {
			links.arrayRels[rel] = true
		}
	}
	for rel, isArray := range b.arrayRels {
		if isArray {
			links.arrayRels[rel] = true
		}
	}
	// curies always renders as an array
	if _, ok := links.items[RelCuries]; ok {
		links.arrayRels[RelCuries] = true
	}
	links.curies = links.ownCuries()
	return links
}

package hal

import (
	"encoding/json"

	"github.com/erraggy/haltools/halerrors"
	"github.com/erraggy/haltools/internal/jsonutil"
)

// Representation is one HAL document, root or embedded: a Links collection,
// an Embedded collection, domain attributes, and a resolvable CURI scope.
//
// The CURI scope is inherited top-down: whenever a representation gains
// embedded children (at construction, on parse, or via WithEmbedded) its
// effective registry is pushed into every child, with the child's own curi
// declarations taking precedence over inherited same-named prefixes.
type Representation struct {
	links    Links
	embedded Embedded

	// explicit holds curies passed to NewRepresentationWithCuries, as
	// opposed to ones declared via a "curies" link relation.
	explicit Curies
	// inherited is the registry pushed down by the parent document; empty
	// for a root.
	inherited Curies
	// curies is the effective registry: inherited, shadowed by explicit and
	// link-declared entries.
	curies Curies

	attrs     []jsonutil.Member
	attrIndex map[string]int
}

// NewRepresentation returns a document composed of the given link and
// embedded collections. Its CURI registry is derived from any "curies"
// entries in links and propagated into every embedded child.
func NewRepresentation(links Links, embedded Embedded) *Representation {
	return NewRepresentationWithCuries(links, embedded, Curies{})
}

// NewRepresentationWithCuries is NewRepresentation with an explicitly
// supplied registry. Curi links declared in links shadow same-named entries
// of the explicit registry.
func NewRepresentationWithCuries(links Links, embedded Embedded, curies Curies) *Representation {
	r := &Representation{
		links:    links,
		embedded: embedded,
		explicit: curies,
	}
	r.propagate(Curies{})
	return r
}

// Empty returns a document with no links, no embedded items and no
// attributes.
func Empty() *Representation {
	return NewRepresentation(Links{}, Embedded{})
}

// propagate applies the curie-inheritance protocol: it records the
// parent-supplied registry, computes the effective registry with
// nearer-scope declarations winning, attaches it to the link and embedded
// collections, and recurses into every embedded child exactly once.
func (r *Representation) propagate(parent Curies) {
	r.inherited = parent
	own := r.explicit.MergeWith(r.links.ownCuries())
	r.curies = parent.MergeWith(own)
	r.links = r.links.withCuries(r.curies)
	r.embedded = r.embedded.withCuries(r.curies)
	for _, rel := range r.embedded.rels {
		for _, child := range r.embedded.items[rel] {
			child.propagate(r.curies)
		}
	}
}

// Links returns the document's link collection.
func (r *Representation) Links() Links { return r.links }

// Embedded returns the document's embedded collection.
func (r *Representation) Embedded() Embedded { return r.embedded }

// Curies returns the document's effective CURI registry, including
// inherited entries.
func (r *Representation) Curies() Curies { return r.curies }

// LinkBy looks up the first link for rel; see Links.LinkBy.
func (r *Representation) LinkBy(rel string) (Link, bool) { return r.links.LinkBy(rel) }

// LinksBy looks up all links for rel; see Links.LinksBy.
func (r *Representation) LinksBy(rel string) []Link { return r.links.LinksBy(rel) }

// ItemsBy looks up all embedded items for rel; see Embedded.ItemsBy.
func (r *Representation) ItemsBy(rel string) []*Representation { return r.embedded.ItemsBy(rel) }

// WithLinks replaces the whole link collection, re-derives the CURI
// registry and re-propagates it into the attached embedded children.
func (r *Representation) WithLinks(links Links) *Representation {
	r.links = links
	r.propagate(r.inherited)
	return r
}

// AddLinks appends links to the existing collection, applying the
// equivalence dedup rule. A newly added curi link becomes resolvable
// immediately, for this document and for every embedded child.
func (r *Representation) AddLinks(links ...Link) *Representation {
	return r.WithLinks(LinksBuilderFrom(r.links).With(links...).Build())
}

// WithEmbedded sets the embedded items for one relation, overwriting
// earlier items of that relation, and propagates the CURI registry into the
// new children.
func (r *Representation) WithEmbedded(rel string, items ...*Representation) *Representation {
	r.embedded = EmbeddedBuilderFrom(r.embedded).With(rel, items...).Build()
	r.propagate(r.inherited)
	return r
}

// Attribute returns the raw JSON value of the named domain attribute.
func (r *Representation) Attribute(name string) (json.RawMessage, bool) {
	i, ok := r.attrIndex[name]
	if !ok {
		return nil, false
	}
	return r.attrs[i].Value, true
}

// AttributeAs decodes the named domain attribute into v.
func (r *Representation) AttributeAs(name string, v any) error {
	raw, ok := r.Attribute(name)
	if !ok {
		return halerrors.Argumentf("name", "no attribute %q", name)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return &halerrors.ParseError{Message: "cannot decode attribute " + name, Cause: err}
	}
	return nil
}

// AttributeNames returns the domain attribute names in document order.
func (r *Representation) AttributeNames() []string {
	out := make([]string, len(r.attrs))
	for i, m := range r.attrs {
		out[i] = m.Name
	}
	return out
}

// SetAttribute sets a domain attribute, replacing an existing value in
// place. The reserved names _links and _embedded are rejected.
func (r *Representation) SetAttribute(name string, value any) error {
	if name == reservedLinks || name == reservedEmbedded {
		return halerrors.Argumentf("name", "%s is a reserved HAL attribute", name)
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return &halerrors.ArgumentError{Param: "value", Message: "cannot encode attribute " + name, Cause: err}
	}
	r.setRawAttribute(name, raw)
	return nil
}

func (r *Representation) setRawAttribute(name string, raw json.RawMessage) {
	if i, ok := r.attrIndex[name]; ok {
		r.attrs[i].Value = raw
		return
	}
	if r.attrIndex == nil {
		r.attrIndex = make(map[string]int)
	}
	r.attrIndex[name] = len(r.attrs)
	r.attrs = append(r.attrs, jsonutil.Member{Name: name, Value: raw})
}

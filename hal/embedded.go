package hal

import (
	"encoding/json"

	"github.com/erraggy/haltools/halerrors"
)

// Embedded is an ordered, relation-keyed collection of embedded
// sub-representations. Each item is a full recursive document.
//
// Lookup and array-vs-single semantics match Links, but no equivalence
// deduplication is applied: distinct occurrences are always kept, even if
// structurally identical. The zero value is an empty, read-only collection.
type Embedded struct {
	rels      []string
	items     map[string][]*Representation
	arrayRels map[string]bool
	curies    Curies
}

// NewEmbedded returns an Embedded collection holding the given items under
// one relation.
func NewEmbedded(rel string, items ...*Representation) Embedded {
	return NewEmbeddedBuilder().With(rel, items...).Build()
}

// ItemsBy returns all embedded items for the given (possibly
// CURI-equivalent) relation type, in insertion order. The result is empty,
// never an error, when no item matches.
func (e Embedded) ItemsBy(rel string) []*Representation {
	var out []*Representation
	resolved := e.curies.Resolve(rel)
	for _, storedRel := range e.rels {
		if storedRel == rel || e.curies.Resolve(storedRel) == resolved {
			out = append(out, e.items[storedRel]...)
		}
	}
	return out
}

// ItemBy returns the first embedded item for the given relation type. The
// second return is false when no item matches.
func (e Embedded) ItemBy(rel string) (*Representation, bool) {
	items := e.ItemsBy(rel)
	if len(items) == 0 {
		return nil, false
	}
	return items[0], true
}

// Rels returns the distinct relation keys in insertion order.
func (e Embedded) Rels() []string {
	out := make([]string, len(e.rels))
	copy(out, e.rels)
	return out
}

// IsArray reports whether the given relation renders as a JSON array, with
// the same rules as Links.IsArray.
func (e Embedded) IsArray(rel string) bool {
	return e.arrayRels[rel]
}

// IsEmpty reports whether the collection holds no items.
func (e Embedded) IsEmpty() bool {
	return len(e.rels) == 0
}

// withCuries returns a copy of the collection with its CURI scope replaced.
func (e Embedded) withCuries(curies Curies) Embedded {
	e.curies = curies
	return e
}

// ItemsAs decodes the embedded items for rel into values of the concrete
// type T, applying the same CURI-equivalent lookup as ItemsBy. T is a plain
// struct with json tags; declare a field of type Links or Embedded (tagged
// _links / _embedded) to keep access to the hypermedia controls:
//
//	type Order struct {
//	    Total int       `json:"total"`
//	    Links hal.Links `json:"_links"`
//	}
//
//	orders, err := hal.ItemsAs[Order](rep.Embedded(), "http://example.org/rels/orders")
func ItemsAs[T any](e Embedded, rel string) ([]T, error) {
	items := e.ItemsBy(rel)
	out := make([]T, 0, len(items))
	for _, item := range items {
		data, err := json.Marshal(item)
		if err != nil {
			return nil, err
		}
		var v T
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, &halerrors.ParseError{Rel: rel, Message: "cannot decode embedded item", Cause: err}
		}
		out = append(out, v)
	}
	return out, nil
}

// EmbeddedBuilder composes an Embedded collection relation by relation.
type EmbeddedBuilder struct {
	rels      []string
	items     map[string][]*Representation
	arrayRels map[string]bool
}

// NewEmbeddedBuilder returns an empty EmbeddedBuilder.
func NewEmbeddedBuilder() *EmbeddedBuilder {
	return &EmbeddedBuilder{
		items:     make(map[string][]*Representation),
		arrayRels: make(map[string]bool),
	}
}

// EmbeddedBuilderFrom returns an EmbeddedBuilder seeded with a copy of e.
func EmbeddedBuilderFrom(e Embedded) *EmbeddedBuilder {
	b := NewEmbeddedBuilder()
	for _, rel := range e.rels {
		b.With(rel, e.items[rel]...)
	}
	for rel, isArray := range e.arrayRels {
		if isArray {
			b.arrayRels[rel] = true
		}
	}
	return b
}

// With sets the embedded items for a relation. A later call for the same
// relation overwrites the earlier items.
func (b *EmbeddedBuilder) With(rel string, items ...*Representation) *EmbeddedBuilder {
	if _, seen := b.items[rel]; !seen {
		b.rels = append(b.rels, rel)
	}
	stored := make([]*Representation, len(items))
	copy(stored, items)
	b.items[rel] = stored
	return b
}

// WithArrayRels flags the given relations to render as JSON arrays even
// when they hold a single item.
func (b *EmbeddedBuilder) WithArrayRels(rels ...string) *EmbeddedBuilder {
	for _, rel := range rels {
		b.arrayRels[rel] = true
	}
	return b
}

// Build finalizes the collection, promoting relations with more than one
// item to array rendering.
func (b *EmbeddedBuilder) Build() Embedded {
	e := Embedded{
		rels:      make([]string, len(b.rels)),
		items:     make(map[string][]*Representation, len(b.items)),
		arrayRels: make(map[string]bool, len(b.arrayRels)),
	}
	copy(e.rels, b.rels)
	for rel, items := range b.items {
		stored := make([]*Representation, len(items))
		copy(stored, items)
		e.items[rel] = stored
		if len(items) > 1 {
			e.arrayRels[rel] = true
		}
	}
	for rel, isArray := range b.arrayRels {
		if isArray {
			e.arrayRels[rel] = true
		}
	}
	return e
}

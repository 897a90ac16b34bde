package hal

import (
	"encoding/json"
	"errors"

	"github.com/erraggy/haltools/halerrors"
	"github.com/erraggy/haltools/internal/jsonutil"
)

// Reserved HAL+JSON document keys.
const (
	reservedLinks    = "_links"
	reservedEmbedded = "_embedded"
)

// wireLink is the HAL+JSON wire form of a link object. Optional attributes
// are pointers so that an absent attribute and a present-but-empty one
// survive round-trips.
type wireLink struct {
	Href        string  `json:"href"`
	Templated   bool    `json:"templated,omitempty"`
	Type        *string `json:"type,omitempty"`
	HrefLang    *string `json:"hreflang,omitempty"`
	Title       *string `json:"title,omitempty"`
	Name        *string `json:"name,omitempty"`
	Deprecation *string `json:"deprecation,omitempty"`
	Profile     *string `json:"profile,omitempty"`
}

func linkToWire(l Link) wireLink {
	return wireLink{
		Href:        l.href,
		Templated:   l.templated,
		Type:        ptrFromOpt(l.mediaType),
		HrefLang:    ptrFromOpt(l.hrefLang),
		Title:       ptrFromOpt(l.title),
		Name:        ptrFromOpt(l.name),
		Deprecation: ptrFromOpt(l.deprecation),
		Profile:     ptrFromOpt(l.profile),
	}
}

// linkFromWire rebuilds a Link from its wire form. The templated flag is
// derived from the href; a wire value disagreeing with the href is ignored.
func linkFromWire(rel string, w wireLink) (Link, error) {
	if rel == "" {
		return Link{}, &halerrors.ParseError{Message: "link relation type must not be empty"}
	}
	if w.Href == "" {
		return Link{}, &halerrors.ParseError{Rel: rel, Message: "link object must have an href"}
	}
	return Link{
		rel:         rel,
		href:        w.Href,
		templated:   isTemplated(w.Href),
		mediaType:   optFromPtr(w.Type),
		hrefLang:    optFromPtr(w.HrefLang),
		title:       optFromPtr(w.Title),
		name:        optFromPtr(w.Name),
		deprecation: optFromPtr(w.Deprecation),
		profile:     optFromPtr(w.Profile),
	}, nil
}

func ptrFromOpt(o optString) *string {
	if !o.set {
		return nil
	}
	v := o.value
	return &v
}

func optFromPtr(p *string) optString {
	if p == nil {
		return optString{}
	}
	return setString(*p)
}

// MarshalJSON renders the collection as a HAL _links object: relation keys
// compacted to their curied form under the collection's CURI scope, each
// relation as a single link object or an array per its array flag.
func (l Links) MarshalJSON() ([]byte, error) {
	return l.marshal(Curies{})
}

// marshal renders the collection, stripping curi declarations that are
// equivalent (same name and template) to an entry of the inherited
// registry. Relation keys whose compaction collides are merged under the
// first occurrence.
func (l Links) marshal(inherited Curies) ([]byte, error) {
	type group struct {
		links []Link
		array bool
	}
	var order []string
	groups := make(map[string]*group)
	add := func(key string, links []Link, array bool) {
		g, ok := groups[key]
		if !ok {
			g = &group{}
			groups[key] = g
			order = append(order, key)
		}
		g.links = append(g.links, links...)
		g.array = g.array || array || len(g.links) > 1
	}

	for _, rel := range l.rels {
		if rel == RelCuries {
			kept := filterInheritedCuries(l.items[rel], inherited)
			if len(kept) > 0 {
				add(RelCuries, kept, true)
			}
			continue
		}
		add(l.curies.Resolve(rel), l.items[rel], l.IsArray(rel))
	}

	var w jsonutil.ObjectWriter
	for _, key := range order {
		g := groups[key]
		if !g.array {
			if err := w.Member(key, linkToWire(g.links[0])); err != nil {
				return nil, err
			}
			continue
		}
		wires := make([]wireLink, len(g.links))
		for i, link := range g.links {
			wires[i] = linkToWire(link)
		}
		if err := w.Member(key, wires); err != nil {
			return nil, err
		}
	}
	return w.Bytes(), nil
}

// filterInheritedCuries drops curi links whose prefix name and template are
// both already available from the inherited registry. Such a curi stays
// resolvable through the merged registry; it is just not re-declared in the
// child's rendered _links.
func filterInheritedCuries(curies []Link, inherited Curies) []Link {
	var kept []Link
	for _, curi := range curies {
		if t, err := NewCuriTemplate(curi); err == nil {
			if it, ok := inherited.Lookup(t.Name()); ok && it.RelTemplate() == t.RelTemplate() {
				continue
			}
		}
		kept = append(kept, curi)
	}
	return kept
}

// UnmarshalJSON parses a HAL _links object, preserving relation order and
// recording which relations arrived as arrays.
func (l *Links) UnmarshalJSON(data []byte) error {
	parsed, err := parseLinks(data)
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

func parseLinks(data []byte) (Links, error) {
	members, err := jsonutil.DecodeObject(data)
	if err != nil {
		return Links{}, &halerrors.ParseError{Message: "_links must be a JSON object", Cause: err}
	}
	b := NewLinksBuilder()
	for _, m := range members {
		if jsonutil.IsArray(m.Value) {
			var wires []wireLink
			if err := json.Unmarshal(m.Value, &wires); err != nil {
				return Links{}, &halerrors.ParseError{Rel: m.Name, Message: "malformed link array", Cause: err}
			}
			b.WithArrayRels(m.Name)
			for _, w := range wires {
				link, err := linkFromWire(m.Name, w)
				if err != nil {
					return Links{}, err
				}
				b.With(link)
			}
			continue
		}
		var w wireLink
		if err := json.Unmarshal(m.Value, &w); err != nil {
			return Links{}, &halerrors.ParseError{Rel: m.Name, Message: "malformed link object", Cause: err}
		}
		link, err := linkFromWire(m.Name, w)
		if err != nil {
			return Links{}, err
		}
		b.With(link)
	}
	links := b.Build()

	// a malformed CURI definition must not be silently ignored on the
	// parse path
	for _, curi := range links.linksFor(RelCuries) {
		if _, err := NewCuriTemplate(curi); err != nil {
			return Links{}, &halerrors.ParseError{Rel: RelCuries, Message: "invalid CURI definition", Cause: err}
		}
	}
	return links, nil
}

// MarshalJSON renders the collection as a HAL _embedded object, with the
// same key compaction and array rules as Links.
func (e Embedded) MarshalJSON() ([]byte, error) {
	type group struct {
		items []*Representation
		array bool
	}
	var order []string
	groups := make(map[string]*group)
	for _, rel := range e.rels {
		key := e.curies.Resolve(rel)
		g, ok := groups[key]
		if !ok {
			g = &group{}
			groups[key] = g
			order = append(order, key)
		}
		g.items = append(g.items, e.items[rel]...)
		g.array = g.array || e.IsArray(rel) || len(g.items) > 1
	}

	var w jsonutil.ObjectWriter
	for _, key := range order {
		g := groups[key]
		if !g.array {
			if err := w.Member(key, g.items[0]); err != nil {
				return nil, err
			}
			continue
		}
		if err := w.Member(key, g.items); err != nil {
			return nil, err
		}
	}
	return w.Bytes(), nil
}

// UnmarshalJSON parses a HAL _embedded object into recursive
// representations, preserving relation order and array shapes.
func (e *Embedded) UnmarshalJSON(data []byte) error {
	parsed, err := parseEmbedded(data)
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}

func parseEmbedded(data []byte) (Embedded, error) {
	members, err := jsonutil.DecodeObject(data)
	if err != nil {
		return Embedded{}, &halerrors.ParseError{Message: "_embedded must be a JSON object", Cause: err}
	}
	b := NewEmbeddedBuilder()
	for _, m := range members {
		if jsonutil.IsArray(m.Value) {
			var items []*Representation
			if err := json.Unmarshal(m.Value, &items); err != nil {
				return Embedded{}, &halerrors.ParseError{Rel: m.Name, Message: "malformed embedded array", Cause: err}
			}
			b.WithArrayRels(m.Name)
			b.With(m.Name, items...)
			continue
		}
		var item Representation
		if err := json.Unmarshal(m.Value, &item); err != nil {
			return Embedded{}, &halerrors.ParseError{Rel: m.Name, Message: "malformed embedded object", Cause: err}
		}
		b.With(m.Name, &item)
	}
	return b.Build(), nil
}

// MarshalJSON renders the document: _links first, _embedded second, then
// the domain attributes in their original order. Empty link and embedded
// collections are omitted.
func (r *Representation) MarshalJSON() ([]byte, error) {
	var w jsonutil.ObjectWriter
	linksJSON, err := r.links.marshal(r.inherited)
	if err != nil {
		return nil, err
	}
	// the rendered object can be empty even for a non-empty collection,
	// when every curi declaration was stripped as inherited
	if string(linksJSON) != "{}" {
		w.RawMember(reservedLinks, linksJSON)
	}
	if !r.embedded.IsEmpty() {
		embeddedJSON, err := r.embedded.MarshalJSON()
		if err != nil {
			return nil, err
		}
		w.RawMember(reservedEmbedded, embeddedJSON)
	}
	for _, m := range r.attrs {
		w.RawMember(m.Name, m.Value)
	}
	return w.Bytes(), nil
}

// UnmarshalJSON parses a full HAL+JSON document, derives its CURI registry
// from the parsed links, and propagates it into every embedded child.
func (r *Representation) UnmarshalJSON(data []byte) error {
	members, err := jsonutil.DecodeObject(data)
	if err != nil {
		return &halerrors.ParseError{Message: "HAL document must be a JSON object", Cause: err}
	}
	parsed := Representation{}
	for _, m := range members {
		switch m.Name {
		case reservedLinks:
			links, err := parseLinks(m.Value)
			if err != nil {
				return err
			}
			parsed.links = links
		case reservedEmbedded:
			embedded, err := parseEmbedded(m.Value)
			if err != nil {
				return err
			}
			parsed.embedded = embedded
		default:
			parsed.setRawAttribute(m.Name, m.Value)
		}
	}
	*r = parsed
	r.propagate(Curies{})
	return nil
}

// Parse decodes a HAL+JSON document. Failures are reported as a
// halerrors.ParseError.
func Parse(data []byte) (*Representation, error) {
	var r Representation
	if err := json.Unmarshal(data, &r); err != nil {
		var parseErr *halerrors.ParseError
		if errors.As(err, &parseErr) {
			return nil, err
		}
		return nil, &halerrors.ParseError{Message: "malformed HAL+JSON document", Cause: err}
	}
	return &r, nil
}

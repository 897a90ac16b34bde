package hal

// Curies is a registry of CuriTemplates keyed by CURI prefix name, in
// registration order. The zero value is an empty, ready-to-use registry.
//
// Register is the sole in-place mutator and is meant for initialization
// only; all cross-scope composition goes through the pure MergeWith.
type Curies struct {
	names     []string
	templates map[string]CuriTemplate
}

// CuriesFromLinks builds a registry from the "curies" entries of links, in
// insertion order. Fails if any entry is not a valid curi link.
func CuriesFromLinks(links Links) (Curies, error) {
	var c Curies
	for _, curi := range links.linksFor(RelCuries) {
		if err := c.Register(curi); err != nil {
			return Curies{}, err
		}
	}
	return c, nil
}

// Register validates that curi is a CURI-defining link and stores its
// template under its prefix name, replacing an existing entry with the same
// name in place. Registering an equal curi twice leaves the registry
// unchanged in effect.
func (c *Curies) Register(curi Link) error {
	t, err := NewCuriTemplate(curi)
	if err != nil {
		return err
	}
	c.put(t)
	return nil
}

func (c *Curies) put(t CuriTemplate) {
	if c.templates == nil {
		c.templates = make(map[string]CuriTemplate)
	}
	if _, exists := c.templates[t.Name()]; !exists {
		c.names = append(c.names, t.Name())
	}
	c.templates[t.Name()] = t
}

// Resolve rewrites rel to its curied form when a registered template
// matches its expanded form. A rel already in a registered curied form, and
// any rel matching no registered template (including unregistered prefixes),
// is passed through unchanged. Resolve never fails and is idempotent.
func (c Curies) Resolve(rel string) string {
	for _, name := range c.names {
		if c.templates[name].IsMatchingCuriedRel(rel) {
			return rel
		}
	}
	for _, name := range c.names {
		t := c.templates[name]
		if !t.IsMatchingExpandedRel(rel) {
			continue
		}
		curied, err := t.CuriedRelFrom(rel)
		if err != nil {
			continue
		}
		return curied
	}
	return rel
}

// Expand rewrites rel to its expanded URI form when it is in a registered
// curied form; any other rel is passed through unchanged. Expand never
// fails.
func (c Curies) Expand(rel string) string {
	for _, name := range c.names {
		t := c.templates[name]
		if !t.IsMatchingCuriedRel(rel) {
			continue
		}
		expanded, err := t.ExpandedRelFrom(rel)
		if err != nil {
			continue
		}
		return expanded
	}
	return rel
}

// Lookup returns the template registered under the given prefix name.
func (c Curies) Lookup(name string) (CuriTemplate, bool) {
	t, ok := c.templates[name]
	return t, ok
}

// Templates returns all registered templates in registration order.
func (c Curies) Templates() []CuriTemplate {
	out := make([]CuriTemplate, 0, len(c.names))
	for _, name := range c.names {
		out = append(out, c.templates[name])
	}
	return out
}

// Links returns the curi links the registered templates were derived from,
// in registration order.
func (c Curies) Links() []Link {
	out := make([]Link, 0, len(c.names))
	for _, name := range c.names {
		out = append(out, c.templates[name].Link())
	}
	return out
}

// IsEmpty reports whether the registry holds no templates.
func (c Curies) IsEmpty() bool {
	return len(c.names) == 0
}

// MergeWith returns a new registry holding the union of both registries'
// entries. On a prefix-name collision the entry of other wins, replacing
// the receiver's mapping for that name. Neither operand is mutated.
//
// Curie inheritance relies on this direction: a parent propagates with
// parent.MergeWith(childOwn), so the child's own declarations shadow
// inherited ones.
func (c Curies) MergeWith(other Curies) Curies {
	merged := c.clone()
	for _, t := range other.Templates() {
		merged.put(t)
	}
	return merged
}

func (c Curies) clone() Curies {
	cloned := Curies{
		names:     make([]string, len(c.names)),
		templates: make(map[string]CuriTemplate, len(c.templates)),
	}
	copy(cloned.names, c.names)
	for name, t := range c.templates {
		cloned.templates[name] = t
	}
	return cloned
}

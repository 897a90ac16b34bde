package hal

import (
	"strings"

	"github.com/yosida95/uritemplate/v3"

	"github.com/erraggy/haltools/halerrors"
)

// CuriTemplate wraps one CURI-defining link and rewrites relation types
// between their curied form ("x:product") and their expanded form
// ("http://example.org/rels/product").
//
// A CuriTemplate is stateless beyond its definition; all operations are pure
// functions of a candidate relation-type string.
type CuriTemplate struct {
	link Link
	name string
	// static template parts around the {rel} placeholder
	prefix string
	suffix string
	tmpl   *uritemplate.Template
}

// NewCuriTemplate derives a CuriTemplate from a curi link. The link must
// have relation type "curies", a name (the CURI prefix) and an href
// containing the {rel} placeholder.
func NewCuriTemplate(curi Link) (CuriTemplate, error) {
	if curi.Rel() != RelCuries {
		return CuriTemplate{}, halerrors.Argumentf("curi",
			"CURI link must have relation type %q, got %q", RelCuries, curi.Rel())
	}
	name, ok := curi.NameOK()
	if !ok || name == "" {
		return CuriTemplate{}, halerrors.Argumentf("curi", "CURI link must have a name")
	}
	if !containsRelPlaceholder(curi.Href()) {
		return CuriTemplate{}, halerrors.Argumentf("curi",
			"CURI template %q must contain the %s placeholder", curi.Href(), relPlaceholder)
	}
	tmpl, err := uritemplate.New(curi.Href())
	if err != nil {
		return CuriTemplate{}, &halerrors.ArgumentError{
			Param:   "curi",
			Message: "CURI template " + curi.Href() + " is not a valid URI template",
			Cause:   err,
		}
	}
	prefix, suffix, _ := strings.Cut(curi.Href(), relPlaceholder)
	return CuriTemplate{
		link:   curi,
		name:   name,
		prefix: prefix,
		suffix: suffix,
		tmpl:   tmpl,
	}, nil
}

// Name returns the CURI prefix name.
func (t CuriTemplate) Name() string { return t.name }

// RelTemplate returns the URI template string, including the {rel}
// placeholder.
func (t CuriTemplate) RelTemplate() string { return t.link.Href() }

// Link returns the curi link this template was derived from.
func (t CuriTemplate) Link() Link { return t.link }

// IsMatchingCuriedRel reports whether rel is in this template's curied form:
// "<prefix>:<suffix>" with the template's name before the first colon. The
// part after the first colon may be empty or contain further colons.
func (t CuriTemplate) IsMatchingCuriedRel(rel string) bool {
	name, _, found := strings.Cut(rel, ":")
	return found && name == t.name
}

// IsMatchingExpandedRel reports whether rel matches this template's expanded
// form: it starts with the static part before {rel} and ends with the static
// part after it.
func (t CuriTemplate) IsMatchingExpandedRel(rel string) bool {
	return len(rel) >= len(t.prefix)+len(t.suffix) &&
		strings.HasPrefix(rel, t.prefix) &&
		strings.HasSuffix(rel, t.suffix)
}

// IsMatching reports whether rel matches this template in either form.
func (t CuriTemplate) IsMatching(rel string) bool {
	return t.IsMatchingCuriedRel(rel) || t.IsMatchingExpandedRel(rel)
}

// RelPlaceholderFrom extracts the {rel} placeholder value from rel, in
// either form: "product" from "x:product" as well as from
// "http://example.org/rels/product". Fails with a MatchError if rel matches
// neither form.
func (t CuriTemplate) RelPlaceholderFrom(rel string) (string, error) {
	if t.IsMatchingCuriedRel(rel) {
		return rel[len(t.name)+1:], nil
	}
	if t.IsMatchingExpandedRel(rel) {
		return rel[len(t.prefix) : len(rel)-len(t.suffix)], nil
	}
	return "", &halerrors.MatchError{Rel: rel, Template: t.RelTemplate()}
}

// CuriedRelFrom rewrites rel to its curied form. A rel already in curied
// form is returned unchanged. Fails with a MatchError if rel matches neither
// form.
func (t CuriTemplate) CuriedRelFrom(rel string) (string, error) {
	if t.IsMatchingCuriedRel(rel) {
		return rel, nil
	}
	value, err := t.RelPlaceholderFrom(rel)
	if err != nil {
		return "", err
	}
	return t.name + ":" + value, nil
}

// ExpandedRelFrom rewrites rel to its expanded form by substituting the
// placeholder value into the URI template. Fails with a MatchError if rel
// matches neither form.
func (t CuriTemplate) ExpandedRelFrom(rel string) (string, error) {
	value, err := t.RelPlaceholderFrom(rel)
	if err != nil {
		return "", err
	}
	expanded, err := t.tmpl.Expand(uritemplate.Values{
		"rel": uritemplate.String(value),
	})
	if err != nil {
		return "", &halerrors.MatchError{Rel: rel, Template: t.RelTemplate()}
	}
	return expanded, nil
}

// MatchingCuriTemplateFor returns the first template derived from curies
// that matches rel, in list order. The second return is false when no
// template matches. Fails if any of the given links is not a valid curi.
func MatchingCuriTemplateFor(curies []Link, rel string) (CuriTemplate, bool, error) {
	for _, curi := range curies {
		t, err := NewCuriTemplate(curi)
		if err != nil {
			return CuriTemplate{}, false, err
		}
		if t.IsMatching(rel) {
			return t, true, nil
		}
	}
	return CuriTemplate{}, false, nil
}

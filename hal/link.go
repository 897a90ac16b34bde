package hal

import (
	"errors"
	"strings"

	"github.com/yosida95/uritemplate/v3"
	"golang.org/x/text/language"

	"github.com/erraggy/haltools/halerrors"
)

// Well-known link-relation types used by the factory functions.
const (
	RelSelf       = "self"
	RelItem       = "item"
	RelCollection = "collection"
	RelProfile    = "profile"

	// RelCuries is the reserved pseudo-relation under which CURI
	// definitions are declared.
	RelCuries = "curies"
)

// relPlaceholder is the placeholder every CURI template must contain.
const relPlaceholder = "{rel}"

// optString distinguishes an absent optional attribute from one that is
// present with an empty value. The distinction matters for wire round-trips;
// the defaulting accessors hide it from convenience callers.
type optString struct {
	value string
	set   bool
}

func setString(v string) optString {
	return optString{value: v, set: true}
}

// Link is one immutable hypermedia link: a relation type, an href (literal
// URI or URI template) and optional metadata.
//
// Links are values. Construct them with New, the rel-specific factories
// (Self, Item, Collection, Profile, Curi) or a LinkBuilder; a zero Link is
// not valid.
type Link struct {
	rel         string
	href        string
	templated   bool
	mediaType   optString
	hrefLang    optString
	title       optString
	name        optString
	profile     optString
	deprecation optString
}

// New returns a Link with the given relation type and href. Both must be
// non-empty; violation is an immediate construction error.
func New(rel, href string) (Link, error) {
	if rel == "" {
		return Link{}, halerrors.Argumentf("rel", "link relation type must not be empty")
	}
	if href == "" {
		return Link{}, halerrors.Argumentf("href", "link href must not be empty")
	}
	return Link{rel: rel, href: href, templated: isTemplated(href)}, nil
}

// Self returns a link with relation type "self".
func Self(href string) (Link, error) {
	return New(RelSelf, href)
}

// Item returns a link with relation type "item".
func Item(href string) (Link, error) {
	return New(RelItem, href)
}

// Collection returns a link with relation type "collection".
func Collection(href string) (Link, error) {
	return New(RelCollection, href)
}

// Profile returns a link with relation type "profile".
func Profile(href string) (Link, error) {
	return New(RelProfile, href)
}

// Curi returns a CURI-defining link: relation type "curies", the given
// prefix name, and a URI template that must contain the literal {rel}
// placeholder.
func Curi(name, relTemplate string) (Link, error) {
	if name == "" {
		return Link{}, halerrors.Argumentf("name", "CURI name must not be empty")
	}
	l, err := New(RelCuries, relTemplate)
	if err != nil {
		return Link{}, err
	}
	if !containsRelPlaceholder(relTemplate) {
		return Link{}, halerrors.Argumentf("relTemplate",
			"CURI template %q must contain the %s placeholder", relTemplate, relPlaceholder)
	}
	l.name = setString(name)
	return l, nil
}

// Rel returns the link-relation type.
func (l Link) Rel() string { return l.rel }

// Href returns the target URI or URI template.
func (l Link) Href() string { return l.href }

// Templated reports whether the href is a URI template. It is derived once
// at construction from the href, never from the wire attribute.
func (l Link) Templated() bool { return l.templated }

// Type returns the media-type hint, or "" when absent.
func (l Link) Type() string { return l.mediaType.value }

// TypeOK returns the media-type hint and whether it is present.
func (l Link) TypeOK() (string, bool) { return l.mediaType.value, l.mediaType.set }

// HrefLang returns the target language, or "" when absent.
func (l Link) HrefLang() string { return l.hrefLang.value }

// HrefLangOK returns the target language and whether it is present.
func (l Link) HrefLangOK() (string, bool) { return l.hrefLang.value, l.hrefLang.set }

// Title returns the human-readable title, or "" when absent.
func (l Link) Title() string { return l.title.value }

// TitleOK returns the title and whether it is present.
func (l Link) TitleOK() (string, bool) { return l.title.value, l.title.set }

// Name returns the secondary key, or "" when absent. For CURI links this is
// the CURI prefix.
func (l Link) Name() string { return l.name.value }

// NameOK returns the name and whether it is present.
func (l Link) NameOK() (string, bool) { return l.name.value, l.name.set }

// Profile returns the profile URI, or "" when absent.
func (l Link) Profile() string { return l.profile.value }

// ProfileOK returns the profile URI and whether it is present.
func (l Link) ProfileOK() (string, bool) { return l.profile.value, l.profile.set }

// Deprecation returns the deprecation URL, or "" when absent.
func (l Link) Deprecation() string { return l.deprecation.value }

// DeprecationOK returns the deprecation URL and whether it is present.
func (l Link) DeprecationOK() (string, bool) { return l.deprecation.value, l.deprecation.set }

// Equal reports full structural equality, including presence of optional
// attributes.
func (l Link) Equal(other Link) bool {
	return l == other
}

// IsEquivalentTo reports link equivalence: sameness of rel, href, type and
// profile. Title, name, hreflang and deprecation are ignored. Equivalence
// drives deduplication in Links.
func (l Link) IsEquivalentTo(other Link) bool {
	return l.rel == other.rel &&
		l.href == other.href &&
		l.mediaType.value == other.mediaType.value &&
		l.profile.value == other.profile.value
}

// containsRelPlaceholder checks for the literal {rel} substring. The
// placeholder must appear verbatim so the template can be split into its
// static prefix and suffix.
func containsRelPlaceholder(href string) bool {
	return strings.Contains(href, relPlaceholder)
}

// isTemplated reports whether href contains at least one URI-template
// expression. An href that does not parse as a template is a literal URI.
func isTemplated(href string) bool {
	t, err := uritemplate.New(href)
	if err != nil {
		return false
	}
	return len(t.Varnames()) > 0
}

// LinkBuilder assembles a Link with the full optional attribute set. Errors
// are accumulated and reported by Build.
type LinkBuilder struct {
	link Link
	errs []error
}

// NewLinkBuilder starts building a link with the given relation type and
// href.
func NewLinkBuilder(rel, href string) *LinkBuilder {
	b := &LinkBuilder{}
	l, err := New(rel, href)
	if err != nil {
		b.errs = append(b.errs, err)
		return b
	}
	b.link = l
	return b
}

// WithType sets the media-type hint.
func (b *LinkBuilder) WithType(mediaType string) *LinkBuilder {
	b.link.mediaType = setString(mediaType)
	return b
}

// WithHrefLang sets the target language. The value must be a well-formed
// BCP 47 language tag.
func (b *LinkBuilder) WithHrefLang(hrefLang string) *LinkBuilder {
	if _, err := language.Parse(hrefLang); err != nil {
		b.errs = append(b.errs, &halerrors.ArgumentError{
			Param:   "hreflang",
			Message: "not a valid BCP 47 language tag: " + hrefLang,
			Cause:   err,
		})
		return b
	}
	b.link.hrefLang = setString(hrefLang)
	return b
}

// WithTitle sets the human-readable title.
func (b *LinkBuilder) WithTitle(title string) *LinkBuilder {
	b.link.title = setString(title)
	return b
}

// WithName sets the secondary key.
func (b *LinkBuilder) WithName(name string) *LinkBuilder {
	b.link.name = setString(name)
	return b
}

// WithProfile sets the profile URI.
func (b *LinkBuilder) WithProfile(profile string) *LinkBuilder {
	b.link.profile = setString(profile)
	return b
}

// WithDeprecation marks the link as deprecated, pointing at a URL with
// further information.
func (b *LinkBuilder) WithDeprecation(deprecation string) *LinkBuilder {
	b.link.deprecation = setString(deprecation)
	return b
}

// Build returns the assembled Link, or the accumulated construction errors.
func (b *LinkBuilder) Build() (Link, error) {
	if len(b.errs) > 0 {
		return Link{}, errors.Join(b.errs...)
	}
	return b.link, nil
}

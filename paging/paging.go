// Package paging produces the self/first/prev/next/last links of a
// skip/limit paged collection resource against a page URI template.
package paging

import (
	"math"
	"strconv"

	"github.com/yosida95/uritemplate/v3"

	"github.com/erraggy/haltools/hal"
	"github.com/erraggy/haltools/halerrors"
)

// NoLimit marks an unbounded page size. An unbounded page cannot be
// combined with hasMore, and its page links omit the limit variable.
const NoLimit = math.MaxInt

// Default URI-template variable names for the skip and limit placeholders.
const (
	DefaultSkipVar  = "skip"
	DefaultLimitVar = "limit"
)

// Option configures a SkipLimitPaging value.
type Option func(*SkipLimitPaging)

// WithVarNames overrides the URI-template variable names used for the skip
// and limit placeholders.
func WithVarNames(skipVar, limitVar string) Option {
	return func(p *SkipLimitPaging) {
		p.skipVar = skipVar
		p.limitVar = limitVar
	}
}

// SkipLimitPaging describes the current page of a collection, either with
// an open end (hasMore) or with a known total element count.
type SkipLimitPaging struct {
	skip     int
	limit    int
	hasMore  bool
	total    int
	hasTotal bool
	skipVar  string
	limitVar string
}

// NewSkipLimitPaging returns the paging state for a collection with an
// unknown total count. skip must be non-negative, limit positive; hasMore
// combined with NoLimit is rejected, since an unbounded page that has more
// elements is a contradiction.
func NewSkipLimitPaging(skip, limit int, hasMore bool, opts ...Option) (SkipLimitPaging, error) {
	if hasMore && limit == NoLimit {
		return SkipLimitPaging{}, halerrors.Argumentf("limit",
			"hasMore must not be combined with an unbounded limit")
	}
	p := SkipLimitPaging{skip: skip, limit: limit, hasMore: hasMore}
	return p.validate(opts)
}

// NewSkipLimitPagingWithTotal returns the paging state for a collection
// with a known total element count. totalCount must not be less than skip.
func NewSkipLimitPagingWithTotal(skip, limit, totalCount int, opts ...Option) (SkipLimitPaging, error) {
	if totalCount < skip {
		return SkipLimitPaging{}, halerrors.Argumentf("totalCount",
			"totalCount %d must not be less than skip %d", totalCount, skip)
	}
	p := SkipLimitPaging{skip: skip, limit: limit, total: totalCount, hasTotal: true}
	return p.validate(opts)
}

func (p SkipLimitPaging) validate(opts []Option) (SkipLimitPaging, error) {
	if p.skip < 0 {
		return SkipLimitPaging{}, halerrors.Argumentf("skip", "skip must not be negative, got %d", p.skip)
	}
	if p.limit <= 0 {
		return SkipLimitPaging{}, halerrors.Argumentf("limit", "limit must be positive, got %d", p.limit)
	}
	p.skipVar = DefaultSkipVar
	p.limitVar = DefaultLimitVar
	for _, opt := range opts {
		opt(&p)
	}
	return p, nil
}

// Skip returns the number of skipped elements.
func (p SkipLimitPaging) Skip() int { return p.skip }

// Limit returns the page size, or NoLimit.
func (p SkipLimitPaging) Limit() int { return p.limit }

// LastPageSkip returns the skip of the last page. An exact multiple of
// limit rolls back one full page rather than landing on an empty page, and
// a skip already beyond total-limit stays unchanged.
func (p SkipLimitPaging) LastPageSkip() int {
	remainder := p.total % p.limit
	if remainder == 0 {
		remainder = p.limit
	}
	last := p.total - remainder
	if last <= p.skip {
		return p.skip
	}
	return last
}

// Links produces the paging links for the given page URI template. The
// template's skip and limit variables (by default {skip} and {limit}) are
// expanded per page; self and first are always present, prev requires
// skip > 0, next requires more elements, and last requires a known total.
func (p SkipLimitPaging) Links(template string) (hal.Links, error) {
	tmpl, err := uritemplate.New(template)
	if err != nil {
		return hal.Links{}, &halerrors.ArgumentError{
			Param:   "template",
			Message: "not a valid URI template: " + template,
			Cause:   err,
		}
	}

	b := hal.NewLinksBuilder()
	add := func(rel string, skip int) error {
		href, err := p.hrefFor(tmpl, skip)
		if err != nil {
			return err
		}
		link, err := hal.New(rel, href)
		if err != nil {
			return err
		}
		b.With(link)
		return nil
	}

	if err := add(hal.RelSelf, p.skip); err != nil {
		return hal.Links{}, err
	}
	if err := add("first", 0); err != nil {
		return hal.Links{}, err
	}
	if p.skip > 0 {
		if err := add("prev", p.prevPageSkip()); err != nil {
			return hal.Links{}, err
		}
	}
	if p.hasNext() {
		if err := add("next", p.skip+p.limit); err != nil {
			return hal.Links{}, err
		}
	}
	if p.hasTotal {
		if err := add("last", p.LastPageSkip()); err != nil {
			return hal.Links{}, err
		}
	}
	return b.Build(), nil
}

func (p SkipLimitPaging) prevPageSkip() int {
	if p.limit == NoLimit || p.skip < p.limit {
		return 0
	}
	return p.skip - p.limit
}

func (p SkipLimitPaging) hasNext() bool {
	if p.hasTotal {
		return p.limit != NoLimit && p.skip+p.limit < p.total
	}
	return p.hasMore
}

func (p SkipLimitPaging) hrefFor(tmpl *uritemplate.Template, skip int) (string, error) {
	vars := uritemplate.Values{
		p.skipVar: uritemplate.String(strconv.Itoa(skip)),
	}
	if p.limit != NoLimit {
		vars[p.limitVar] = uritemplate.String(strconv.Itoa(p.limit))
	}
	return tmpl.Expand(vars)
}

package paging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/haltools/hal"
	"github.com/erraggy/haltools/halerrors"
)

const pageTemplate = "http://example.org/items{?skip,limit}"

func hrefOf(t *testing.T, links hal.Links, rel string) string {
	t.Helper()
	link, ok := links.LinkBy(rel)
	require.True(t, ok, "missing link %q", rel)
	return link.Href()
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name    string
		build   func() error
		param   string
		message string
	}{
		{
			name: "negative skip",
			build: func() error {
				_, err := NewSkipLimitPaging(-1, 5, false)
				return err
			},
			param:   "skip",
			message: "skip",
		},
		{
			name: "zero limit",
			build: func() error {
				_, err := NewSkipLimitPaging(0, 0, false)
				return err
			},
			param:   "limit",
			message: "limit",
		},
		{
			name: "negative limit with total",
			build: func() error {
				_, err := NewSkipLimitPagingWithTotal(0, -5, 10)
				return err
			},
			param:   "limit",
			message: "limit",
		},
		{
			name: "hasMore with unbounded limit",
			build: func() error {
				_, err := NewSkipLimitPaging(0, NoLimit, true)
				return err
			},
			param:   "limit",
			message: "unbounded",
		},
		{
			name: "total less than skip",
			build: func() error {
				_, err := NewSkipLimitPagingWithTotal(20, 5, 10)
				return err
			},
			param:   "totalCount",
			message: "skip",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.build()
			require.Error(t, err)
			assert.ErrorIs(t, err, halerrors.ErrArgument)
			assert.Contains(t, err.Error(), tt.message)

			var argErr *halerrors.ArgumentError
			require.ErrorAs(t, err, &argErr)
			assert.Equal(t, tt.param, argErr.Param)
		})
	}
}

func TestLastPageSkip(t *testing.T) {
	tests := []struct {
		name  string
		total int
		skip  int
		limit int
		want  int
	}{
		{name: "exact multiple rolls back one page", total: 10, skip: 0, limit: 5, want: 5},
		{name: "partial last page", total: 12, skip: 0, limit: 5, want: 10},
		{name: "skip beyond last page stays unchanged", total: 10, skip: 8, limit: 5, want: 8},
		{name: "single page", total: 3, skip: 0, limit: 5, want: 0},
		{name: "empty collection", total: 0, skip: 0, limit: 5, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewSkipLimitPagingWithTotal(tt.skip, tt.limit, tt.total)
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.LastPageSkip())
		})
	}
}

func TestLinksWithTotal(t *testing.T) {
	t.Run("first page", func(t *testing.T) {
		p, err := NewSkipLimitPagingWithTotal(0, 5, 12)
		require.NoError(t, err)
		links, err := p.Links(pageTemplate)
		require.NoError(t, err)

		assert.Equal(t, "http://example.org/items?skip=0&limit=5", hrefOf(t, links, "self"))
		assert.Equal(t, "http://example.org/items?skip=0&limit=5", hrefOf(t, links, "first"))
		assert.Equal(t, "http://example.org/items?skip=5&limit=5", hrefOf(t, links, "next"))
		assert.Equal(t, "http://example.org/items?skip=10&limit=5", hrefOf(t, links, "last"))
		_, hasPrev := links.LinkBy("prev")
		assert.False(t, hasPrev)
	})

	t.Run("middle page", func(t *testing.T) {
		p, err := NewSkipLimitPagingWithTotal(5, 5, 12)
		require.NoError(t, err)
		links, err := p.Links(pageTemplate)
		require.NoError(t, err)

		assert.Equal(t, "http://example.org/items?skip=0&limit=5", hrefOf(t, links, "prev"))
		assert.Equal(t, "http://example.org/items?skip=10&limit=5", hrefOf(t, links, "next"))
	})

	t.Run("last page", func(t *testing.T) {
		p, err := NewSkipLimitPagingWithTotal(10, 5, 12)
		require.NoError(t, err)
		links, err := p.Links(pageTemplate)
		require.NoError(t, err)

		_, hasNext := links.LinkBy("next")
		assert.False(t, hasNext)
		assert.Equal(t, "http://example.org/items?skip=10&limit=5", hrefOf(t, links, "last"))
	})
}

func TestLinksWithHasMore(t *testing.T) {
	t.Run("more pages", func(t *testing.T) {
		p, err := NewSkipLimitPaging(10, 5, true)
		require.NoError(t, err)
		links, err := p.Links(pageTemplate)
		require.NoError(t, err)

		assert.Equal(t, "http://example.org/items?skip=10&limit=5", hrefOf(t, links, "self"))
		assert.Equal(t, "http://example.org/items?skip=5&limit=5", hrefOf(t, links, "prev"))
		assert.Equal(t, "http://example.org/items?skip=15&limit=5", hrefOf(t, links, "next"))
		_, hasLast := links.LinkBy("last")
		assert.False(t, hasLast, "last requires a known total")
	})

	t.Run("no more pages", func(t *testing.T) {
		p, err := NewSkipLimitPaging(0, 5, false)
		require.NoError(t, err)
		links, err := p.Links(pageTemplate)
		require.NoError(t, err)

		_, hasNext := links.LinkBy("next")
		assert.False(t, hasNext)
		_, hasPrev := links.LinkBy("prev")
		assert.False(t, hasPrev)
	})

	t.Run("unbounded limit omits the limit variable", func(t *testing.T) {
		p, err := NewSkipLimitPaging(0, NoLimit, false)
		require.NoError(t, err)
		links, err := p.Links(pageTemplate)
		require.NoError(t, err)

		assert.Equal(t, "http://example.org/items?skip=0", hrefOf(t, links, "self"))
	})
}

func TestCustomVarNames(t *testing.T) {
	p, err := NewSkipLimitPagingWithTotal(0, 10, 30, WithVarNames("offset", "size"))
	require.NoError(t, err)
	links, err := p.Links("http://example.org/items{?offset,size}")
	require.NoError(t, err)

	assert.Equal(t, "http://example.org/items?offset=0&size=10", hrefOf(t, links, "self"))
	assert.Equal(t, "http://example.org/items?offset=20&size=10", hrefOf(t, links, "last"))
}

func TestInvalidTemplate(t *testing.T) {
	p, err := NewSkipLimitPaging(0, 5, false)
	require.NoError(t, err)
	_, err = p.Links("http://example.org/items{?skip")
	require.Error(t, err)
	assert.ErrorIs(t, err, halerrors.ErrArgument)
}

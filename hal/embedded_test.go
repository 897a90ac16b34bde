package hal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func orderRep(t *testing.T, href string) *Representation {
	t.Helper()
	return NewRepresentation(NewLinks(mustLink(t, "self", href)), Embedded{})
}

func TestEmbeddedLookup(t *testing.T) {
	curi := mustCuri(t, "x", "http://example.org/rels/{rel}")
	rep := NewRepresentation(
		NewLinks(curi),
		NewEmbedded("x:orders", orderRep(t, "/o/1"), orderRep(t, "/o/2")),
	)
	embedded := rep.Embedded()

	t.Run("exact rel", func(t *testing.T) {
		assert.Len(t, embedded.ItemsBy("x:orders"), 2)
	})

	t.Run("expanded rel finds curied entry", func(t *testing.T) {
		items := embedded.ItemsBy("http://example.org/rels/orders")
		require.Len(t, items, 2)
		assert.Equal(t, "/o/1", items[0].Links().HrefOf("self"))
	})

	t.Run("miss is a normal empty result", func(t *testing.T) {
		assert.Empty(t, embedded.ItemsBy("x:unknown"))
		assert.Empty(t, embedded.ItemsBy("z:other"))
	})

	t.Run("ItemBy returns first item", func(t *testing.T) {
		item, ok := embedded.ItemBy("x:orders")
		require.True(t, ok)
		assert.Equal(t, "/o/1", item.Links().HrefOf("self"))
	})
}

func TestEmbeddedNoDedup(t *testing.T) {
	// embedded items are not deduplicated, even when structurally identical
	a := orderRep(t, "/o/1")
	b := orderRep(t, "/o/1")
	embedded := NewEmbedded("item", a, b)
	assert.Len(t, embedded.ItemsBy("item"), 2)
}

func TestEmbeddedBuilder(t *testing.T) {
	t.Run("later call for same rel overwrites", func(t *testing.T) {
		embedded := NewEmbeddedBuilder().
			With("item", orderRep(t, "/o/1"), orderRep(t, "/o/2")).
			With("item", orderRep(t, "/o/3")).
			Build()

		items := embedded.ItemsBy("item")
		require.Len(t, items, 1)
		assert.Equal(t, "/o/3", items[0].Links().HrefOf("self"))
	})

	t.Run("array promotion and explicit flag", func(t *testing.T) {
		embedded := NewEmbeddedBuilder().
			With("one", orderRep(t, "/o/1")).
			With("many", orderRep(t, "/o/1"), orderRep(t, "/o/2")).
			With("flagged", orderRep(t, "/o/1")).
			WithArrayRels("flagged").
			Build()

		assert.False(t, embedded.IsArray("one"))
		assert.True(t, embedded.IsArray("many"))
		assert.True(t, embedded.IsArray("flagged"))
	})

	t.Run("rels in insertion order", func(t *testing.T) {
		embedded := NewEmbeddedBuilder().
			With("b", orderRep(t, "/1")).
			With("a", orderRep(t, "/2")).
			Build()
		assert.Equal(t, []string{"b", "a"}, embedded.Rels())
	})
}

func TestItemsAs(t *testing.T) {
	type Order struct {
		Total int   `json:"total"`
		Links Links `json:"_links"`
	}

	curi := mustCuri(t, "x", "http://example.org/rels/{rel}")
	order := orderRep(t, "/o/1")
	require.NoError(t, order.SetAttribute("total", 42))

	rep := NewRepresentation(NewLinks(curi), NewEmbedded("x:orders", order))

	orders, err := ItemsAs[Order](rep.Embedded(), "http://example.org/rels/orders")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, 42, orders[0].Total)
	assert.Equal(t, "/o/1", orders[0].Links.HrefOf("self"))
}

func TestEmbeddedZeroValue(t *testing.T) {
	var embedded Embedded
	assert.True(t, embedded.IsEmpty())
	assert.Empty(t, embedded.Rels())
	assert.Empty(t, embedded.ItemsBy("item"))
}

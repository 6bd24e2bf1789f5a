package catalog

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "multicombo/internal/errors"
)

func fruit(t *testing.T) *Catalog {
	t.Helper()
	c := New()
	for _, e := range []Entry{
		{ID: "1", Label: "Apple"},
		{ID: "2", Label: "Banana", Selected: true},
		{ID: "3", Label: "Cherry"},
	} {
		_, err := c.Register(e)
		require.NoError(t, err)
	}
	return c
}

func TestRegisterKeepsInsertionOrder(t *testing.T) {
	c := fruit(t)
	want := []Option{{ID: "1", Label: "Apple"}, {ID: "2", Label: "Banana"}, {ID: "3", Label: "Cherry"}}
	if diff := cmp.Diff(want, c.All()); diff != "" {
		t.Fatalf("All() mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []string{"1", "2", "3"}, c.IDs())
	assert.Equal(t, 3, c.Len())
}

func TestRegisterDuplicateKeepsFirst(t *testing.T) {
	c := fruit(t)

	_, err := c.Register(Entry{ID: "1", Label: "Apricot"})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeDuplicateOptionID))
	assert.Contains(t, err.Error(), `"Apricot" was discarded`)

	opt, ok := c.Get("1")
	require.True(t, ok)
	assert.Equal(t, "Apple", opt.Label)
	assert.Equal(t, 3, c.Len())
}

func TestRegisterRejectsAuthoringErrors(t *testing.T) {
	t.Run("WrongElementKind", func(t *testing.T) {
		c := New()
		_, err := c.Register(Entry{Kind: "div", ID: "x", Label: "Nope"})
		assert.True(t, apperrors.IsCode(err, apperrors.CodeMalformedOption))
		assert.Equal(t, 0, c.Len())
	})

	t.Run("ExplicitListItemKind", func(t *testing.T) {
		c := New()
		_, err := c.Register(Entry{Kind: "LI", ID: "x", Label: "Fine"})
		assert.NoError(t, err)
	})

	t.Run("MissingID", func(t *testing.T) {
		c := New()
		_, err := c.Register(Entry{ID: "  ", Label: "Anonymous"})
		assert.True(t, apperrors.IsCode(err, apperrors.CodeMissingOptionID))
		assert.Equal(t, 0, c.Len())
	})

	t.Run("IDIsTrimmed", func(t *testing.T) {
		c := New()
		opt, err := c.Register(Entry{ID: " 7 ", Label: "Seven"})
		require.NoError(t, err)
		assert.Equal(t, "7", opt.ID)
		assert.True(t, c.Has("7"))
	})
}

func TestRemoveReindexes(t *testing.T) {
	c := fruit(t)
	require.True(t, c.Remove("1"))
	assert.False(t, c.Remove("1"))

	opt, ok := c.Get("3")
	require.True(t, ok)
	assert.Equal(t, "Cherry", opt.Label)
	assert.Equal(t, []string{"2", "3"}, c.IDs())
}

func TestCloneIsIndependent(t *testing.T) {
	c := fruit(t)
	clone := c.Clone()
	clone.Remove("2")
	_, err := clone.Register(Entry{ID: "4", Label: "Date"})
	require.NoError(t, err)

	assert.Equal(t, []string{"1", "2", "3"}, c.IDs())
	assert.Equal(t, []string{"1", "3", "4"}, clone.IDs())
}

func TestNilCatalogReads(t *testing.T) {
	var c *Catalog
	assert.Equal(t, 0, c.Len())
	assert.Nil(t, c.All())
	_, ok := c.Get("1")
	assert.False(t, ok)
}

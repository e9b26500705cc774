package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"Storefront/internal/catalog"
)

func sample() []catalog.Product {
	return []catalog.Product{
		{ID: 1, Name: "Pen", Price: 10, Description: "Blue ink"},
		{ID: 2, Name: "Notebook", Price: 45, Description: "Ruled pages"},
		{ID: 3, Name: "Ink Bottle", Price: 120},
	}
}

func TestFilter_EmptyQueryReturnsCatalogInOrder(t *testing.T) {
	ps := sample()

	for _, q := range []string{"", "   ", "\t\n"} {
		got := catalog.Filter(q, ps)
		assert.Equal(t, ps, got, "query %q", q)
	}
}

func TestFilter_MatchesNameOrDescriptionIgnoringCase(t *testing.T) {
	got := catalog.Filter("INK", sample())

	ids := make([]int64, 0, len(got))
	for _, p := range got {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []int64{1, 3}, ids)
}

func TestFilter_TrimsQuery(t *testing.T) {
	got := catalog.Filter("  ruled ", sample())
	assert.Len(t, got, 1)
	assert.Equal(t, int64(2), got[0].ID)
}

func TestFilter_NoMatchIsEmptyNotNil(t *testing.T) {
	got := catalog.Filter("stapler", sample())
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

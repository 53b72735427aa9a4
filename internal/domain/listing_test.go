package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupByCategory_FirstAppearanceOrder(t *testing.T) {
	shoes, hats := uuid.New(), uuid.New()
	window := []ProductSummary{
		{ID: uuid.New(), Name: "a", CategoryID: hats, CategoryName: "Hats"},
		{ID: uuid.New(), Name: "b", CategoryID: shoes, CategoryName: "Shoes"},
		{ID: uuid.New(), Name: "c", CategoryID: hats, CategoryName: "Hats"},
		{ID: uuid.New(), Name: "d", CategoryID: shoes, CategoryName: "Shoes"},
		{ID: uuid.New(), Name: "e", CategoryID: hats, CategoryName: "Hats"},
	}

	groups := GroupByCategory(window)
	require.Len(t, groups, 2)
	assert.Equal(t, hats, groups[0].CategoryID)
	assert.Equal(t, "Hats", groups[0].CategoryName)
	assert.Equal(t, shoes, groups[1].CategoryID)

	names := func(g CategoryGroup) []string {
		out := make([]string, 0, len(g.Products))
		for _, p := range g.Products {
			out = append(out, p.Name)
		}
		return out
	}
	assert.Equal(t, []string{"a", "c", "e"}, names(groups[0]))
	assert.Equal(t, []string{"b", "d"}, names(groups[1]))
}

func TestGroupByCategory_KeepsEveryRecord(t *testing.T) {
	cats := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	window := make([]ProductSummary, 0, 17)
	for i := 0; i < 17; i++ {
		window = append(window, ProductSummary{ID: uuid.New(), CategoryID: cats[i%3]})
	}

	total := 0
	for _, g := range GroupByCategory(window) {
		total += len(g.Products)
	}
	assert.Equal(t, 17, total)
	assert.Empty(t, GroupByCategory(nil))
}

func TestFirstPrice_UsesLowestPosition(t *testing.T) {
	p := Product{Variants: []Variant{
		{Price: 300, Position: 2},
		{Price: 100, Position: 0},
		{Price: 200, Position: 1},
	}}
	assert.EqualValues(t, 100, p.FirstPrice())
	assert.EqualValues(t, 0, (&Product{}).FirstPrice())
}

package products

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBuildProductFilterDefaults(t *testing.T) {
	query := BuildProductFilter(CatalogFilters{})

	// only the availability restriction, nothing else implied
	assert.Equal(t, bson.M{"isAvailable": true}, query)
}

func TestBuildProductFilter(t *testing.T) {
	min, max := 50.0, 200.0
	organic := true

	query := BuildProductFilter(CatalogFilters{
		Category:    "vegetables",
		Subcategory: "leafy",
		County:      "Nakuru",
		MinPrice:    &min,
		MaxPrice:    &max,
		IsOrganic:   &organic,
		Search:      "kale",
	})

	assert.Equal(t, true, query["isAvailable"])
	assert.Equal(t, "vegetables", query["category"])
	assert.Equal(t, "leafy", query["subcategory"])
	assert.Equal(t, primitive.Regex{Pattern: "Nakuru", Options: "i"}, query["location.county"])
	assert.Equal(t, bson.M{"$gte": 50.0, "$lte": 200.0}, query["price"])
	assert.Equal(t, true, query["isOrganic"])
	assert.Equal(t, bson.M{"$search": "kale"}, query["$text"])
	assert.NotContains(t, query, "isFresh")
}

func TestBuildProductFilterCategoryAll(t *testing.T) {
	query := BuildProductFilter(CatalogFilters{Category: "all"})
	assert.NotContains(t, query, "category")
}

func TestBuildProductFilterOpenEndedPriceRange(t *testing.T) {
	min := 100.0
	query := BuildProductFilter(CatalogFilters{MinPrice: &min})
	assert.Equal(t, bson.M{"$gte": 100.0}, query["price"])

	max := 300.0
	query = BuildProductFilter(CatalogFilters{MaxPrice: &max})
	assert.Equal(t, bson.M{"$lte": 300.0}, query["price"])
}

func TestBuildProductFilterFalseBooleanIsKept(t *testing.T) {
	fresh := false
	query := BuildProductFilter(CatalogFilters{IsFresh: &fresh})
	assert.Equal(t, false, query["isFresh"])
}

func TestParseCatalogFilters(t *testing.T) {
	q := url.Values{}
	q.Set("category", "fruits")
	q.Set("minPrice", "10.5")
	q.Set("isOrganic", "true")
	q.Set("isFresh", "false")
	q.Set("search", "mango")

	f := ParseCatalogFilters(q)

	assert.Equal(t, "fruits", f.Category)
	assert.NotNil(t, f.MinPrice)
	assert.Equal(t, 10.5, *f.MinPrice)
	assert.Nil(t, f.MaxPrice)
	assert.NotNil(t, f.IsOrganic)
	assert.True(t, *f.IsOrganic)
	assert.NotNil(t, f.IsFresh)
	assert.False(t, *f.IsFresh)
	assert.Equal(t, "mango", f.Search)
}

func TestParseCatalogFiltersAbsentKeys(t *testing.T) {
	f := ParseCatalogFilters(url.Values{})

	assert.Nil(t, f.MinPrice)
	assert.Nil(t, f.MaxPrice)
	assert.Nil(t, f.IsOrganic)
	assert.Nil(t, f.IsFresh)
	assert.Empty(t, f.Category)
}

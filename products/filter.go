package products

import (
	"net/url"
	"regexp"
	"strconv"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CatalogFilters are the optional, AND-combined catalog filters. Zero values
// mean "absent": the resulting query behaves as if the key was never sent.
type CatalogFilters struct {
	Category    string
	Subcategory string
	County      string
	MinPrice    *float64
	MaxPrice    *float64
	IsOrganic   *bool
	IsFresh     *bool
	Search      string
}

// ParseCatalogFilters reads the recognized query parameters.
func ParseCatalogFilters(q url.Values) CatalogFilters {
	f := CatalogFilters{
		Category:    q.Get("category"),
		Subcategory: q.Get("subcategory"),
		County:      q.Get("county"),
		Search:      q.Get("search"),
	}
	if v := q.Get("minPrice"); v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			f.MinPrice = &n
		}
	}
	if v := q.Get("maxPrice"); v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			f.MaxPrice = &n
		}
	}
	if v := q.Get("isOrganic"); v != "" {
		b := v == "true"
		f.IsOrganic = &b
	}
	if v := q.Get("isFresh"); v != "" {
		b := v == "true"
		f.IsFresh = &b
	}
	return f
}

// BuildProductFilter translates the filters into one compound query. The
// catalog only ever shows available products.
func BuildProductFilter(f CatalogFilters) bson.M {
	query := bson.M{"isAvailable": true}

	if f.Category != "" && f.Category != "all" {
		query["category"] = f.Category
	}
	if f.Subcategory != "" {
		query["subcategory"] = f.Subcategory
	}
	if f.County != "" {
		query["location.county"] = primitive.Regex{Pattern: regexp.QuoteMeta(f.County), Options: "i"}
	}
	if f.MinPrice != nil || f.MaxPrice != nil {
		price := bson.M{}
		if f.MinPrice != nil {
			price["$gte"] = *f.MinPrice
		}
		if f.MaxPrice != nil {
			price["$lte"] = *f.MaxPrice
		}
		query["price"] = price
	}
	if f.IsOrganic != nil {
		query["isOrganic"] = *f.IsOrganic
	}
	if f.IsFresh != nil {
		query["isFresh"] = *f.IsFresh
	}
	if f.Search != "" {
		query["$text"] = bson.M{"$search": f.Search}
	}
	return query
}

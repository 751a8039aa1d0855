package repositories

import (
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Fields matched by the free-text product search.
var productSearchFields = []string{"name", "brand", "category", "gender", "color", "productCode"}

// Fields matched by the free-text order search.
var orderSearchFields = []string{"orderNumber", "status"}

// ProductFilter captures the catalog listing query parameters.
type ProductFilter struct {
	Search     string
	Categories []string
	Colors     []string
	Brands     []string
	Genders    []string
	MinPrice   *float64
	MaxPrice   *float64
	InStock    *bool
	Sort       string
	Limit      int64
}

// BSON builds the Mongo filter document.
func (f ProductFilter) BSON() bson.M {
	filter := bson.M{}

	if expr := searchRegex(f.Search); expr != nil {
		or := make([]bson.M, 0, len(productSearchFields))
		for _, field := range productSearchFields {
			or = append(or, bson.M{field: *expr})
		}
		filter["$or"] = or
	}

	addIn(filter, "category", f.Categories)
	addIn(filter, "color", f.Colors)
	addIn(filter, "brand", f.Brands)
	addIn(filter, "gender", f.Genders)

	if f.MinPrice != nil || f.MaxPrice != nil {
		price := bson.M{}
		if f.MinPrice != nil {
			price["$gte"] = *f.MinPrice
		}
		if f.MaxPrice != nil {
			price["$lte"] = *f.MaxPrice
		}
		filter["price"] = price
	}

	if f.InStock != nil {
		filter["inStock"] = *f.InStock
	}

	return filter
}

// SortBSON resolves the sort key. A "-" prefix means descending; the default
// is newest first.
func (f ProductFilter) SortBSON() bson.D {
	return sortSpec(f.Sort)
}

// OrderFilter captures the order listing query parameters.
type OrderFilter struct {
	Search string
	Status string
	Sort   string
	Limit  int64
}

// BSON builds the Mongo filter document.
func (f OrderFilter) BSON() bson.M {
	filter := bson.M{}

	if expr := searchRegex(f.Search); expr != nil {
		or := make([]bson.M, 0, len(orderSearchFields))
		for _, field := range orderSearchFields {
			or = append(or, bson.M{field: *expr})
		}
		filter["$or"] = or
	}

	if f.Status != "" {
		filter["status"] = f.Status
	}

	return filter
}

// SortBSON resolves the sort key, defaulting to newest first.
func (f OrderFilter) SortBSON() bson.D {
	return sortSpec(f.Sort)
}

// searchRegex turns a free-text query into a case-insensitive alternation of
// its whitespace-separated terms. Terms are escaped so user input cannot
// inject regex syntax.
func searchRegex(search string) *primitive.Regex {
	terms := strings.Fields(search)
	if len(terms) == 0 {
		return nil
	}
	quoted := make([]string, len(terms))
	for i, t := range terms {
		quoted[i] = regexp.QuoteMeta(t)
	}
	return &primitive.Regex{Pattern: strings.Join(quoted, "|"), Options: "i"}
}

func addIn(filter bson.M, field string, values []string) {
	if len(values) > 0 {
		filter[field] = bson.M{"$in": values}
	}
}

func sortSpec(sort string) bson.D {
	if sort == "" {
		return bson.D{{Key: "createdAt", Value: -1}}
	}
	dir := 1
	key := sort
	if strings.HasPrefix(sort, "-") {
		dir = -1
		key = sort[1:]
	}
	return bson.D{{Key: key, Value: dir}}
}

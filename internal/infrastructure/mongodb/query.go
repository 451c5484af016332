package mongodb

import (
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"remotcyberhelp/internal/shared/query"
)

// searchClause matches term case-insensitively in any of fields.
func searchClause(term string, fields ...string) bson.A {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil
	}
	pattern := bson.M{"$regex": regexp.QuoteMeta(term), "$options": "i"}
	or := make(bson.A, 0, len(fields))
	for _, f := range fields {
		or = append(or, bson.M{f: pattern})
	}
	return or
}

// findOptions applies whitelisted sorting and pagination. Sortable field
// names double as document keys.
func findOptions(filter query.BaseFilter, allowed map[string]string, fallback bson.D) *options.FindOptions {
	sort := fallback
	if field, ok := allowed[filter.SortBy]; ok {
		dir := 1
		if filter.IsDescending() {
			dir = -1
		}
		sort = bson.D{{Key: field, Value: dir}}
	}
	return options.Find().
		SetSort(sort).
		SetSkip(int64(filter.Offset())).
		SetLimit(int64(filter.Limit()))
}

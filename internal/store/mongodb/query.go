package mongodb

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/ayurbloom/catalog-service/internal/store"
)

// filterToBSON translates the neutral filter language into a MongoDB filter
// document. Substring conditions become case-insensitive $regex matches; the
// pattern is passed through verbatim, so malformed regex input surfaces as a
// query execution error and takes the caller's fallback path.
func filterToBSON(f store.Filter) bson.M {
	m := bson.M{}
	for _, c := range f {
		applyCondition(m, c)
	}
	return m
}

func applyCondition(m bson.M, c store.Condition) {
	switch c.Op {
	case store.OpEqual:
		m[c.Field] = c.Value
	case store.OpContains:
		m[c.Field] = bson.M{"$regex": c.Value, "$options": "i"}
	case store.OpElemContains:
		m[c.Field] = bson.M{"$elemMatch": bson.M{"$regex": c.Value, "$options": "i"}}
	case store.OpGTE:
		mergeBound(m, c.Field, "$gte", c.Value)
	case store.OpLTE:
		mergeBound(m, c.Field, "$lte", c.Value)
	case store.OpOr:
		ors := make([]bson.M, 0, len(c.Or))
		for _, sub := range c.Or {
			subM := bson.M{}
			applyCondition(subM, sub)
			ors = append(ors, subM)
		}
		m["$or"] = ors
	}
}

// mergeBound folds $gte/$lte for the same field into one range document.
func mergeBound(m bson.M, field, op string, value any) {
	if existing, ok := m[field].(bson.M); ok {
		existing[op] = value
		return
	}
	m[field] = bson.M{op: value}
}

// sortToBSON maps a sort spec to a MongoDB sort document.
func sortToBSON(s store.Sort) bson.D {
	dir := 1
	if s.Descending {
		dir = -1
	}
	return bson.D{{Key: s.Field, Value: dir}}
}

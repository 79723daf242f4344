// Package mongodb implements the document store on MongoDB. External ids are
// the hex form of the internal ObjectID.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/ayurbloom/catalog-service/internal/store"
)

// connectTimeout bounds server selection during the one-time startup connect.
const connectTimeout = 5 * time.Second

// Store is the MongoDB-backed document store.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

var _ store.Store = (*Store)(nil)

// Connect establishes the single store connection used for the process
// lifetime and validates it with a ping.
func Connect(ctx context.Context, uri, dbName string) (*Store, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetServerSelectionTimeout(connectTimeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	return &Store{
		client: client,
		db:     client.Database(dbName),
	}, nil
}

// Close disconnects the underlying client.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Insert adds a document, stamping created_at/updated_at when unset, and
// returns the new ObjectID as a hex string.
func (s *Store) Insert(ctx context.Context, collection string, doc any) (string, error) {
	m, err := toDocument(doc)
	if err != nil {
		return "", err
	}
	delete(m, "_id")

	now := time.Now().UTC()
	stampIfUnset(m, "created_at", now)
	stampIfUnset(m, "updated_at", now)

	res, err := s.db.Collection(collection).InsertOne(ctx, m)
	if err != nil {
		return "", fmt.Errorf("insert into %s: %w", collection, err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("insert into %s: unexpected id type %T", collection, res.InsertedID)
	}
	return oid.Hex(), nil
}

// Find decodes all documents matching the query into out.
func (s *Store) Find(ctx context.Context, collection string, q store.Query, out any) error {
	findOpts := options.Find()
	if q.Sort != nil {
		findOpts.SetSort(sortToBSON(*q.Sort))
	}
	if q.Limit > 0 {
		findOpts.SetLimit(q.Limit)
	}

	cur, err := s.db.Collection(collection).Find(ctx, filterToBSON(q.Filter), findOpts)
	if err != nil {
		return fmt.Errorf("find in %s: %w", collection, err)
	}
	defer cur.Close(ctx)

	if err := cur.All(ctx, out); err != nil {
		return fmt.Errorf("decode results from %s: %w", collection, err)
	}
	return nil
}

// FindByID decodes the document with the given hex id into out. A malformed
// id is not found, not an error.
func (s *Store) FindByID(ctx context.Context, collection, id string, out any) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return store.ErrNotFound
	}

	err = s.db.Collection(collection).FindOne(ctx, bson.M{"_id": oid}).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return store.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("find %s/%s: %w", collection, id, err)
	}
	return nil
}

// ReplaceByID overwrites the stored fields with doc and refreshes updated_at.
// A modified count of zero is reported identically for a missing id and for
// an update whose new values equal the old ones.
func (s *Store) ReplaceByID(ctx context.Context, collection, id string, doc any) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	m, err := toDocument(doc)
	if err != nil {
		return false, err
	}
	delete(m, "_id")
	// A zero created_at means the caller did not supply one; leave the
	// stored value untouched.
	if v, ok := m["created_at"]; ok && isUnsetTime(v) {
		delete(m, "created_at")
	}
	m["updated_at"] = time.Now().UTC()

	res, err := s.db.Collection(collection).UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": m})
	if err != nil {
		return false, fmt.Errorf("update %s/%s: %w", collection, id, err)
	}
	return res.ModifiedCount > 0, nil
}

// DeleteByID removes the identified document. A malformed id deletes nothing.
func (s *Store) DeleteByID(ctx context.Context, collection, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	res, err := s.db.Collection(collection).DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, fmt.Errorf("delete %s/%s: %w", collection, id, err)
	}
	return res.DeletedCount > 0, nil
}

// Count returns the number of documents in the collection.
func (s *Store) Count(ctx context.Context, collection string) (int64, error) {
	n, err := s.db.Collection(collection).CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", collection, err)
	}
	return n, nil
}

// Collections lists the collection names in the database.
func (s *Store) Collections(ctx context.Context) ([]string, error) {
	names, err := s.db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	return names, nil
}

// Ping verifies the connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

// toDocument converts an arbitrary struct or map into a mutable bson document.
func toDocument(doc any) (bson.M, error) {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("unmarshal document: %w", err)
	}
	return m, nil
}

// stampIfUnset sets m[key] = now unless the caller supplied a real timestamp.
func stampIfUnset(m bson.M, key string, now time.Time) {
	if v, ok := m[key]; ok && !isUnsetTime(v) {
		return
	}
	m[key] = now
}

// isUnsetTime reports whether v is a missing/zero timestamp value. Go's zero
// time marshals to a negative millisecond epoch, so non-positive DateTime
// values are treated as unset.
func isUnsetTime(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case time.Time:
		return t.IsZero()
	case primitive.DateTime:
		return t <= 0
	default:
		return false
	}
}

package resultstore

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

const ResultCollection = "results"

// Record is a recovered preimage. Hash is stored lowercase and is the key.
type Record struct {
	Hash      string    `bson:"_id" json:"hash"`
	Plaintext string    `bson:"plaintext" json:"plaintext"`
	Strategy  string    `bson:"strategy" json:"strategy"`
	FoundAt   time.Time `bson:"found_at" json:"found_at"`
}

// ResultStore is a write-only sink for recovered preimages. Nothing in a
// search reads it back.
type ResultStore interface {
	Save(ctx context.Context, rec *Record) error
}

type resultStore struct {
	database *mongo.Database
}

func New(database *mongo.Database) ResultStore {
	return &resultStore{database: database}
}

func (s *resultStore) collection() *mongo.Collection {
	return s.database.Collection(ResultCollection)
}

// Save inserts rec, or overwrites the stored record when the hash is already known.
func (s *resultStore) Save(ctx context.Context, rec *Record) error {
	r := normalize(rec)
	if _, err := s.collection().InsertOne(ctx, &r); err != nil {
		if !mongo.IsDuplicateKeyError(err) {
			return errors.Wrap(err, "insert result")
		}
		if _, err = s.collection().UpdateOne(ctx, bson.M{"_id": r.Hash}, updateOf(r)); err != nil {
			return errors.Wrap(err, "update result")
		}
	}
	return nil
}

func normalize(rec *Record) Record {
	r := *rec
	r.Hash = strings.ToLower(strings.TrimSpace(r.Hash))
	if r.FoundAt.IsZero() {
		r.FoundAt = time.Now().UTC()
	}
	return r
}

func updateOf(r Record) bson.M {
	return bson.M{"$set": bson.M{
		"plaintext": r.Plaintext,
		"strategy":  r.Strategy,
		"found_at":  r.FoundAt,
	}}
}

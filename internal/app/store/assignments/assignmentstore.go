package assignmentstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dalemusser/danahub/internal/app/assignments"
	"github.com/dalemusser/danahub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "assignments"
	countersName   = "counters"
)

// assignmentDoc is the document in the `assignments` collection. The
// confirmation variant is flattened into confirmed/confirmed_on.
type assignmentDoc struct {
	ID          int64             `bson:"_id"`
	TempleDana  models.TempleDana `bson:"temple_dana"`
	Family      models.Family     `bson:"family"`
	Date        models.Date       `bson:"date"`
	Confirmed   bool              `bson:"confirmed"`
	ConfirmedOn models.Date       `bson:"confirmed_on,omitempty"`

	// Folded names back the case-insensitive indexes.
	FamilyNameCI string `bson:"family_name_ci"`
	TempleNameCI string `bson:"temple_name_ci"`

	CreatedAt time.Time  `bson:"created_at"`
	UpdatedAt *time.Time `bson:"updated_at,omitempty"`
}

func toDoc(a models.Assignment) assignmentDoc {
	d := assignmentDoc{
		ID:         a.ID,
		TempleDana: a.TempleDana,
		Family:     a.Family,
		Date:       a.Date,

		FamilyNameCI: text.Fold(a.Family.FamilyName),
		TempleNameCI: text.Fold(a.TempleDana.Temple.Name),
	}
	if on, ok := a.Confirmation.ConfirmedOn(); ok {
		d.Confirmed = true
		d.ConfirmedOn = on
	}
	return d
}

func (d assignmentDoc) model() models.Assignment {
	a := models.Assignment{
		ID:         d.ID,
		TempleDana: d.TempleDana,
		Family:     d.Family,
		Date:       d.Date,
	}
	if d.Confirmed {
		a.Confirmation = models.Confirmed(d.ConfirmedOn)
	}
	return a
}

// Store keeps assignments in MongoDB. IDs come from a counter document so
// they stay small integers like the external API's.
type Store struct {
	c        *mongo.Collection
	counters *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{
		c:        db.Collection(CollectionName),
		counters: db.Collection(countersName),
	}
}

// List returns every assignment ordered by ID.
func (s *Store) List(ctx context.Context) ([]models.Assignment, error) {
	cur, err := s.c.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var docs []assignmentDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]models.Assignment, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.model())
	}
	return out, nil
}

// Get returns a single assignment by ID.
func (s *Store) Get(ctx context.Context, id int64) (models.Assignment, error) {
	var d assignmentDoc
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Assignment{}, assignments.ErrNotFound
	}
	if err != nil {
		return models.Assignment{}, err
	}
	return d.model(), nil
}

// Create inserts a with the next ID from the counter.
func (s *Store) Create(ctx context.Context, a models.Assignment) (models.Assignment, error) {
	id, err := s.nextID(ctx)
	if err != nil {
		return models.Assignment{}, err
	}
	a.ID = id
	d := toDoc(a)
	d.CreatedAt = time.Now().UTC()
	if _, err := s.c.InsertOne(ctx, d); err != nil {
		return models.Assignment{}, err
	}
	return a, nil
}

// Update replaces the assignment identified by a.ID, keeping created_at.
func (s *Store) Update(ctx context.Context, a models.Assignment) (models.Assignment, error) {
	d := toDoc(a)
	now := time.Now().UTC()
	set := bson.M{
		"temple_dana":    d.TempleDana,
		"family":         d.Family,
		"date":           d.Date,
		"confirmed":      d.Confirmed,
		"family_name_ci": d.FamilyNameCI,
		"temple_name_ci": d.TempleNameCI,
		"updated_at":     now,
	}
	update := bson.M{"$set": set}
	if d.Confirmed {
		set["confirmed_on"] = d.ConfirmedOn
	} else {
		update["$unset"] = bson.M{"confirmed_on": ""}
	}
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": a.ID}, update)
	if err != nil {
		return models.Assignment{}, err
	}
	if res.MatchedCount == 0 {
		return models.Assignment{}, assignments.ErrNotFound
	}
	return a, nil
}

// Delete removes the assignment with the given ID.
func (s *Store) Delete(ctx context.Context, id int64) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return assignments.ErrNotFound
	}
	return nil
}

// Seed inserts the given assignments if the collection is empty and moves
// the counter past their IDs. It reports how many were inserted.
func (s *Store) Seed(ctx context.Context, seed []models.Assignment) (int, error) {
	n, err := s.c.EstimatedDocumentCount(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 || len(seed) == 0 {
		return 0, nil
	}
	var maxID int64
	docs := make([]any, 0, len(seed))
	now := time.Now().UTC()
	for _, a := range seed {
		d := toDoc(a)
		d.CreatedAt = now
		docs = append(docs, d)
		if a.ID > maxID {
			maxID = a.ID
		}
	}
	if _, err := s.c.InsertMany(ctx, docs); err != nil {
		return 0, fmt.Errorf("seed assignments: %w", err)
	}
	_, err = s.counters.UpdateOne(ctx,
		bson.M{"_id": CollectionName},
		bson.M{"$max": bson.M{"seq": maxID}},
		options.Update().SetUpsert(true))
	if err != nil {
		return 0, fmt.Errorf("seed counter: %w", err)
	}
	return len(docs), nil
}

func (s *Store) nextID(ctx context.Context) (int64, error) {
	var counter struct {
		Seq int64 `bson:"seq"`
	}
	err := s.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": CollectionName},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("next assignment id: %w", err)
	}
	return counter.Seq, nil
}

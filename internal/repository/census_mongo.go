package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/futig/census-agent/internal/entity"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mongoCollection is the subset of *mongo.Collection the census store uses
type mongoCollection interface {
	ReplaceOne(ctx context.Context, filter interface{}, replacement interface{}, opts ...*options.ReplaceOptions) (*mongo.UpdateResult, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (*mongo.Cursor, error)
}

// censusDocument is one record in the census collection
type censusDocument struct {
	CaseID    string            `bson:"caseId"`
	RecordKey string            `bson:"recordKey"`
	Type      entity.RecordType `bson:"type"`
	Record    interface{}       `bson:"record"`
	UpdatedAt time.Time         `bson:"updatedAt"`
}

// storedCensusDocument is censusDocument as decoded from the collection
type storedCensusDocument struct {
	CaseID    string            `bson:"caseId"`
	RecordKey string            `bson:"recordKey"`
	Type      entity.RecordType `bson:"type"`
	Record    bson.Raw          `bson:"record"`
}

var _ CensusRepository = &CensusMongo{}

// CensusMongo implements CensusRepository on a MongoDB collection
type CensusMongo struct {
	collection mongoCollection
	now        func() time.Time
}

func NewCensusMongo(collection mongoCollection) *CensusMongo {
	return &CensusMongo{
		collection: collection,
		now:        time.Now,
	}
}

// EnsureCensusIndexes creates the unique record key index
func EnsureCensusIndexes(ctx context.Context, collection *mongo.Collection) error {
	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "caseId", Value: 1}, {Key: "recordKey", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create census index: %w", err)
	}
	return nil
}

func (r *CensusMongo) WriteSurvey(ctx context.Context, record *entity.SurveyRecord) error {
	row, err := surveyRow(record)
	if err != nil {
		return err
	}
	return r.replace(ctx, row)
}

func (r *CensusMongo) WriteCallback(ctx context.Context, record *entity.CallbackRecord) error {
	row, err := callbackRow(record)
	if err != nil {
		return err
	}
	return r.replace(ctx, row)
}

func (r *CensusMongo) replace(ctx context.Context, row *censusRow) error {
	// Stored from the JSON form so field names match the other backends
	var record bson.D
	if err := bson.UnmarshalExtJSON(row.payload, false, &record); err != nil {
		return fmt.Errorf("convert census record %s: %w", row.recordKey, err)
	}

	filter := bson.M{"caseId": row.caseID, "recordKey": row.recordKey}
	doc := censusDocument{
		CaseID:    row.caseID,
		RecordKey: row.recordKey,
		Type:      row.recordType,
		Record:    record,
		UpdatedAt: r.now().UTC(),
	}

	if _, err := r.collection.ReplaceOne(ctx, filter, doc, options.Replace().SetUpsert(true)); err != nil {
		return fmt.Errorf("replace census record: %w", err)
	}
	return nil
}

func (r *CensusMongo) ListRecords(ctx context.Context, caseID string) ([]*entity.CensusRecord, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"caseId": caseID}, options.Find().SetSort(bson.D{{Key: "recordKey", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find census records: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []storedCensusDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode census records: %w", err)
	}

	records := make([]*entity.CensusRecord, 0, len(docs))
	for _, doc := range docs {
		payload, err := bson.MarshalExtJSON(doc.Record, false, false)
		if err != nil {
			return nil, fmt.Errorf("convert census record %s: %w", doc.RecordKey, err)
		}
		records = append(records, &entity.CensusRecord{
			CaseID:    doc.CaseID,
			RecordKey: doc.RecordKey,
			Type:      doc.Type,
			Payload:   payload,
		})
	}
	return records, nil
}

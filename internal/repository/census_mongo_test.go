package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/futig/census-agent/internal/entity"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// fakeCollection keeps upserted documents keyed by case id and record key
type fakeCollection struct {
	docs  map[string]censusDocument
	order []string
	err   error
}

func newFakeCollection() *fakeCollection {
	return &fakeCollection{docs: map[string]censusDocument{}}
}

func (c *fakeCollection) ReplaceOne(_ context.Context, filter interface{}, replacement interface{}, opts ...*options.ReplaceOptions) (*mongo.UpdateResult, error) {
	if c.err != nil {
		return nil, c.err
	}
	f := filter.(bson.M)
	key := f["caseId"].(string) + "/" + f["recordKey"].(string)
	if _, ok := c.docs[key]; !ok {
		c.order = append(c.order, key)
	}
	c.docs[key] = replacement.(censusDocument)
	return &mongo.UpdateResult{MatchedCount: 1}, nil
}

func (c *fakeCollection) Find(_ context.Context, filter interface{}, opts ...*options.FindOptions) (*mongo.Cursor, error) {
	if c.err != nil {
		return nil, c.err
	}
	caseID := filter.(bson.M)["caseId"].(string)

	var docs []interface{}
	for _, key := range c.order {
		if doc := c.docs[key]; doc.CaseID == caseID {
			docs = append(docs, doc)
		}
	}
	return mongo.NewCursorFromDocuments(docs, nil, nil)
}

func TestCensusMongo(t *testing.T) {
	ctx := context.Background()
	collection := newFakeCollection()
	repo := NewCensusMongo(collection)
	repo.now = func() time.Time { return time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC) }

	if err := repo.WriteCallback(ctx, callbackFixture("CASE-1")); err != nil {
		t.Fatalf("write callback: %v", err)
	}
	if err := repo.WriteSurvey(ctx, surveyFixture("CASE-1")); err != nil {
		t.Fatalf("write survey: %v", err)
	}
	if err := repo.WriteSurvey(ctx, surveyFixture("CASE-1")); err != nil {
		t.Fatalf("rewrite survey: %v", err)
	}
	if len(collection.docs) != 2 {
		t.Fatalf("documents = %d, want 2", len(collection.docs))
	}

	records, err := repo.ListRecords(ctx, "CASE-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("records = %d, want 2", len(records))
	}

	var survey entity.SurveyRecord
	if err := sonic.Unmarshal(records[1].Payload, &survey); err != nil {
		t.Fatalf("unmarshal payload %s: %v", records[1].Payload, err)
	}
	if survey.HouseholdCount != 1 || survey.Persons[0].FirstName != "Ana" || *survey.Persons[0].Age != 41 {
		t.Errorf("survey = %+v", survey)
	}
}

func TestCensusMongoErrors(t *testing.T) {
	ctx := context.Background()
	collection := newFakeCollection()
	repo := NewCensusMongo(collection)

	if err := repo.WriteSurvey(ctx, surveyFixture("")); !errors.Is(err, entity.ErrMissingCaseID) {
		t.Errorf("missing case id error = %v", err)
	}

	collection.err = errors.New("server selection timeout")
	if err := repo.WriteSurvey(ctx, surveyFixture("CASE-1")); !errors.Is(err, collection.err) {
		t.Errorf("write error = %v", err)
	}
	if _, err := repo.ListRecords(ctx, "CASE-1"); !errors.Is(err, collection.err) {
		t.Errorf("list error = %v", err)
	}
}

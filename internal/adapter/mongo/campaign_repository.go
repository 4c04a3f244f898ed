// Package mongo stores campaigns as MongoDB documents.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"campaign-manager/internal/core/domain"
	"campaign-manager/internal/core/port"
)

// CampaignRepository implements port.CampaignRepository on a MongoDB
// collection. Optimistic concurrency is enforced by filtering replacements
// on metadata.version.
type CampaignRepository struct {
	coll *mongo.Collection
	now  func() time.Time
}

// NewCampaignRepository returns a repository over coll.
func NewCampaignRepository(coll *mongo.Collection) *CampaignRepository {
	return &CampaignRepository{coll: coll, now: time.Now}
}

var _ port.CampaignRepository = (*CampaignRepository)(nil)

// EnsureIndexes creates the indexes listing and scoping rely on.
func (r *CampaignRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "organizationId", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "organizationId", Value: 1}, {Key: "createdBy", Value: 1}}},
		{Keys: bson.D{{Key: "organizationId", Value: 1}, {Key: "type", Value: 1}}},
		{Keys: bson.D{{Key: "organizationId", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "team.members.userId", Value: 1}}},
		{Keys: bson.D{{Key: "tags", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("create campaign indexes: %w", err)
	}
	return nil
}

func (r *CampaignRepository) Create(ctx context.Context, c domain.Campaign) error {
	_, err := r.coll.InsertOne(ctx, c)
	if mongo.IsDuplicateKeyError(err) {
		return domain.NewError(domain.ErrConflict, "id", "campaign "+c.ID+" already exists")
	}
	if err != nil {
		return fmt.Errorf("insert campaign: %w", err)
	}
	return nil
}

func (r *CampaignRepository) Get(ctx context.Context, orgID, id string) (*domain.Campaign, error) {
	var c domain.Campaign
	err := r.coll.FindOne(ctx, bson.M{"_id": id, "organizationId": orgID}).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.NotFoundError(orgID, id)
	}
	if err != nil {
		return nil, fmt.Errorf("find campaign: %w", err)
	}
	return &c, nil
}

func (r *CampaignRepository) Update(ctx context.Context, c domain.Campaign, expectedVersion int64) (*domain.Campaign, error) {
	c.Metadata.Version = expectedVersion + 1
	c.Metadata.LastModified = r.now().UTC()
	res, err := r.coll.ReplaceOne(ctx, bson.M{
		"_id":              c.ID,
		"organizationId":   c.OrganizationID,
		"metadata.version": expectedVersion,
	}, c)
	if err != nil {
		return nil, fmt.Errorf("replace campaign: %w", err)
	}
	if res.MatchedCount == 0 {
		cur, err := r.Get(ctx, c.OrganizationID, c.ID)
		if err != nil {
			return nil, err
		}
		return nil, domain.ConflictError(c.ID, expectedVersion, cur.Metadata.Version)
	}
	return &c, nil
}

func (r *CampaignRepository) Delete(ctx context.Context, orgID, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id, "organizationId": orgID})
	if err != nil {
		return fmt.Errorf("delete campaign: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.NotFoundError(orgID, id)
	}
	return nil
}

func (r *CampaignRepository) List(ctx context.Context, f port.ListFilter, page port.Page) ([]domain.Campaign, int64, error) {
	page = page.Normalize()
	filter := toFilter(f)
	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count campaigns: %w", err)
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(int64(page.Offset())).
		SetLimit(int64(page.Limit))
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("find campaigns: %w", err)
	}
	campaigns := make([]domain.Campaign, 0, page.Limit)
	if err = cur.All(ctx, &campaigns); err != nil {
		return nil, 0, fmt.Errorf("decode campaigns: %w", err)
	}
	return campaigns, total, nil
}

// statusTotals is one row of the summary aggregation.
type statusTotals struct {
	Status      string `bson:"_id"`
	Count       int64  `bson:"count"`
	Budget      int64  `bson:"budget"`
	Spent       int64  `bson:"spent"`
	Impressions int64  `bson:"impressions"`
	Clicks      int64  `bson:"clicks"`
	Conversions int64  `bson:"conversions"`
}

func (r *CampaignRepository) Summary(ctx context.Context, f port.ListFilter) (*port.Summary, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: toFilter(f)}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$status"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "budget", Value: bson.D{{Key: "$sum", Value: "$budget.total"}}},
			{Key: "spent", Value: bson.D{{Key: "$sum", Value: "$budget.spent"}}},
			{Key: "impressions", Value: bson.D{{Key: "$sum", Value: "$performance.metrics.impressions"}}},
			{Key: "clicks", Value: bson.D{{Key: "$sum", Value: "$performance.metrics.clicks"}}},
			{Key: "conversions", Value: bson.D{{Key: "$sum", Value: "$performance.metrics.conversions"}}},
		}}},
	}
	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate campaigns: %w", err)
	}
	var rows []statusTotals
	if err = cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode summary: %w", err)
	}
	s := &port.Summary{ByStatus: make(map[domain.Status]int64)}
	for _, row := range rows {
		s.ByStatus[domain.Status(row.Status)] = row.Count
		s.Campaigns += row.Count
		s.TotalBudget += row.Budget
		s.TotalSpent += row.Spent
		s.Impressions += row.Impressions
		s.Clicks += row.Clicks
		s.Conversions += row.Conversions
	}
	s.Finish()
	return s, nil
}

func toFilter(f port.ListFilter) bson.M {
	filter := bson.M{"organizationId": f.OrganizationID}
	if f.VisibleTo != "" {
		filter["$or"] = bson.A{
			bson.M{"createdBy": f.VisibleTo},
			bson.M{"team.members.userId": f.VisibleTo},
		}
	}
	if f.Status != "" {
		filter["status"] = string(f.Status)
	}
	if f.Type != "" {
		filter["type"] = string(f.Type)
	}
	if f.Priority != "" {
		filter["priority"] = string(f.Priority)
	}
	if f.Tag != "" {
		filter["tags"] = f.Tag
	}
	if f.Search != "" {
		filter["title"] = bson.M{"$regex": regexp.QuoteMeta(f.Search), "$options": "i"}
	}
	return filter
}

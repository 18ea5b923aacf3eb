package mongodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/calendar"
	"github.com/cmlabs-hris/workforce-backend-go/internal/pkg/database"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type workingDaysCache struct {
	coll *mongo.Collection
}

func NewWorkingDaysCache(db *database.MongoDB) calendar.WorkingDaysCache {
	return &workingDaysCache{coll: db.Collection(workingDaysCollection)}
}

// Upsert implements calendar.WorkingDaysCache.
func (c *workingDaysCache) Upsert(ctx context.Context, wd calendar.WorkingDays) error {
	doc := newWorkingDaysDocument(wd)

	_, err := c.coll.ReplaceOne(ctx, bson.M{"_id": doc.Key}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to upsert working days %s: %w", doc.Key, err)
	}
	return nil
}

// Get implements calendar.WorkingDaysCache.
func (c *workingDaysCache) Get(ctx context.Context, year, month int) (calendar.WorkingDays, error) {
	var doc workingDaysDocument
	err := c.coll.FindOne(ctx, bson.M{"_id": calendar.CacheKey(year, month)}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return calendar.WorkingDays{}, calendar.ErrCacheMiss
		}
		return calendar.WorkingDays{}, fmt.Errorf("failed to get working days: %w", err)
	}

	wd, err := doc.toEntity()
	if err != nil {
		return calendar.WorkingDays{}, fmt.Errorf("invalid working days document %s: %w", doc.Key, err)
	}
	return wd, nil
}

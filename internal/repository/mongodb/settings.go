package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/calendar"
	"github.com/cmlabs-hris/workforce-backend-go/internal/pkg/database"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type settingsRepository struct {
	coll *mongo.Collection
}

func NewSettingsRepository(db *database.MongoDB) calendar.SettingsRepository {
	return &settingsRepository{coll: db.Collection(settingsCollection)}
}

// GetSaturdayOff implements calendar.SettingsRepository.
func (r *settingsRepository) GetSaturdayOff(ctx context.Context, year, month int) (calendar.SaturdayOff, error) {
	var doc saturdayOffDocument
	err := r.coll.FindOne(ctx, bson.M{"_id": calendar.SaturdayOffKey(year, month)}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return calendar.SaturdayOff{Year: year, Month: month, Dates: []time.Time{}}, nil
		}
		return calendar.SaturdayOff{}, fmt.Errorf("failed to get saturday-off settings: %w", err)
	}

	s, err := doc.toEntity()
	if err != nil {
		return calendar.SaturdayOff{}, fmt.Errorf("invalid saturday-off settings %s: %w", doc.Key, err)
	}
	return s, nil
}

// SaveSaturdayOff implements calendar.SettingsRepository.
func (r *settingsRepository) SaveSaturdayOff(ctx context.Context, s calendar.SaturdayOff) (calendar.SaturdayOff, error) {
	doc := newSaturdayOffDocument(s)

	_, err := r.coll.ReplaceOne(ctx, bson.M{"_id": doc.Key}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return calendar.SaturdayOff{}, fmt.Errorf("failed to save saturday-off settings: %w", err)
	}
	return s, nil
}

package mongodb

import (
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/edumanage/backend/core/stats"
)

// totalsDocID is the fixed identifier of the single counters document.
const totalsDocID = "totals"

type statsRepository struct {
	coll *mongo.Collection
}

var _ stats.Repository = (*statsRepository)(nil) // interface compliance check

func NewStatsRepository(db *DB) stats.Repository {
	return &statsRepository{coll: db.db.Collection(statsCollection)}
}

func (repo *statsRepository) IncrementField(field string, n int64) error {
	ctx, cancel := opCtx()
	defer cancel()

	_, err := repo.coll.UpdateOne(ctx,
		bson.M{"_id": totalsDocID},
		bson.M{"$inc": bson.M{field: n}},
		options.Update().SetUpsert(true),
	)
	return errors.Wrap(err, "incrementing stats counter")
}

func (repo *statsRepository) GetTotals() (stats.Totals, error) {
	ctx, cancel := opCtx()
	defer cancel()

	var totals stats.Totals
	if err := repo.coll.FindOne(ctx, bson.M{"_id": totalsDocID}).Decode(&totals); err != nil {
		if err == mongo.ErrNoDocuments {
			// lazily created on first increment; absent means all zeros
			return stats.Totals{ID: totalsDocID}, nil
		}
		return stats.Totals{}, errors.Wrap(err, "finding stats totals")
	}
	return totals, nil
}

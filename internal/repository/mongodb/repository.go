package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/prodtracker/internal/domain/models"
)

// Repository defines the interface for report storage.
type Repository interface {
	SaveDailyReport(ctx context.Context, report models.DailyReport) error
}

// MongoDBRepository archives daily reports in MongoDB, one document per date.
type MongoDBRepository struct {
	client   *mongo.Client
	dbName   string
	collName string
}

// NewMongoDBRepository creates a new MongoDB repository.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string) (*MongoDBRepository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoDBRepository{
		client:   client,
		dbName:   dbName,
		collName: "daily_reports",
	}, nil
}

// SaveDailyReport stores the report, replacing an earlier report for the same date.
func (r *MongoDBRepository) SaveDailyReport(ctx context.Context, report models.DailyReport) error {
	collection := r.client.Database(r.dbName).Collection(r.collName)
	_, err := collection.ReplaceOne(ctx, bson.M{"date": report.Date}, report, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to upsert daily report %s: %w", report.Date, err)
	}
	return nil
}

// Name identifies the archive as a report sink.
func (r *MongoDBRepository) Name() string { return "mongodb" }

// Deliver archives the report.
func (r *MongoDBRepository) Deliver(ctx context.Context, report models.DailyReport) error {
	return r.SaveDailyReport(ctx, report)
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

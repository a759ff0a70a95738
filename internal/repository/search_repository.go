package repository

import (
	"context"
	"fmt"
	"time"

	"amzlens/internal/database"
	"amzlens/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// SearchRepository 搜索快照存储层适配器
// 使用 database.Storage 作为底层存储实现
type SearchRepository struct {
	storage *database.Storage
	logger  *zap.Logger
}

// NewSearchRepository 创建新的 SearchRepository 实例
func NewSearchRepository(storage *database.Storage, logger *zap.Logger) *SearchRepository {
	return &SearchRepository{
		storage: storage,
		logger:  logger,
	}
}

// SaveSnapshot 保存搜索快照到 MongoDB
func (r *SearchRepository) SaveSnapshot(ctx context.Context, snapshot *model.SearchSnapshot) error {
	if snapshot == nil {
		return fmt.Errorf("snapshot cannot be nil")
	}
	if snapshot.Query == "" {
		return fmt.Errorf("snapshot query cannot be empty")
	}

	now := time.Now()
	snapshot.CreatedAt = now
	if snapshot.FetchedAt.IsZero() {
		snapshot.FetchedAt = now
	}
	snapshot.ProductCount = len(snapshot.Products)

	result, err := r.storage.InsertOne(ctx, model.CollectionSearchSnapshots, snapshot)
	if err != nil {
		if r.logger != nil {
			r.logger.Error("failed to save search snapshot",
				zap.String("query", snapshot.Query),
				zap.String("domain", snapshot.Domain),
				zap.Error(err),
			)
		}
		return fmt.Errorf("failed to save search snapshot: %w", err)
	}

	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		snapshot.ID = id
	}

	if r.logger != nil {
		r.logger.Debug("saved search snapshot",
			zap.String("query", snapshot.Query),
			zap.String("domain", snapshot.Domain),
			zap.Int("product_count", snapshot.ProductCount),
			zap.Any("inserted_id", result.InsertedID),
		)
	}

	return nil
}

// ListRecent 获取最近的搜索快照，按抓取时间倒序
// 返回的快照不包含商品明细，只有摘要字段
func (r *SearchRepository) ListRecent(ctx context.Context, limit int) ([]*model.SearchSnapshot, error) {
	if limit <= 0 {
		limit = 20 // 默认限制
	}

	opts := options.Find().
		SetLimit(int64(limit)).
		SetSort(bson.M{"fetched_at": -1}).
		SetProjection(bson.M{"products": 0})

	cursor, err := r.storage.FindDocuments(ctx, model.CollectionSearchSnapshots, bson.M{}, opts)
	if err != nil {
		if r.logger != nil {
			r.logger.Error("failed to query recent snapshots",
				zap.Int("limit", limit),
				zap.Error(err),
			)
		}
		return nil, fmt.Errorf("failed to query recent snapshots: %w", err)
	}
	defer cursor.Close(ctx)

	var snapshots []*model.SearchSnapshot
	if err := cursor.All(ctx, &snapshots); err != nil {
		return nil, fmt.Errorf("failed to decode snapshots: %w", err)
	}

	if r.logger != nil {
		r.logger.Debug("found recent snapshots",
			zap.Int("count", len(snapshots)),
		)
	}

	return snapshots, nil
}

// GetByID 根据 ID 获取完整快照（含商品明细）
func (r *SearchRepository) GetByID(ctx context.Context, id string) (*model.SearchSnapshot, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid snapshot id: %w", err)
	}

	filter := bson.M{"_id": objectID}

	opts := options.Find().SetLimit(1)
	cursor, err := r.storage.FindDocuments(ctx, model.CollectionSearchSnapshots, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshot: %w", err)
	}
	defer cursor.Close(ctx)

	var results []*model.SearchSnapshot
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}

	if len(results) == 0 {
		return nil, nil
	}

	return results[0], nil
}

// DeleteOlderThan 删除抓取时间早于 cutoff 的快照，返回删除数量
func (r *SearchRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	filter := bson.M{
		"fetched_at": bson.M{"$lt": cutoff},
	}

	deleted, err := r.storage.DeleteMany(ctx, model.CollectionSearchSnapshots, filter)
	if err != nil {
		if r.logger != nil {
			r.logger.Error("failed to delete expired snapshots",
				zap.Time("cutoff", cutoff),
				zap.Error(err),
			)
		}
		return 0, fmt.Errorf("failed to delete expired snapshots: %w", err)
	}

	if r.logger != nil {
		r.logger.Info("deleted expired snapshots",
			zap.Time("cutoff", cutoff),
			zap.Int64("deleted_count", deleted),
		)
	}

	return deleted, nil
}

// CountSnapshots 统计快照总数
func (r *SearchRepository) CountSnapshots(ctx context.Context) (int64, error) {
	count, err := r.storage.CountDocuments(ctx, model.CollectionSearchSnapshots, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count snapshots: %w", err)
	}

	return count, nil
}

// EnsureIndexes 创建必要的索引
func (r *SearchRepository) EnsureIndexes(ctx context.Context) error {
	collection := r.storage.GetCollection(model.CollectionSearchSnapshots)
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "fetched_at", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "query", Value: 1}, {Key: "domain", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "source", Value: 1}},
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("failed to create snapshot indexes: %w", err)
	}

	if r.logger != nil {
		r.logger.Info("ensured search repository indexes")
	}

	return nil
}

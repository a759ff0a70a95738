package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// Storage MongoDB 存储管理器
// 封装集合级别的通用读写操作，业务语义放在 repository 层
type Storage struct {
	db     *mongo.Database
	logger *zap.Logger
}

// NewStorage 创建新的存储管理器
func NewStorage(db *mongo.Database, logger *zap.Logger) *Storage {
	return &Storage{
		db:     db,
		logger: logger,
	}
}

// GetCollection 获取集合句柄
func (s *Storage) GetCollection(name string) *mongo.Collection {
	return s.db.Collection(name)
}

// InsertOne 插入单个文档
func (s *Storage) InsertOne(ctx context.Context, collectionName string, doc interface{}) (*mongo.InsertOneResult, error) {
	result, err := s.db.Collection(collectionName).InsertOne(ctx, doc)
	if err != nil {
		if s.logger != nil {
			s.logger.Error("failed to insert document",
				zap.String("collection", collectionName),
				zap.Error(err),
			)
		}
		return nil, fmt.Errorf("failed to insert document: %w", err)
	}

	if s.logger != nil {
		s.logger.Debug("inserted document",
			zap.String("collection", collectionName),
			zap.Any("inserted_id", result.InsertedID),
		)
	}

	return result, nil
}

// FindDocuments 按过滤条件查询文档
func (s *Storage) FindDocuments(ctx context.Context, collectionName string, filter bson.M, opts ...*options.FindOptions) (*mongo.Cursor, error) {
	cursor, err := s.db.Collection(collectionName).Find(ctx, filter, opts...)
	if err != nil {
		if s.logger != nil {
			s.logger.Error("failed to find documents",
				zap.String("collection", collectionName),
				zap.Error(err),
			)
		}
		return nil, fmt.Errorf("failed to find documents: %w", err)
	}

	return cursor, nil
}

// DeleteMany 按过滤条件批量删除文档
func (s *Storage) DeleteMany(ctx context.Context, collectionName string, filter bson.M) (int64, error) {
	result, err := s.db.Collection(collectionName).DeleteMany(ctx, filter)
	if err != nil {
		if s.logger != nil {
			s.logger.Error("failed to delete documents",
				zap.String("collection", collectionName),
				zap.Error(err),
			)
		}
		return 0, fmt.Errorf("failed to delete documents: %w", err)
	}

	if s.logger != nil {
		s.logger.Debug("deleted documents",
			zap.String("collection", collectionName),
			zap.Int64("deleted_count", result.DeletedCount),
		)
	}

	return result.DeletedCount, nil
}

// CountDocuments 统计符合过滤条件的文档数量
func (s *Storage) CountDocuments(ctx context.Context, collectionName string, filter bson.M) (int64, error) {
	count, err := s.db.Collection(collectionName).CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count documents: %w", err)
	}

	return count, nil
}

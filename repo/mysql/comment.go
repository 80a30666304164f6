package mysql

import (
	"context"

	"github.com/Xushengqwer/go-common/core"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Xushengqwer/build_service/models/entities"
)

// CommentRepository 定义了装机单评论的持久化操作接口。
type CommentRepository interface {
	// CreateComment 插入一条评论，ID 与时间戳由 GORM 回填。
	CreateComment(ctx context.Context, comment *entities.Comment) error

	// GetCommentsByBuildID 获取指定装机单的全部评论，按创建时间倒序（最新在前）。
	GetCommentsByBuildID(ctx context.Context, buildID uint64) ([]*entities.Comment, error)
}

type commentRepository struct {
	db     *gorm.DB
	logger *core.ZapLogger
}

// NewCommentRepository 是 commentRepository 的构造函数。
func NewCommentRepository(db *gorm.DB, logger *core.ZapLogger) CommentRepository {
	return &commentRepository{
		db:     db,
		logger: logger,
	}
}

// CreateComment 实现评论的插入。
func (r *commentRepository) CreateComment(ctx context.Context, comment *entities.Comment) error {
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		r.logger.Error("插入评论失败",
			zap.Error(err),
			zap.Uint64("buildID", comment.BuildID),
			zap.String("userID", comment.UserID))
		return err
	}
	return nil
}

// GetCommentsByBuildID 实现按装机单查询评论。
func (r *commentRepository) GetCommentsByBuildID(ctx context.Context, buildID uint64) ([]*entities.Comment, error) {
	var comments []*entities.Comment

	err := r.db.WithContext(ctx).
		Where("build_id = ?", buildID).
		Order("created_at DESC").Order("id DESC").
		Find(&comments).Error
	if err != nil {
		r.logger.Error("查询装机单评论失败", zap.Error(err), zap.Uint64("buildID", buildID))
		return nil, err
	}

	return comments, nil
}

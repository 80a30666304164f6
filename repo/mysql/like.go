package mysql

import (
	"context"
	"errors"

	"github.com/Xushengqwer/go-common/core"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Xushengqwer/build_service/models/entities"
	"github.com/Xushengqwer/build_service/myErrors"
)

// LikeRepository 定义了点赞去重记录的持久化操作接口。
// - 设计意图: 依赖 (build_id, user_id) 唯一索引在数据库层面保证"一人一赞"，
//   计数本身由 Redis 累加后定时回写，不在这里维护。
type LikeRepository interface {
	// CreateLike 插入一条点赞记录。
	// - 若该用户已点赞过该装机单（触发唯一索引冲突），返回 myErrors.ErrAlreadyLiked。
	CreateLike(ctx context.Context, buildID uint64, userID string) error
}

type likeRepository struct {
	db     *gorm.DB
	logger *core.ZapLogger
}

// NewLikeRepository 是 likeRepository 的构造函数。
func NewLikeRepository(db *gorm.DB, logger *core.ZapLogger) LikeRepository {
	return &likeRepository{
		db:     db,
		logger: logger,
	}
}

// CreateLike 实现点赞记录的插入与重复点赞识别。
func (r *likeRepository) CreateLike(ctx context.Context, buildID uint64, userID string) error {
	like := &entities.Like{
		BuildID: buildID,
		UserID:  userID,
	}

	if err := r.db.WithContext(ctx).Create(like).Error; err != nil {
		// 依赖 GORM 的 TranslateError 将驱动层的唯一键冲突统一为 gorm.ErrDuplicatedKey
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return myErrors.ErrAlreadyLiked
		}
		r.logger.Error("插入点赞记录失败",
			zap.Error(err),
			zap.Uint64("buildID", buildID),
			zap.String("userID", userID))
		return err
	}

	return nil
}

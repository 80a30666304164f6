package mysql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Xushengqwer/go-common/commonerrors"
	"github.com/Xushengqwer/go-common/core"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Xushengqwer/build_service/models/entities"
)

// BuildRepository 定义了装机单数据在 MySQL 中的持久化操作接口。
type BuildRepository interface {
	// CreateBuild 持久化一个新的装机单记录。
	// - 这是装机单生命周期的起点，对应用户提交整机配置的操作。
	CreateBuild(ctx context.Context, db *gorm.DB, build *entities.Build) error

	// UpdateBuild 部分更新指定装机单的元信息。
	// - 可选更新 Name, Description, IsAnchor；配件清单创建后不可变更。
	// - 传入 nil 表示不更新对应字段。
	// - 总是会自动更新修改时间 (updated_at)。
	UpdateBuild(ctx context.Context, buildID uint64, name *string, description *string, isAnchor *bool) error

	// GetBuildByID 根据单个 ID 检索装机单信息。
	// - 如果未找到，返回 commonerrors.ErrRepoNotFound。
	GetBuildByID(ctx context.Context, id uint64) (*entities.Build, error)

	// ListBuilds 分页查询装机单列表，支持按创建者筛选。
	// - 返回: 装机单列表, 符合条件的总记录数, 错误。
	ListBuilds(ctx context.Context, ownerID *string, offset, limit int) ([]*entities.Build, int64, error)

	// GetTopLovedBuilds 按点赞数降序获取前 limit 条装机单（人气榜）。
	GetTopLovedBuilds(ctx context.Context, limit int) ([]*entities.Build, error)

	// GetBuildsByCursor 实现装机单热度列表的游标分页查询（按 ID 降序，ID 越大越新）。
	// - 作为热门榜缓存不可用时的数据库回源路径。
	GetBuildsByCursor(ctx context.Context, cursor *uint64, pageSize int) ([]*entities.Build, *uint64, error)

	// GetAnchorBuilds 获取全部锚点装机单，按点赞数降序。
	// - 服务于管理员精选位的展示。
	GetAnchorBuilds(ctx context.Context) ([]*entities.Build, error)

	// SetAnchor 设置/取消指定装机单的锚点标记。
	// - 如果记录未找到或已被软删除，返回 commonerrors.ErrRepoNotFound。
	SetAnchor(ctx context.Context, buildID uint64, isAnchor bool) error

	// DeleteBuild 对指定装机单执行软删除。
	DeleteBuild(ctx context.Context, db *gorm.DB, id uint64) error
}

// buildRepository 是 BuildRepository 接口针对 MySQL 的具体实现。
type buildRepository struct {
	db     *gorm.DB
	logger *core.ZapLogger
}

// NewBuildRepository 是 buildRepository 的构造函数。
func NewBuildRepository(db *gorm.DB, logger *core.ZapLogger) BuildRepository {
	return &buildRepository{
		db:     db,
		logger: logger,
	}
}

// CreateBuild 实现装机单的数据库插入操作。
func (r *buildRepository) CreateBuild(ctx context.Context, db *gorm.DB, build *entities.Build) error {
	if err := db.WithContext(ctx).Create(build).Error; err != nil {
		return err
	}
	return nil
}

// UpdateBuild 实现装机单元信息的部分更新。
// 参数为指针类型，如果传入 nil，则对应字段不会被更新。
func (r *buildRepository) UpdateBuild(ctx context.Context, buildID uint64, name *string, description *string, isAnchor *bool) error {
	updateMap := make(map[string]interface{})

	if name != nil {
		updateMap["name"] = *name
	}
	if description != nil {
		updateMap["description"] = *description
	}
	if isAnchor != nil {
		updateMap["is_anchor"] = *isAnchor
	}

	if len(updateMap) == 0 {
		r.logger.Info("没有提供任何有效的字段来更新装机单 (所有可选参数均为nil)",
			zap.Uint64("buildID", buildID),
		)
		return nil
	}

	updateMap["updated_at"] = time.Now()

	result := r.db.WithContext(ctx).
		Model(&entities.Build{}).
		Where("id = ? AND deleted_at IS NULL", buildID).
		Updates(updateMap)

	if result.Error != nil {
		r.logger.Error("更新装机单数据库操作失败",
			zap.Error(result.Error),
			zap.Uint64("buildID", buildID),
			zap.Any("updateData", updateMap),
		)
		return result.Error
	}

	if result.RowsAffected == 0 {
		r.logger.Warn("尝试更新装机单但未找到记录或记录已被删除",
			zap.Uint64("buildID", buildID),
		)
		return commonerrors.ErrRepoNotFound
	}

	return nil
}

// GetBuildByID 实现根据单个 ID 获取装机单。
func (r *buildRepository) GetBuildByID(ctx context.Context, id uint64) (*entities.Build, error) {
	var build entities.Build

	err := r.db.WithContext(ctx).First(&build, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.logger.Warn("根据 ID 获取装机单未找到", zap.Uint64("buildID", id))
			return nil, commonerrors.ErrRepoNotFound
		}
		r.logger.Error("根据 ID 获取装机单数据库查询失败", zap.Uint64("buildID", id), zap.Error(err))
		return nil, err
	}

	return &build, nil
}

// ListBuilds 实现装机单的分页条件查询。
func (r *buildRepository) ListBuilds(ctx context.Context, ownerID *string, offset, limit int) ([]*entities.Build, int64, error) {
	var builds []*entities.Build
	var totalCount int64

	query := r.db.WithContext(ctx).Model(&entities.Build{})
	countQuery := r.db.WithContext(ctx).Model(&entities.Build{})

	if ownerID != nil && *ownerID != "" {
		query = query.Where("owner_id = ?", *ownerID)
		countQuery = countQuery.Where("owner_id = ?", *ownerID)
	}

	if err := countQuery.Count(&totalCount).Error; err != nil {
		r.logger.Error("获取装机单列表：计数查询失败", zap.Error(err), zap.Any("ownerID", ownerID))
		return nil, 0, fmt.Errorf("计数装机单失败: %w", err)
	}

	if totalCount == 0 {
		return builds, 0, nil
	}

	query = query.Order("created_at DESC").Order("id DESC").Offset(offset).Limit(limit)
	if err := query.Find(&builds).Error; err != nil {
		r.logger.Error("获取装机单列表：列表查询失败",
			zap.Error(err),
			zap.Any("ownerID", ownerID),
			zap.Int("offset", offset),
			zap.Int("limit", limit),
		)
		return nil, 0, fmt.Errorf("查询装机单列表失败: %w", err)
	}

	return builds, totalCount, nil
}

// GetTopLovedBuilds 实现人气装机单的查询。
// 点赞数相同的记录按 ID 降序兜底，保证排序稳定。
func (r *buildRepository) GetTopLovedBuilds(ctx context.Context, limit int) ([]*entities.Build, error) {
	var builds []*entities.Build

	err := r.db.WithContext(ctx).
		Order("likes DESC").Order("id DESC").
		Limit(limit).
		Find(&builds).Error
	if err != nil {
		r.logger.Error("获取人气装机单列表失败", zap.Error(err), zap.Int("limit", limit))
		return nil, err
	}

	return builds, nil
}

// GetBuildsByCursor 实现游标方式获取装机单列表。
func (r *buildRepository) GetBuildsByCursor(ctx context.Context, cursor *uint64, pageSize int) ([]*entities.Build, *uint64, error) {
	var builds []*entities.Build

	query := r.db.WithContext(ctx).Order("id DESC")

	// 非首次加载时只查询 ID 小于 cursor 的记录
	if cursor != nil {
		query = query.Where("id < ?", *cursor)
	}

	// 查询 pageSize + 1 条记录，用多出的一条判断是否还有下一页
	err := query.Limit(pageSize + 1).Find(&builds).Error
	if err != nil {
		return nil, nil, err
	}

	var nextCursor *uint64
	if len(builds) > pageSize {
		nextCursor = &builds[pageSize-1].ID
		builds = builds[:pageSize]
	}

	return builds, nextCursor, nil
}

// GetAnchorBuilds 实现锚点装机单的查询，按点赞数降序。
func (r *buildRepository) GetAnchorBuilds(ctx context.Context) ([]*entities.Build, error) {
	var builds []*entities.Build

	err := r.db.WithContext(ctx).
		Where("is_anchor = ?", true).
		Order("likes DESC").Order("id DESC").
		Find(&builds).Error
	if err != nil {
		r.logger.Error("获取锚点装机单列表失败", zap.Error(err))
		return nil, err
	}

	return builds, nil
}

// SetAnchor 实现锚点标记的更新。
func (r *buildRepository) SetAnchor(ctx context.Context, buildID uint64, isAnchor bool) error {
	result := r.db.WithContext(ctx).
		Model(&entities.Build{}).
		Where("id = ? AND deleted_at IS NULL", buildID).
		Updates(map[string]interface{}{
			"is_anchor":  isAnchor,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		r.logger.Error("更新锚点标记数据库出错", zap.Error(result.Error), zap.Uint64("buildID", buildID), zap.Bool("isAnchor", isAnchor))
		return result.Error
	}
	if result.RowsAffected == 0 {
		r.logger.Warn("尝试更新不存在或已删除装机单的锚点标记", zap.Uint64("buildID", buildID))
		return commonerrors.ErrRepoNotFound
	}
	r.logger.Debug("成功更新装机单锚点标记", zap.Uint64("buildID", buildID), zap.Bool("isAnchor", isAnchor))
	return nil
}

// DeleteBuild 实现装机单的软删除。
func (r *buildRepository) DeleteBuild(ctx context.Context, db *gorm.DB, id uint64) error {
	result := db.WithContext(ctx).Delete(&entities.Build{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return commonerrors.ErrRepoNotFound
	}
	return nil
}

package mysql

import (
	"context"

	"github.com/Xushengqwer/go-common/core"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Xushengqwer/build_service/models/entities"
)

// BuildComponentRepository 定义了装机单配件关联记录的持久化操作接口。
type BuildComponentRepository interface {
	// CreateInBatch 批量写入一份装机单的配件引用（通常在创建/替换清单的事务内调用）。
	CreateInBatch(ctx context.Context, db *gorm.DB, items []*entities.BuildComponent) error

	// GetByBuildID 获取指定装机单的全部配件引用，按展示顺序升序。
	GetByBuildID(ctx context.Context, buildID uint64) ([]*entities.BuildComponent, error)

	// DeleteByBuildID 删除指定装机单的全部配件引用。
	// - 用于整体替换配件清单：先删后插，在同一事务内保证一致性。
	DeleteByBuildID(ctx context.Context, db *gorm.DB, buildID uint64) error

	// CountByComponentID 统计某个配件被多少条关联记录引用。
	// - 服务于配件删除前的引用保护检查。
	CountByComponentID(ctx context.Context, componentID uint64) (int64, error)
}

type buildComponentRepository struct {
	db     *gorm.DB
	logger *core.ZapLogger
}

// NewBuildComponentRepository 是 buildComponentRepository 的构造函数。
func NewBuildComponentRepository(db *gorm.DB, logger *core.ZapLogger) BuildComponentRepository {
	return &buildComponentRepository{
		db:     db,
		logger: logger,
	}
}

// CreateInBatch 实现配件引用的批量插入。
func (r *buildComponentRepository) CreateInBatch(ctx context.Context, db *gorm.DB, items []*entities.BuildComponent) error {
	if len(items) == 0 {
		return nil
	}
	if err := db.WithContext(ctx).CreateInBatches(items, 100).Error; err != nil {
		r.logger.Error("批量插入装机单配件引用失败", zap.Error(err), zap.Int("count", len(items)))
		return err
	}
	return nil
}

// GetByBuildID 实现按装机单获取配件引用。
func (r *buildComponentRepository) GetByBuildID(ctx context.Context, buildID uint64) ([]*entities.BuildComponent, error) {
	var items []*entities.BuildComponent

	err := r.db.WithContext(ctx).
		Where("build_id = ?", buildID).
		Order("display_order ASC").Order("id ASC").
		Find(&items).Error
	if err != nil {
		r.logger.Error("获取装机单配件引用失败", zap.Error(err), zap.Uint64("buildID", buildID))
		return nil, err
	}

	return items, nil
}

// DeleteByBuildID 实现按装机单删除全部配件引用。
// 关联记录没有独立的业务生命周期，这里使用物理删除（Unscoped）避免残留软删行影响唯一性。
func (r *buildComponentRepository) DeleteByBuildID(ctx context.Context, db *gorm.DB, buildID uint64) error {
	err := db.WithContext(ctx).
		Unscoped().
		Where("build_id = ?", buildID).
		Delete(&entities.BuildComponent{}).Error
	if err != nil {
		r.logger.Error("删除装机单配件引用失败", zap.Error(err), zap.Uint64("buildID", buildID))
		return err
	}
	return nil
}

// CountByComponentID 实现配件引用计数。
func (r *buildComponentRepository) CountByComponentID(ctx context.Context, componentID uint64) (int64, error) {
	var count int64

	err := r.db.WithContext(ctx).
		Model(&entities.BuildComponent{}).
		Where("component_id = ?", componentID).
		Count(&count).Error
	if err != nil {
		r.logger.Error("统计配件引用数失败", zap.Error(err), zap.Uint64("componentID", componentID))
		return 0, err
	}

	return count, nil
}

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
	"github.com/Xushengqwer/build_service/models/enums"
)

// ComponentRepository 定义了配件目录在 MySQL 中的持久化操作接口。
// 接口的设计旨在将数据访问逻辑与业务逻辑（服务层）解耦。
type ComponentRepository interface {
	// CreateComponent 持久化一个新的配件记录。
	CreateComponent(ctx context.Context, db *gorm.DB, component *entities.Component) error

	// CreateComponentsInBatch 在同一事务内批量写入配件。
	// - 用于批量导入接口，任何一条失败整批回滚（由调用方的事务控制）。
	CreateComponentsInBatch(ctx context.Context, db *gorm.DB, components []*entities.Component) error

	// GetComponentByID 根据单个 ID 检索配件信息。
	// - 如果未找到，返回 commonerrors.ErrRepoNotFound。
	GetComponentByID(ctx context.Context, id uint64) (*entities.Component, error)

	// GetComponentsByIDs 根据 ID 列表批量检索配件。
	// - 不存在的 ID 直接缺席结果，不报错；缺失语义由上层解析器决定。
	// - 该方法同时满足兼容性解析器的取数契约。
	GetComponentsByIDs(ctx context.Context, ids []uint64) ([]*entities.Component, error)

	// ListComponents 分页查询配件目录，支持按角色筛选和名称模糊搜索。
	// - 返回: 配件列表, 符合条件的总记录数, 错误。
	ListComponents(ctx context.Context, role *enums.ComponentRole, keyword *string, offset, limit int) ([]*entities.Component, int64, error)

	// UpdateComponentImage 更新指定配件的商品图 URL。
	UpdateComponentImage(ctx context.Context, componentID uint64, imageURL string) error

	// DeleteComponent 对指定配件执行软删除。
	// - 引用计数检查由服务层在删除前完成。
	DeleteComponent(ctx context.Context, db *gorm.DB, id uint64) error
}

// componentRepository 是 ComponentRepository 接口针对 MySQL 的具体实现。
type componentRepository struct {
	db     *gorm.DB
	logger *core.ZapLogger
}

// NewComponentRepository 是 componentRepository 的构造函数。
func NewComponentRepository(db *gorm.DB, logger *core.ZapLogger) ComponentRepository {
	return &componentRepository{
		db:     db,
		logger: logger,
	}
}

// CreateComponent 实现配件的数据库插入操作。
func (r *componentRepository) CreateComponent(ctx context.Context, db *gorm.DB, component *entities.Component) error {
	// 使用传入的 db 对象（可能是事务 tx）执行数据库操作。
	if err := db.WithContext(ctx).Create(component).Error; err != nil {
		return err
	}
	// 创建成功后，component 对象会包含 GORM 自动生成的 ID 和时间戳。
	return nil
}

// CreateComponentsInBatch 实现配件的批量插入。
func (r *componentRepository) CreateComponentsInBatch(ctx context.Context, db *gorm.DB, components []*entities.Component) error {
	if len(components) == 0 {
		return nil
	}
	// CreateInBatches 按 100 条一组分段插入，避免单条 SQL 过长
	if err := db.WithContext(ctx).CreateInBatches(components, 100).Error; err != nil {
		r.logger.Error("批量插入配件失败", zap.Error(err), zap.Int("count", len(components)))
		return err
	}
	return nil
}

// GetComponentByID 实现根据单个 ID 获取配件。
func (r *componentRepository) GetComponentByID(ctx context.Context, id uint64) (*entities.Component, error) {
	var component entities.Component

	err := r.db.WithContext(ctx).First(&component, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.logger.Warn("根据 ID 获取配件未找到", zap.Uint64("componentID", id))
			return nil, commonerrors.ErrRepoNotFound
		}
		r.logger.Error("根据 ID 获取配件数据库查询失败", zap.Uint64("componentID", id), zap.Error(err))
		return nil, err
	}

	return &component, nil
}

// GetComponentsByIDs 实现根据 ID 列表批量获取配件。
func (r *componentRepository) GetComponentsByIDs(ctx context.Context, ids []uint64) ([]*entities.Component, error) {
	var components []*entities.Component

	if len(ids) == 0 {
		return components, nil
	}

	// Find 自动带上软删除过滤，只返回仍然存在的记录
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&components).Error; err != nil {
		r.logger.Error("批量获取配件失败", zap.Error(err), zap.Int("id数量", len(ids)))
		return nil, err
	}

	return components, nil
}

// ListComponents 实现配件目录的分页条件查询。
func (r *componentRepository) ListComponents(ctx context.Context, role *enums.ComponentRole, keyword *string, offset, limit int) ([]*entities.Component, int64, error) {
	var components []*entities.Component
	var totalCount int64

	query := r.db.WithContext(ctx).Model(&entities.Component{})
	countQuery := r.db.WithContext(ctx).Model(&entities.Component{})

	if role != nil {
		query = query.Where("role = ?", *role)
		countQuery = countQuery.Where("role = ?", *role)
	}
	if keyword != nil && *keyword != "" {
		query = query.Where("name LIKE ?", "%"+*keyword+"%")
		countQuery = countQuery.Where("name LIKE ?", "%"+*keyword+"%")
	}

	// 先计数，总数为 0 时省掉列表查询
	if err := countQuery.Count(&totalCount).Error; err != nil {
		r.logger.Error("获取配件列表：计数查询失败",
			zap.Error(err),
			zap.Any("role", role),
			zap.Any("keyword", keyword),
		)
		return nil, 0, fmt.Errorf("计数配件失败: %w", err)
	}

	if totalCount == 0 {
		return components, 0, nil
	}

	query = query.Order("id ASC").Offset(offset).Limit(limit)
	if err := query.Find(&components).Error; err != nil {
		r.logger.Error("获取配件列表：列表查询失败",
			zap.Error(err),
			zap.Any("role", role),
			zap.Any("keyword", keyword),
			zap.Int("offset", offset),
			zap.Int("limit", limit),
		)
		return nil, 0, fmt.Errorf("查询配件列表失败: %w", err)
	}

	return components, totalCount, nil
}

// UpdateComponentImage 实现配件商品图的更新。
func (r *componentRepository) UpdateComponentImage(ctx context.Context, componentID uint64, imageURL string) error {
	result := r.db.WithContext(ctx).
		Model(&entities.Component{}).
		Where("id = ? AND deleted_at IS NULL", componentID).
		Updates(map[string]interface{}{
			"image":      imageURL,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		r.logger.Error("更新配件商品图数据库操作失败",
			zap.Error(result.Error),
			zap.Uint64("componentID", componentID),
		)
		return result.Error
	}
	if result.RowsAffected == 0 {
		r.logger.Warn("尝试更新配件商品图但未找到记录或记录已被删除", zap.Uint64("componentID", componentID))
		return commonerrors.ErrRepoNotFound
	}
	return nil
}

// DeleteComponent 实现配件的软删除。
// db 参数是执行此操作的数据库句柄 (可以是普通连接，也可以是事务 tx)。
func (r *componentRepository) DeleteComponent(ctx context.Context, db *gorm.DB, id uint64) error {
	result := db.WithContext(ctx).Delete(&entities.Component{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return commonerrors.ErrRepoNotFound
	}
	return nil
}

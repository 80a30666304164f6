package entities

import (
	"github.com/Xushengqwer/go-common/models/entities"

	"github.com/Xushengqwer/build_service/models/enums"
)

// BuildComponent 装机单配件关联实体
//   - 使用场景: 记录一份装机单引用了哪些配件，以及每个引用所占的角色。
//   - 表名: build_components (GORM 默认使用蛇形复数形式)
//   - 关系: 与 Build 为“多对一”关系，通过 BuildID 外键关联到 builds 表主键。
//   - 注意: 同一装机单允许同一角色出现多次（例如多条内存、多块存储），
//     因此 (build_id, role) 不做唯一约束。
type BuildComponent struct {
	entities.BaseModel // 嵌入公共 BaseModel, 包含 ID, CreatedAt, UpdatedAt, DeletedAt 字段

	// 关联的装机单ID (外键，指向 builds 表主键)
	// - index: 获取装机单全部配件是最高频的查询路径
	BuildID uint64 `gorm:"not null;index"`

	// 引用的配件ID (指向 components 表主键)
	ComponentID uint64 `gorm:"not null;index"`

	// 该引用在装机单中的角色，取配件自身的 Role 快照
	// - 设计意图: 按角色做兼容性解析时不需要回表 components
	Role enums.ComponentRole `gorm:"type:varchar(20);not null"`

	// 展示顺序，创建时按提交顺序写入
	DisplayOrder int `gorm:"default:0"`
}

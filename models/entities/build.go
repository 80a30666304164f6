package entities

import "github.com/Xushengqwer/go-common/models/entities"

// Build 装机单实体
// - 使用场景: 表示一份用户提交的整机配置，聚合若干配件引用与社交计数
// - 表名: builds (GORM 默认使用结构体名复数形式)
type Build struct {
	entities.BaseModel // 嵌入公共 BaseModel，包含 ID, CreatedAt, UpdatedAt, DeletedAt，支持软删除

	// 装机单名称，必填
	Name string `gorm:"type:varchar(255);not null"`

	// 描述，选填，支持多行文本
	Description string `gorm:"type:text"`

	// 创建者ID，UUID 格式，来源于网关注入的用户上下文
	OwnerID string `gorm:"type:char(36);not null;index"`

	// 合计价格（元），创建时按配件价格求和写入
	// - 注意: 配件价格后续变动不回写，保留下单时刻的快照语义
	TotalPrice float64 `gorm:"type:decimal(10,2);default:0"`

	// 估算整机功耗（瓦），创建/更新配件清单时由兼容性引擎计算写入
	EstimatedWattage int `gorm:"type:int;default:0"`

	// 点赞数，冗余计数字段
	// - 设计意图: 点赞先落 Redis，定时任务批量回刷该列，读路径不必聚合 likes 表
	Likes int64 `gorm:"type:bigint;default:0"`

	// 锚点标记，管理员精选位
	// - 建索引: 锚点列表按该列筛选
	IsAnchor bool `gorm:"default:false;index"`
}

package entities

import "github.com/Xushengqwer/go-common/models/entities"

// Comment 评论实体
// - 使用场景: 装机单详情页的评论区
// - 表名: comments
type Comment struct {
	entities.BaseModel

	// 所属装机单ID
	BuildID uint64 `gorm:"not null;index"`

	// 评论者ID，UUID 格式
	UserID string `gorm:"type:char(36);not null"`

	// 评论内容，支持多行文本
	Content string `gorm:"type:text;not null"`
}

package entities

import "github.com/Xushengqwer/go-common/models/entities"

// Like 点赞实体
// - 使用场景: 记录某个用户对某份装机单的点赞事实
// - 表名: likes
// - 设计意图: (build_id, user_id) 复合唯一索引在数据库层兜底“一人一赞”，
//   重复插入返回唯一键冲突，由服务层翻译为业务错误
type Like struct {
	entities.BaseModel

	BuildID uint64 `gorm:"not null;uniqueIndex:uk_build_user"`
	UserID  string `gorm:"type:char(36);not null;uniqueIndex:uk_build_user"`
}

package dto

// CreateBuildRequest 定义创建装机单的请求数据结构。
// - Components 为配件ID列表（字符串形式），创建时严格解析，任何缺失即中止
type CreateBuildRequest struct {
	Name        string   `json:"name" binding:"required,max=255"`              // 装机单名称，必填
	Description string   `json:"description" binding:"omitempty"`              // 描述，可选
	Components  []string `json:"components" binding:"omitempty,dive,required"` // 配件引用列表，可为空单
}

// UpdateBuildRequest 定义部分更新装机单的请求数据结构。
// - 指针字段为 nil 表示不更新；至少提供一个字段，全空请求被拒绝
// - 配件清单创建后不可变更，不在可更新字段之列
type UpdateBuildRequest struct {
	Name        *string `json:"name,omitempty" binding:"omitempty,max=255"`
	Description *string `json:"description,omitempty"`
	IsAnchor    *bool   `json:"is_anchor,omitempty"`
}

// ValidateBuildRequest 定义独立兼容性校验的请求数据结构。
// - 宽松解析: 查无此件的引用静默跳过，不影响其余规则判定
type ValidateBuildRequest struct {
	Components []string `json:"components" binding:"required"`
}

// ListBuildsRequest 定义装机单列表查询的请求数据结构。
// - TopLoved 为 true 时按点赞数降序返回固定条数的人气榜，分页参数被忽略
type ListBuildsRequest struct {
	OwnerID  *string `form:"owner_id" json:"owner_id,omitempty"`                  // 按创建者筛选，可选
	TopLoved bool    `form:"top_loved" json:"top_loved"`                          // 人气榜模式
	Page     int     `form:"page" json:"page" binding:"omitempty,gt=0"`           // 页码，从 1 开始，缺省为 1
	PageSize int     `form:"page_size" json:"page_size" binding:"omitempty,gt=0"` // 每页大小，缺省为 20
}

// HotBuildsRequest 定义热门装机单游标查询的请求数据结构。
type HotBuildsRequest struct {
	LastBuildID *uint64 `form:"last_build_id" json:"last_build_id,omitempty"`       // 上一页最后一条的ID，可选
	PageSize    int     `form:"page_size" json:"page_size" binding:"required,gt=0"` // 每页大小
}

package dto

// CreateCommentRequest 定义发表评论的请求数据结构。
// - BuildID 同时出现在路径和请求体中，两者不一致时拒绝（防止客户端拼装错乱）
type CreateCommentRequest struct {
	BuildID uint64 `json:"build_id" binding:"required"`
	Content string `json:"content" binding:"required,max=1000"`
}

// SetAnchorRequest 定义管理员设置/取消锚点的请求数据结构。
type SetAnchorRequest struct {
	IsAnchor bool `json:"is_anchor"`
}

package vo

// --- 用于成功响应且包含具体 Data 的包装器 ---

// ComponentResponseWrapper 对应 response.APIResponse[vo.ComponentVO]
type ComponentResponseWrapper struct {
	Code    int         `json:"code" example:"0"`
	Message string      `json:"message,omitempty" example:"success"`
	Data    ComponentVO `json:"data"`
}

// ListComponentsResponseWrapper 对应 response.APIResponse[vo.ListComponentsVO]
type ListComponentsResponseWrapper struct {
	Code    int              `json:"code" example:"0"`
	Message string           `json:"message,omitempty" example:"success"`
	Data    ListComponentsVO `json:"data"`
}

// ImportComponentsResponseWrapper 对应 response.APIResponse[vo.ImportComponentsVO]
type ImportComponentsResponseWrapper struct {
	Code    int                `json:"code" example:"0"`
	Message string             `json:"message,omitempty" example:"success"`
	Data    ImportComponentsVO `json:"data"`
}

// BuildResponseWrapper 对应 response.APIResponse[vo.BuildVO]
type BuildResponseWrapper struct {
	Code    int     `json:"code" example:"0"`
	Message string  `json:"message,omitempty" example:"success"`
	Data    BuildVO `json:"data"`
}

// BuildDetailResponseWrapper 对应 response.APIResponse[vo.BuildDetailVO]
type BuildDetailResponseWrapper struct {
	Code    int           `json:"code" example:"0"`
	Message string        `json:"message,omitempty" example:"success"`
	Data    BuildDetailVO `json:"data"`
}

// ValidateBuildResponseWrapper 对应 response.APIResponse[vo.ValidateBuildVO]
type ValidateBuildResponseWrapper struct {
	Code    int             `json:"code" example:"0"`
	Message string          `json:"message,omitempty" example:"success"`
	Data    ValidateBuildVO `json:"data"`
}

// ListBuildsResponseWrapper 对应 response.APIResponse[vo.ListBuildsVO]
type ListBuildsResponseWrapper struct {
	Code    int          `json:"code" example:"0"`
	Message string       `json:"message,omitempty" example:"success"`
	Data    ListBuildsVO `json:"data"`
}

// ListHotBuildsResponseWrapper 对应 response.APIResponse[vo.ListHotBuildsByCursorVO]
type ListHotBuildsResponseWrapper struct {
	Code    int                     `json:"code" example:"0"`
	Message string                  `json:"message,omitempty" example:"success"`
	Data    ListHotBuildsByCursorVO `json:"data"`
}

// CommentResponseWrapper 对应 response.APIResponse[vo.CommentVO]
type CommentResponseWrapper struct {
	Code    int       `json:"code" example:"0"`
	Message string    `json:"message,omitempty" example:"success"`
	Data    CommentVO `json:"data"`
}

// CommentListResponseWrapper 对应 response.APIResponse[[]*vo.CommentVO]
type CommentListResponseWrapper struct {
	Code    int          `json:"code" example:"0"`
	Message string       `json:"message,omitempty" example:"success"`
	Data    []*CommentVO `json:"data"`
}

// --- 用于错误响应 或 简单成功响应（只有 Code 和 Message） ---

// BaseResponseWrapper 代表一个只包含 Code 和 Message 的响应。
// 适用于错误情况（RespondError 返回时 Data 为 nil 且 omitempty）
// 或某些成功操作（如 DELETE、点赞）可能也只返回 Code 和 Message。
type BaseResponseWrapper struct {
	Code    int    `json:"code" example:"0"`          // 成功时为 0, 错误时为具体错误码
	Message string `json:"message" example:"success"` // 成功或错误消息
}

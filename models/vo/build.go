package vo

import (
	"time"

	"github.com/Xushengqwer/build_service/models/entities"
)

// BuildVO 定义了装机单摘要的响应数据结构（列表页使用，不展开配件）
type BuildVO struct {
	ID               uint64    `json:"id"`
	Name             string    `json:"name"`
	Description      string    `json:"description,omitempty"`
	OwnerID          string    `json:"owner_id"`
	TotalPrice       float64   `json:"total_price"`
	EstimatedWattage int       `json:"estimated_wattage"`
	Likes            int64     `json:"likes"`
	IsAnchor         bool      `json:"is_anchor"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// BuildDetailVO 定义了装机单详情页的响应数据结构
// - 配件按装机单内的展示顺序展开，评论按时间倒序（新的在前）
type BuildDetailVO struct {
	BuildVO
	Components []*ComponentVO `json:"components"`
	Comments   []*CommentVO   `json:"comments"`
}

// CommentVO 定义了评论的响应数据结构
type CommentVO struct {
	ID        uint64    `json:"id"`
	BuildID   uint64    `json:"build_id"`
	UserID    string    `json:"user_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// ValidateBuildVO 定义了独立兼容性校验接口的响应结构。
type ValidateBuildVO struct {
	Issues           []string `json:"issues"`            // 违规描述列表，按规则顺序
	EstimatedWattage int      `json:"estimated_wattage"` // 估算整机功耗（瓦）
}

// ListBuildsVO 定义了装机单分页查询的响应结构。
type ListBuildsVO struct {
	Builds []*BuildVO `json:"builds"`
	Total  int64      `json:"total"`
}

// ListHotBuildsByCursorVO 热门装机单游标加载的响应结构。
type ListHotBuildsByCursorVO struct {
	Builds     []*BuildVO `json:"builds"`
	NextCursor *uint64    `json:"next_cursor"` // nil 表示无更多数据
}

// MapBuildToVO 将装机单实体转换为摘要 VO。
func MapBuildToVO(b *entities.Build) *BuildVO {
	if b == nil {
		return nil
	}
	return &BuildVO{
		ID:               b.ID,
		Name:             b.Name,
		Description:      b.Description,
		OwnerID:          b.OwnerID,
		TotalPrice:       b.TotalPrice,
		EstimatedWattage: b.EstimatedWattage,
		Likes:            b.Likes,
		IsAnchor:         b.IsAnchor,
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.UpdatedAt,
	}
}

// MapBuildsToVOs 将装机单实体列表转换为摘要 VO 列表。
func MapBuildsToVOs(builds []*entities.Build) []*BuildVO {
	if len(builds) == 0 {
		return []*BuildVO{}
	}
	out := make([]*BuildVO, 0, len(builds))
	for _, b := range builds {
		if b == nil {
			continue
		}
		out = append(out, MapBuildToVO(b))
	}
	return out
}

// MapCommentsToVOs 将评论实体列表转换为 VO 列表。
func MapCommentsToVOs(comments []*entities.Comment) []*CommentVO {
	if len(comments) == 0 {
		return []*CommentVO{}
	}
	out := make([]*CommentVO, 0, len(comments))
	for _, c := range comments {
		if c == nil {
			continue
		}
		out = append(out, &CommentVO{
			ID:        c.ID,
			BuildID:   c.BuildID,
			UserID:    c.UserID,
			Content:   c.Content,
			CreatedAt: c.CreatedAt,
		})
	}
	return out
}

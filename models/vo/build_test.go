package vo

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Xushengqwer/build_service/models/entities"
)

func TestMapBuildToVO(t *testing.T) {
	build := &entities.Build{
		Name:             "静音办公主机",
		Description:      "ITX 小钢炮",
		OwnerID:          "9b4a3f7c-1d2e-4f5a-8b6c-7d8e9f0a1b2c",
		TotalPrice:       6543.21,
		EstimatedWattage: 420,
		Likes:            12,
		IsAnchor:         true,
	}
	build.ID = 7

	got := MapBuildToVO(build)
	assert.Equal(t, uint64(7), got.ID)
	assert.Equal(t, "静音办公主机", got.Name)
	assert.Equal(t, build.OwnerID, got.OwnerID)
	assert.Equal(t, 6543.21, got.TotalPrice)
	assert.Equal(t, 420, got.EstimatedWattage)
	assert.Equal(t, int64(12), got.Likes)
	assert.True(t, got.IsAnchor)
}

func TestMapBuildToVO_Nil(t *testing.T) {
	assert.Nil(t, MapBuildToVO(nil))
}

func TestMapBuildsToVOs_SkipsNilAndNeverReturnsNil(t *testing.T) {
	assert.Equal(t, []*BuildVO{}, MapBuildsToVOs(nil))

	b := &entities.Build{Name: "游戏主机"}
	b.ID = 3
	out := MapBuildsToVOs([]*entities.Build{nil, b, nil})
	assert.Len(t, out, 1)
	assert.Equal(t, uint64(3), out[0].ID)
}

func TestMapCommentsToVOs(t *testing.T) {
	c := &entities.Comment{
		BuildID: 3,
		UserID:  "user-1",
		Content: "这套散热压得住吗？",
	}
	c.ID = 11

	out := MapCommentsToVOs([]*entities.Comment{c})
	assert.Len(t, out, 1)
	assert.Equal(t, uint64(11), out[0].ID)
	assert.Equal(t, uint64(3), out[0].BuildID)
	assert.Equal(t, "user-1", out[0].UserID)
	assert.Equal(t, "这套散热压得住吗？", out[0].Content)

	assert.Equal(t, []*CommentVO{}, MapCommentsToVOs(nil))
}

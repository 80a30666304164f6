package compat

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Xushengqwer/build_service/models/entities"
	"github.com/Xushengqwer/build_service/models/enums"
)

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func TestEstimateWattage_NoTDP(t *testing.T) {
	rc := ResolvedComponents{
		enums.RoleCase:    {Name: "机箱A"},
		enums.RoleStorage: {Name: "硬盘B"},
	}
	assert.Equal(t, 0, EstimateWattage(rc), "没有任何配件携带 TDP 时应返回 0")
}

func TestEstimateWattage_Empty(t *testing.T) {
	assert.Equal(t, 0, EstimateWattage(ResolvedComponents{}))
	assert.Equal(t, 0, EstimateWattage(nil))
}

func TestEstimateWattage_SumWithHeadroom(t *testing.T) {
	rc := ResolvedComponents{
		enums.RoleCPU: {Name: "CPU", TDP: intPtr(100)},
		enums.RoleGPU: {Name: "GPU", TDP: intPtr(150)},
	}
	// (100+150) * 1.3 = 325，向下取整
	assert.Equal(t, 325, EstimateWattage(rc))
}

func TestEstimateWattage_Truncates(t *testing.T) {
	rc := ResolvedComponents{
		enums.RoleCPU: {TDP: intPtr(65)},
	}
	// 65 * 1.3 = 84.5，截断为 84
	assert.Equal(t, 84, EstimateWattage(rc))
}

func TestEstimateWattage_MissingTDPTreatedAsZero(t *testing.T) {
	rc := ResolvedComponents{
		enums.RoleCPU:         {TDP: intPtr(100)},
		enums.RoleMotherboard: {Name: "主板无TDP"},
	}
	assert.Equal(t, 130, EstimateWattage(rc))
}

func mkComponent(role enums.ComponentRole) *entities.Component {
	return &entities.Component{Name: string(role), Role: role}
}


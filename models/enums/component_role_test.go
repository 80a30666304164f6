package enums

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseComponentRole_Valid(t *testing.T) {
	for _, role := range AllComponentRoles {
		parsed, err := ParseComponentRole(role.String())
		assert.NoError(t, err)
		assert.Equal(t, role, parsed)
	}
}

func TestParseComponentRole_Invalid(t *testing.T) {
	for _, input := range []string{"", "CPU", "fan", "主板"} {
		_, err := ParseComponentRole(input)
		assert.Error(t, err, "输入 %q 不应被解析为合法角色", input)
	}
}

func TestComponentRole_IsValid(t *testing.T) {
	assert.True(t, RoleCPU.IsValid())
	assert.True(t, RoleStorage.IsValid())
	assert.False(t, ComponentRole("gpu ").IsValid())
	assert.False(t, ComponentRole("unknown").IsValid())
}

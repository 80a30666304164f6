package enums

import "fmt"

// ComponentRole 配件角色枚举
// - 使用场景: 标识一个硬件配件在整机装配中承担的角色（CPU、主板、内存等）
// - 设计意图: 以字符串形式入库和传输，可读性优于整数枚举，且与外部导入数据天然兼容
type ComponentRole string

const (
	RoleCPU         ComponentRole = "cpu"
	RoleMotherboard ComponentRole = "motherboard"
	RoleRAM         ComponentRole = "ram"
	RoleGPU         ComponentRole = "gpu"
	RolePSU         ComponentRole = "psu"
	RoleCase        ComponentRole = "case"
	RoleCooler      ComponentRole = "cooler"
	RoleStorage     ComponentRole = "storage"
)

// AllComponentRoles 全部合法角色，顺序即装机习惯上的装配顺序。
var AllComponentRoles = []ComponentRole{
	RoleCPU,
	RoleMotherboard,
	RoleRAM,
	RoleGPU,
	RolePSU,
	RoleCase,
	RoleCooler,
	RoleStorage,
}

// ParseComponentRole 将外部输入解析为 ComponentRole。
// - 非法输入返回错误，由调用方决定如何响应（通常是 400）。
func ParseComponentRole(s string) (ComponentRole, error) {
	role := ComponentRole(s)
	if !role.IsValid() {
		return "", fmt.Errorf("unknown component role: %q", s)
	}
	return role, nil
}

// IsValid 判断角色是否在已知集合内。
func (r ComponentRole) IsValid() bool {
	switch r {
	case RoleCPU, RoleMotherboard, RoleRAM, RoleGPU, RolePSU, RoleCase, RoleCooler, RoleStorage:
		return true
	}
	return false
}

func (r ComponentRole) String() string {
	return string(r)
}

package compat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"

	"github.com/Xushengqwer/build_service/models/enums"
)

func TestCheckCompatibility_EmptyInput(t *testing.T) {
	assert.Empty(t, CheckCompatibility(ResolvedComponents{}))
	assert.Empty(t, CheckCompatibility(nil))
}

func TestCheckCompatibility_SocketCaseInsensitive(t *testing.T) {
	cpu := mkComponent(enums.RoleCPU)
	cpu.Socket = strPtr("am5")
	mobo := mkComponent(enums.RoleMotherboard)
	mobo.Socket = strPtr("AM5")

	issues := CheckCompatibility(ResolvedComponents{
		enums.RoleCPU:         cpu,
		enums.RoleMotherboard: mobo,
	})
	assert.Empty(t, issues, "插槽匹配应忽略大小写")
}

func TestCheckCompatibility_SocketMismatch(t *testing.T) {
	cpu := mkComponent(enums.RoleCPU)
	cpu.Socket = strPtr("AM5")
	mobo := mkComponent(enums.RoleMotherboard)
	mobo.Socket = strPtr("LGA1700")

	issues := CheckCompatibility(ResolvedComponents{
		enums.RoleCPU:         cpu,
		enums.RoleMotherboard: mobo,
	})
	assert.Equal(t, []string{"CPU socket AM5 not compatible with motherboard LGA1700"}, issues)
}

func TestCheckCompatibility_MissingAttributesArePermissive(t *testing.T) {
	// CPU 有插槽、主板没有，任一侧属性缺失都不报违规
	cpu := mkComponent(enums.RoleCPU)
	cpu.Socket = strPtr("AM5")
	mobo := mkComponent(enums.RoleMotherboard)

	issues := CheckCompatibility(ResolvedComponents{
		enums.RoleCPU:         cpu,
		enums.RoleMotherboard: mobo,
	})
	assert.Empty(t, issues)
}

func TestCheckCompatibility_RAMType(t *testing.T) {
	ram := mkComponent(enums.RoleRAM)
	ram.RAMType = strPtr("DDR4")
	mobo := mkComponent(enums.RoleMotherboard)
	mobo.RAMType = strPtr("DDR5")

	issues := CheckCompatibility(ResolvedComponents{
		enums.RoleRAM:         ram,
		enums.RoleMotherboard: mobo,
	})
	assert.Equal(t, []string{"RAM type DDR4 not compatible with motherboard DDR5"}, issues)

	ram.RAMType = strPtr("ddr5")
	issues = CheckCompatibility(ResolvedComponents{
		enums.RoleRAM:         ram,
		enums.RoleMotherboard: mobo,
	})
	assert.Empty(t, issues)
}

func TestCheckCompatibility_GPULength(t *testing.T) {
	gpu := mkComponent(enums.RoleGPU)
	cs := mkComponent(enums.RoleCase)
	cs.MaxGPULengthMM = intPtr(320)

	gpu.GPULengthMM = intPtr(350)
	issues := CheckCompatibility(ResolvedComponents{enums.RoleGPU: gpu, enums.RoleCase: cs})
	assert.Equal(t, []string{"GPU length exceeds case maximum"}, issues)

	gpu.GPULengthMM = intPtr(300)
	issues = CheckCompatibility(ResolvedComponents{enums.RoleGPU: gpu, enums.RoleCase: cs})
	assert.Empty(t, issues)

	// 等长不算超出
	gpu.GPULengthMM = intPtr(320)
	issues = CheckCompatibility(ResolvedComponents{enums.RoleGPU: gpu, enums.RoleCase: cs})
	assert.Empty(t, issues)
}

func TestCheckCompatibility_CoolerHeight(t *testing.T) {
	cooler := mkComponent(enums.RoleCooler)
	cooler.CoolerHeightMM = intPtr(170)
	cs := mkComponent(enums.RoleCase)
	cs.CaseMaxCoolerHeightMM = intPtr(160)

	issues := CheckCompatibility(ResolvedComponents{enums.RoleCooler: cooler, enums.RoleCase: cs})
	assert.Equal(t, []string{"Cooler height exceeds case maximum"}, issues)
}

func TestCheckCompatibility_PSUWattage(t *testing.T) {
	cpu := mkComponent(enums.RoleCPU)
	cpu.TDP = intPtr(150)
	gpu := mkComponent(enums.RoleGPU)
	gpu.TDP = intPtr(250)
	psu := mkComponent(enums.RolePSU)

	// (150+250) * 1.3 = 520 > 500，违规文案同时包含估算值和额定值
	psu.PSUWattage = intPtr(500)
	issues := CheckCompatibility(ResolvedComponents{
		enums.RoleCPU: cpu, enums.RoleGPU: gpu, enums.RolePSU: psu,
	})
	assert.Equal(t, []string{"PSU wattage too low. Estimated 520W, PSU is 500W"}, issues)

	// 600W 足够
	psu.PSUWattage = intPtr(600)
	issues = CheckCompatibility(ResolvedComponents{
		enums.RoleCPU: cpu, enums.RoleGPU: gpu, enums.RolePSU: psu,
	})
	assert.Empty(t, issues)
}

func TestCheckCompatibility_PSUWattageZeroSkips(t *testing.T) {
	cpu := mkComponent(enums.RoleCPU)
	cpu.TDP = intPtr(500)
	psu := mkComponent(enums.RolePSU)
	psu.PSUWattage = intPtr(0)

	issues := CheckCompatibility(ResolvedComponents{enums.RoleCPU: cpu, enums.RolePSU: psu})
	assert.Empty(t, issues, "额定功率为 0 视为数据缺失，规则跳过")
}

func TestCheckCompatibility_FormFactorExactMatch(t *testing.T) {
	psu := mkComponent(enums.RolePSU)
	psu.PSUFormFactor = strPtr("SFX")
	cs := mkComponent(enums.RoleCase)
	cs.CaseSupportedPSU = datatypes.JSONSlice[string]{"ATX"}

	issues := CheckCompatibility(ResolvedComponents{enums.RolePSU: psu, enums.RoleCase: cs})
	assert.Equal(t, []string{"PSU form factor not supported by case"}, issues)

	// 规格列表匹配区分大小写
	psu.PSUFormFactor = strPtr("atx")
	issues = CheckCompatibility(ResolvedComponents{enums.RolePSU: psu, enums.RoleCase: cs})
	assert.Equal(t, []string{"PSU form factor not supported by case"}, issues)

	// 空列表视为不限制
	cs.CaseSupportedPSU = nil
	issues = CheckCompatibility(ResolvedComponents{enums.RolePSU: psu, enums.RoleCase: cs})
	assert.Empty(t, issues)
}

func TestCheckCompatibility_MotherboardFormFactor(t *testing.T) {
	mobo := mkComponent(enums.RoleMotherboard)
	mobo.MotherboardFormFactor = strPtr("E-ATX")
	cs := mkComponent(enums.RoleCase)
	cs.CaseMotherboardSupport = datatypes.JSONSlice[string]{"ATX", "mATX"}

	issues := CheckCompatibility(ResolvedComponents{enums.RoleMotherboard: mobo, enums.RoleCase: cs})
	assert.Equal(t, []string{"Motherboard form factor not supported by case"}, issues)
}

func TestCheckCompatibility_ViolationOrderIsStable(t *testing.T) {
	// 同时触发插槽(规则1)与功耗(规则5)违规，输出顺序必须与规则定义顺序一致
	cpu := mkComponent(enums.RoleCPU)
	cpu.Socket = strPtr("AM4")
	cpu.TDP = intPtr(400)
	mobo := mkComponent(enums.RoleMotherboard)
	mobo.Socket = strPtr("AM5")
	psu := mkComponent(enums.RolePSU)
	psu.PSUWattage = intPtr(300)

	rc := ResolvedComponents{
		enums.RoleCPU:         cpu,
		enums.RoleMotherboard: mobo,
		enums.RolePSU:         psu,
	}
	issues := CheckCompatibility(rc)
	assert.Equal(t, []string{
		"CPU socket AM4 not compatible with motherboard AM5",
		"PSU wattage too low. Estimated 520W, PSU is 300W",
	}, issues)
}

func TestCheckCompatibility_Idempotent(t *testing.T) {
	cpu := mkComponent(enums.RoleCPU)
	cpu.Socket = strPtr("AM4")
	mobo := mkComponent(enums.RoleMotherboard)
	mobo.Socket = strPtr("AM5")
	rc := ResolvedComponents{enums.RoleCPU: cpu, enums.RoleMotherboard: mobo}

	first := CheckCompatibility(rc)
	second := CheckCompatibility(rc)
	assert.Equal(t, first, second, "同一输入重复校验结果必须一致")
	assert.NotEmpty(t, first)
}

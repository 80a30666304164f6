package compat

import (
	"fmt"
	"strings"

	"github.com/Xushengqwer/build_service/models/entities"
	"github.com/Xushengqwer/build_service/models/enums"
)

// ResolvedComponents 按角色索引的配件集合，是规则引擎的统一输入。
// - 同一角色被多次引用时，后解析的覆盖先解析的（规则只对每个角色看一个代表）
type ResolvedComponents map[enums.ComponentRole]*entities.Component

// rule 单条兼容性规则。
// - check 返回 (违规描述, 是否违规)；任一参与方缺失或属性缺失时返回不违规
type rule struct {
	check func(rc ResolvedComponents) (string, bool)
}

// compatibilityRules 全部规则，按固定顺序执行，输出的违规列表保持该顺序。
// - 设计意图: 规则间无短路，一次校验报出全部问题，前端可整页展示
var compatibilityRules = []rule{
	// 1. CPU 插槽与主板插槽必须一致（忽略大小写）
	{check: func(rc ResolvedComponents) (string, bool) {
		cpu, mobo := rc[enums.RoleCPU], rc[enums.RoleMotherboard]
		if cpu == nil || mobo == nil || cpu.Socket == nil || mobo.Socket == nil {
			return "", false
		}
		if !strings.EqualFold(*cpu.Socket, *mobo.Socket) {
			return fmt.Sprintf("CPU socket %s not compatible with motherboard %s", *cpu.Socket, *mobo.Socket), true
		}
		return "", false
	}},

	// 2. 内存代际与主板支持的代际必须一致（忽略大小写）
	{check: func(rc ResolvedComponents) (string, bool) {
		ram, mobo := rc[enums.RoleRAM], rc[enums.RoleMotherboard]
		if ram == nil || mobo == nil || ram.RAMType == nil || mobo.RAMType == nil {
			return "", false
		}
		if !strings.EqualFold(*ram.RAMType, *mobo.RAMType) {
			return fmt.Sprintf("RAM type %s not compatible with motherboard %s", *ram.RAMType, *mobo.RAMType), true
		}
		return "", false
	}},

	// 3. 显卡长度不得超过机箱限长
	{check: func(rc ResolvedComponents) (string, bool) {
		gpu, cs := rc[enums.RoleGPU], rc[enums.RoleCase]
		if gpu == nil || cs == nil || gpu.GPULengthMM == nil || cs.MaxGPULengthMM == nil {
			return "", false
		}
		if *gpu.GPULengthMM > *cs.MaxGPULengthMM {
			return "GPU length exceeds case maximum", true
		}
		return "", false
	}},

	// 4. 散热器高度不得超过机箱限高
	{check: func(rc ResolvedComponents) (string, bool) {
		cooler, cs := rc[enums.RoleCooler], rc[enums.RoleCase]
		if cooler == nil || cs == nil || cooler.CoolerHeightMM == nil || cs.CaseMaxCoolerHeightMM == nil {
			return "", false
		}
		if *cooler.CoolerHeightMM > *cs.CaseMaxCoolerHeightMM {
			return "Cooler height exceeds case maximum", true
		}
		return "", false
	}},

	// 5. 电源额定功率不得低于估算功耗
	// - 电源额定功率为 0 或缺失时跳过，不报违规
	{check: func(rc ResolvedComponents) (string, bool) {
		psu := rc[enums.RolePSU]
		if psu == nil || psu.PSUWattage == nil || *psu.PSUWattage == 0 {
			return "", false
		}
		estimated := EstimateWattage(rc)
		if estimated > *psu.PSUWattage {
			return fmt.Sprintf("PSU wattage too low. Estimated %dW, PSU is %dW", estimated, *psu.PSUWattage), true
		}
		return "", false
	}},

	// 6. 电源规格必须在机箱支持列表内（精确匹配，空列表视为不限制）
	{check: func(rc ResolvedComponents) (string, bool) {
		psu, cs := rc[enums.RolePSU], rc[enums.RoleCase]
		if psu == nil || cs == nil || psu.PSUFormFactor == nil || len(cs.CaseSupportedPSU) == 0 {
			return "", false
		}
		if !contains(cs.CaseSupportedPSU, *psu.PSUFormFactor) {
			return "PSU form factor not supported by case", true
		}
		return "", false
	}},

	// 7. 主板版型必须在机箱支持列表内（精确匹配，空列表视为不限制）
	{check: func(rc ResolvedComponents) (string, bool) {
		mobo, cs := rc[enums.RoleMotherboard], rc[enums.RoleCase]
		if mobo == nil || cs == nil || mobo.MotherboardFormFactor == nil || len(cs.CaseMotherboardSupport) == 0 {
			return "", false
		}
		if !contains(cs.CaseMotherboardSupport, *mobo.MotherboardFormFactor) {
			return "Motherboard form factor not supported by case", true
		}
		return "", false
	}},
}

// CheckCompatibility 对一组已解析配件执行全部兼容性规则。
//   - 返回违规描述列表，顺序与规则定义顺序一致；无违规返回空切片
//   - 纯函数，不读库不打日志，可安全并发调用
func CheckCompatibility(components ResolvedComponents) []string {
	issues := make([]string, 0)
	for _, r := range compatibilityRules {
		if msg, violated := r.check(components); violated {
			issues = append(issues, msg)
		}
	}
	return issues
}

func contains(list []string, target string) bool {
	for _, v := range list {
		if v == target {
			return true
		}
	}
	return false
}

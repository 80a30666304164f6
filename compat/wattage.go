package compat

// wattageHeadroom 功耗冗余系数。
// - 估算值 = 全部配件 TDP 之和 × 1.3，向下取整
// - 1.3 覆盖瞬时峰值与电源转换损耗，是装机社区的通行经验值
const wattageHeadroom = 1.3

// EstimateWattage 估算整机功耗（瓦）。
//   - 累加所有已解析配件的 TDP，缺失 TDP 的配件按 0 计
//   - 没有任何配件携带 TDP 时返回 0，不套用冗余系数
func EstimateWattage(components ResolvedComponents) int {
	totalTDP := 0
	for _, c := range components {
		if c != nil && c.TDP != nil {
			totalTDP += *c.TDP
		}
	}
	if totalTDP == 0 {
		return 0
	}
	return int(float64(totalTDP) * wattageHeadroom)
}

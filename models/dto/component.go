package dto

// ComponentPayload 定义单个配件的写入数据结构。
// - 创建接口与批量导入接口共用该结构
// - 兼容性属性全部可选，缺失的属性在规则判定中视为“放行”
type ComponentPayload struct {
	Name  string `json:"name" binding:"required,max=255"`                                               // 配件名称，必填
	Role  string `json:"type" binding:"required,oneof=cpu motherboard ram gpu psu case cooler storage"` // 配件角色，必填
	Brand string `json:"brand" binding:"omitempty,max=100"`                                             // 品牌，可选
	Model string `json:"model" binding:"omitempty,max=100"`                                             // 型号，可选

	Socket   *string `json:"socket,omitempty"`                        // 插槽（CPU/主板）
	Chipset  *string `json:"chipset,omitempty"`                       // 芯片组（主板）
	TDP      *int    `json:"tdp,omitempty" binding:"omitempty,gte=0"` // 热设计功耗（瓦），非负
	RAMType  *string `json:"ram_type,omitempty"`                      // 内存代际（内存/主板）
	RAMSpeed *int    `json:"ram_speed,omitempty"`                     // 内存频率
	RAMSlots *int    `json:"ram_slots,omitempty"`                     // 内存插槽数（主板）

	PCIeVersion    *string `json:"pcie_version,omitempty"`      // PCIe 版本
	GPULengthMM    *int    `json:"gpu_length_mm,omitempty"`     // 显卡长度（毫米）
	MaxGPULengthMM *int    `json:"max_gpu_length_mm,omitempty"` // 机箱显卡限长（毫米）

	PSUWattage             *int     `json:"psu_wattage,omitempty"`              // 电源额定功率（瓦）
	PSUFormFactor          *string  `json:"psu_form_factor,omitempty"`          // 电源规格
	CaseSupportedPSU       []string `json:"case_supported_psu,omitempty"`       // 机箱支持的电源规格列表
	CaseMotherboardSupport []string `json:"case_motherboard_support,omitempty"` // 机箱支持的主板版型列表

	MotherboardFormFactor *string `json:"motherboard_form_factor,omitempty"`   // 主板版型
	CoolerHeightMM        *int    `json:"cooler_height_mm,omitempty"`          // 散热器高度（毫米）
	CaseMaxCoolerHeightMM *int    `json:"case_max_cooler_height_mm,omitempty"` // 机箱散热器限高（毫米）

	StorageInterface *string `json:"storage_interface,omitempty"` // 存储接口
	M2Slots          *int    `json:"m2_slots,omitempty"`          // M.2 插槽数（主板）

	Price float64 `json:"price" binding:"omitempty,gte=0"`   // 价格（元），非负
	Image string  `json:"image" binding:"omitempty,max=512"` // 商品图 URL，可选
	URL   string  `json:"url" binding:"omitempty,max=512"`   // 外链，可选
}

// ImportComponentsRequest 定义批量导入配件的请求数据结构。
// - 整批事务写入，任何一条校验失败整批回滚
type ImportComponentsRequest struct {
	Components []ComponentPayload `json:"components" binding:"required,min=1,dive"`
}

// ListComponentsRequest 定义配件目录查询的请求数据结构。
type ListComponentsRequest struct {
	Role     *string `form:"type" json:"type,omitempty"`                         // 按角色筛选，可选
	Keyword  *string `form:"keyword" json:"keyword,omitempty"`                   // 名称模糊搜索，可选
	Page     int     `form:"page" json:"page" binding:"required,gt=0"`           // 页码，从 1 开始
	PageSize int     `form:"page_size" json:"page_size" binding:"required,gt=0"` // 每页大小
}

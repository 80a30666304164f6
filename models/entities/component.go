package entities

import (
	"github.com/Xushengqwer/go-common/models/entities"
	"gorm.io/datatypes"

	"github.com/Xushengqwer/build_service/models/enums"
)

// Component 硬件配件实体
// - 使用场景: 配件目录的核心表，兼容性引擎的全部判定属性都来自这里
// - 表名: components (GORM 默认使用结构体名复数形式)
// - 设计意图: 所有兼容性属性均为可空指针，缺失的属性在规则判定中一律视为“放行”，
//   因此不在数据库层强加非空约束
type Component struct {
	entities.BaseModel // 嵌入公共 BaseModel，包含 ID, CreatedAt, UpdatedAt, DeletedAt，支持软删除

	// 配件名称，必填
	Name string `gorm:"type:varchar(255);not null"`

	// 配件角色，必填，枚举见 enums.ComponentRole
	// - 建索引: 目录按角色筛选是最高频查询
	Role enums.ComponentRole `gorm:"type:varchar(20);not null;index"`

	// 品牌与型号，选填，仅做展示用途
	Brand string `gorm:"type:varchar(100)"`
	Model string `gorm:"type:varchar(100)"`

	// ---- CPU / 主板 ----

	// 插槽（如 AM5、LGA1700），CPU 与主板双方都会携带，匹配时忽略大小写
	Socket *string `gorm:"type:varchar(50)"`

	// 芯片组（如 B650、Z790），仅主板携带，目前不参与规则判定
	Chipset *string `gorm:"type:varchar(50)"`

	// 热设计功耗（瓦），功耗估算的唯一输入
	TDP *int `gorm:"type:int"`

	// ---- 内存 ----

	// 内存代际（如 DDR5），内存与主板双方都会携带，匹配时忽略大小写
	RAMType  *string `gorm:"type:varchar(20);column:ram_type"`
	RAMSpeed *int    `gorm:"type:int;column:ram_speed"`
	RAMSlots *int    `gorm:"type:int;column:ram_slots"`

	// ---- 显卡 / 机箱 ----

	PCIeVersion    *string `gorm:"type:varchar(20);column:pcie_version"`
	GPULengthMM    *int    `gorm:"type:int;column:gpu_length_mm"`
	MaxGPULengthMM *int    `gorm:"type:int;column:max_gpu_length_mm"`

	// ---- 电源 / 机箱 ----

	PSUWattage    *int    `gorm:"type:int;column:psu_wattage"`
	PSUFormFactor *string `gorm:"type:varchar(20);column:psu_form_factor"`

	// 机箱支持的电源规格与主板版型列表
	// - 类型: JSON 数组，用 datatypes.JSONSlice 持久化，空数组与 NULL 等价（视为不限制）
	CaseSupportedPSU       datatypes.JSONSlice[string] `gorm:"column:case_supported_psu"`
	CaseMotherboardSupport datatypes.JSONSlice[string] `gorm:"column:case_motherboard_support"`

	// ---- 主板版型 / 散热器 ----

	MotherboardFormFactor *string `gorm:"type:varchar(20)"`
	CoolerHeightMM        *int    `gorm:"type:int;column:cooler_height_mm"`
	CaseMaxCoolerHeightMM *int    `gorm:"type:int;column:case_max_cooler_height_mm"`

	// ---- 存储 ----

	StorageInterface *string `gorm:"type:varchar(50)"`
	M2Slots          *int    `gorm:"type:int;column:m2_slots"`

	// ---- 展示信息 ----

	// 价格（分位精度不做要求，沿用浮点），用于装机单合计
	Price float64 `gorm:"type:decimal(10,2);default:0"`

	// 商品图与外链，选填
	Image string `gorm:"type:varchar(512)"`
	URL   string `gorm:"type:varchar(512);column:url"`
}

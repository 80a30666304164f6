package vo

import (
	"time"

	"github.com/Xushengqwer/build_service/models/entities"
	"github.com/Xushengqwer/build_service/models/enums"
)

// ComponentVO 定义了配件的响应数据结构
// - 兼容性属性与实体保持同构，缺失的属性序列化为 null（omitempty 省略）
type ComponentVO struct {
	ID    uint64              `json:"id"`              // 配件ID
	Name  string              `json:"name"`            // 配件名称
	Role  enums.ComponentRole `json:"type"`            // 配件角色
	Brand string              `json:"brand,omitempty"`
	Model string              `json:"model,omitempty"`

	Socket   *string `json:"socket,omitempty"`
	Chipset  *string `json:"chipset,omitempty"`
	TDP      *int    `json:"tdp,omitempty"`
	RAMType  *string `json:"ram_type,omitempty"`
	RAMSpeed *int    `json:"ram_speed,omitempty"`
	RAMSlots *int    `json:"ram_slots,omitempty"`

	PCIeVersion    *string `json:"pcie_version,omitempty"`
	GPULengthMM    *int    `json:"gpu_length_mm,omitempty"`
	MaxGPULengthMM *int    `json:"max_gpu_length_mm,omitempty"`

	PSUWattage             *int     `json:"psu_wattage,omitempty"`
	PSUFormFactor          *string  `json:"psu_form_factor,omitempty"`
	CaseSupportedPSU       []string `json:"case_supported_psu,omitempty"`
	CaseMotherboardSupport []string `json:"case_motherboard_support,omitempty"`

	MotherboardFormFactor *string `json:"motherboard_form_factor,omitempty"`
	CoolerHeightMM        *int    `json:"cooler_height_mm,omitempty"`
	CaseMaxCoolerHeightMM *int    `json:"case_max_cooler_height_mm,omitempty"`

	StorageInterface *string `json:"storage_interface,omitempty"`
	M2Slots          *int    `json:"m2_slots,omitempty"`

	Price     float64   `json:"price"`
	Image     string    `json:"image,omitempty"`
	URL       string    `json:"url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ListComponentsVO 定义了配件目录分页查询的响应结构。
type ListComponentsVO struct {
	Components []*ComponentVO `json:"components"` // 当前页的配件列表
	Total      int64          `json:"total"`      // 符合条件的总记录数
}

// ImportComponentsVO 定义了批量导入的响应结构。
type ImportComponentsVO struct {
	InsertedCount int      `json:"inserted_count"` // 实际写入条数
	InsertedIDs   []uint64 `json:"inserted_ids"`   // 写入记录的ID列表，与入参顺序一致
}

// MapComponentToVO 将配件实体转换为响应 VO。
func MapComponentToVO(c *entities.Component) *ComponentVO {
	if c == nil {
		return nil
	}
	return &ComponentVO{
		ID:                     c.ID,
		Name:                   c.Name,
		Role:                   c.Role,
		Brand:                  c.Brand,
		Model:                  c.Model,
		Socket:                 c.Socket,
		Chipset:                c.Chipset,
		TDP:                    c.TDP,
		RAMType:                c.RAMType,
		RAMSpeed:               c.RAMSpeed,
		RAMSlots:               c.RAMSlots,
		PCIeVersion:            c.PCIeVersion,
		GPULengthMM:            c.GPULengthMM,
		MaxGPULengthMM:         c.MaxGPULengthMM,
		PSUWattage:             c.PSUWattage,
		PSUFormFactor:          c.PSUFormFactor,
		CaseSupportedPSU:       c.CaseSupportedPSU,
		CaseMotherboardSupport: c.CaseMotherboardSupport,
		MotherboardFormFactor:  c.MotherboardFormFactor,
		CoolerHeightMM:         c.CoolerHeightMM,
		CaseMaxCoolerHeightMM:  c.CaseMaxCoolerHeightMM,
		StorageInterface:       c.StorageInterface,
		M2Slots:                c.M2Slots,
		Price:                  c.Price,
		Image:                  c.Image,
		URL:                    c.URL,
		CreatedAt:              c.CreatedAt,
		UpdatedAt:              c.UpdatedAt,
	}
}

// MapComponentsToVOs 将配件实体列表转换为响应 VO 列表。
// - 返回空切片而不是 nil，便于前端处理
func MapComponentsToVOs(components []*entities.Component) []*ComponentVO {
	if len(components) == 0 {
		return []*ComponentVO{}
	}
	out := make([]*ComponentVO, 0, len(components))
	for _, c := range components {
		if c == nil {
			continue
		}
		out = append(out, MapComponentToVO(c))
	}
	return out
}

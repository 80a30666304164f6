package events

import "time"

// BuildCreatedEvent 装机单创建事件
// - 使用场景: 创建成功后投递，供推荐/搜索等下游服务消费
type BuildCreatedEvent struct {
	EventID          string    `json:"event_id"`
	Timestamp        time.Time `json:"timestamp"`
	BuildID          uint64    `json:"build_id"`
	OwnerID          string    `json:"owner_id"`
	Name             string    `json:"name"`
	TotalPrice       float64   `json:"total_price"`
	EstimatedWattage int       `json:"estimated_wattage"`
	ComponentIDs     []uint64  `json:"component_ids"`
}

// BuildLikedEvent 装机单点赞事件
type BuildLikedEvent struct {
	EventID   string    `json:"event_id"`
	Timestamp time.Time `json:"timestamp"`
	BuildID   uint64    `json:"build_id"`
	UserID    string    `json:"user_id"`
}

// ComponentImportEvent 配件批量导入事件
// - 使用场景: 供采集侧投递的异步导入通道，消费端落库语义与同步导入接口一致
type ComponentImportEvent struct {
	EventID    string              `json:"event_id"`
	Timestamp  time.Time           `json:"timestamp"`
	Source     string              `json:"source"` // 数据来源标识（爬虫批次、人工补录等）
	Components []ImportedComponent `json:"components"`
}

// ImportedComponent 事件内嵌的配件数据，与 HTTP 导入接口的载荷字段保持一致。
// - 单独定义而不复用 dto，避免事件契约跟随接口校验标签漂移
type ImportedComponent struct {
	Name                   string   `json:"name"`
	Role                   string   `json:"type"`
	Brand                  string   `json:"brand,omitempty"`
	Model                  string   `json:"model,omitempty"`
	Socket                 *string  `json:"socket,omitempty"`
	Chipset                *string  `json:"chipset,omitempty"`
	TDP                    *int     `json:"tdp,omitempty"`
	RAMType                *string  `json:"ram_type,omitempty"`
	RAMSpeed               *int     `json:"ram_speed,omitempty"`
	RAMSlots               *int     `json:"ram_slots,omitempty"`
	PCIeVersion            *string  `json:"pcie_version,omitempty"`
	GPULengthMM            *int     `json:"gpu_length_mm,omitempty"`
	MaxGPULengthMM         *int     `json:"max_gpu_length_mm,omitempty"`
	PSUWattage             *int     `json:"psu_wattage,omitempty"`
	PSUFormFactor          *string  `json:"psu_form_factor,omitempty"`
	CaseSupportedPSU       []string `json:"case_supported_psu,omitempty"`
	CaseMotherboardSupport []string `json:"case_motherboard_support,omitempty"`
	MotherboardFormFactor  *string  `json:"motherboard_form_factor,omitempty"`
	CoolerHeightMM         *int     `json:"cooler_height_mm,omitempty"`
	CaseMaxCoolerHeightMM  *int     `json:"case_max_cooler_height_mm,omitempty"`
	StorageInterface       *string  `json:"storage_interface,omitempty"`
	M2Slots                *int     `json:"m2_slots,omitempty"`
	Price                  float64  `json:"price"`
	Image                  string   `json:"image,omitempty"`
	URL                    string   `json:"url,omitempty"`
}

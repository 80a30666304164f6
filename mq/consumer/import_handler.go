package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Xushengqwer/go-common/core"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/Xushengqwer/build_service/models/dto"
	"github.com/Xushengqwer/build_service/models/events"
	"github.com/Xushengqwer/build_service/service"
)

// todo  未配置死信队列

// MessageHandler 定义了处理 Kafka 消息的接口
type MessageHandler interface {
	Handle(ctx context.Context, msg kafka.Message) error
}

// --- ComponentImportHandler ---

// ComponentImportHandler 消费配件批量导入事件，复用服务层的事务导入逻辑，
// 落库语义与同步 HTTP 导入接口完全一致。
type ComponentImportHandler struct {
	logger           *core.ZapLogger
	componentService service.ComponentService
}

func NewComponentImportHandler(logger *core.ZapLogger, componentService service.ComponentService) *ComponentImportHandler {
	return &ComponentImportHandler{
		logger:           logger,
		componentService: componentService,
	}
}

// payloadsFromEvent 将事件内嵌的配件数据转换为服务层的写入载荷。
func payloadsFromEvent(event *events.ComponentImportEvent) []dto.ComponentPayload {
	payloads := make([]dto.ComponentPayload, 0, len(event.Components))
	for _, c := range event.Components {
		payloads = append(payloads, dto.ComponentPayload{
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
		})
	}
	return payloads
}

func (h *ComponentImportHandler) Handle(ctx context.Context, msg kafka.Message) error {
	h.logger.Debug("ComponentImportHandler: 开始处理 Kafka 消息", zap.String("topic", msg.Topic))

	var event events.ComponentImportEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		h.logger.Error("ComponentImportHandler: 反序列化 Kafka 消息失败", zap.Error(err), zap.ByteString("value", msg.Value))
		return nil // 不重试无法解析的消息
	}

	if len(event.Components) == 0 {
		h.logger.Warn("ComponentImportHandler: 事件不包含任何配件，跳过",
			zap.String("event_id", event.EventID),
			zap.String("source", event.Source))
		return nil
	}

	h.logger.Info("ComponentImportHandler: 成功解析配件导入消息",
		zap.String("event_id", event.EventID),
		zap.String("source", event.Source),
		zap.Int("count", len(event.Components)))

	importCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := h.componentService.ImportComponents(importCtx, payloadsFromEvent(&event))
	if err != nil {
		h.logger.Error("ComponentImportHandler: 批量导入配件失败",
			zap.Error(err),
			zap.String("event_id", event.EventID),
			zap.String("source", event.Source))
		return fmt.Errorf("ComponentImportHandler: 调用 ImportComponents 失败: %w", err)
	}

	h.logger.Info("ComponentImportHandler: 成功导入配件",
		zap.String("event_id", event.EventID),
		zap.Int("inserted", result.InsertedCount))
	return nil
}

package producer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Xushengqwer/go-common/core"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/Xushengqwer/build_service/config"
	"github.com/Xushengqwer/build_service/models/events"
)

// KafkaProducer Kafka 消息生产者
type KafkaProducer struct {
	writer *kafka.Writer
	logger *core.ZapLogger
	topics config.Topics
}

// NewKafkaProducer 创建一个新的 Kafka 生产者实例
func NewKafkaProducer(config config.KafkaConfig, logger *core.ZapLogger) *KafkaProducer {
	writer := &kafka.Writer{
		Addr:     kafka.TCP(config.Brokers...),
		Balancer: &kafka.LeastBytes{},
	}
	return &KafkaProducer{
		writer: writer,
		logger: logger,
		topics: config.Topics,
	}
}

// SendEvent 发送事件到指定 Kafka 主题
func (p *KafkaProducer) SendEvent(ctx context.Context, topic string, event interface{}) error {
	eventBytes, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("Failed to marshal event", zap.Error(err), zap.String("topic", topic))
		return err
	}

	p.logger.Debug("Sending Kafka message",
		zap.String("topic", topic),
		zap.ByteString("payload", eventBytes))

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Value: eventBytes,
	})

	if err != nil {
		p.logger.Error("Failed to write Kafka message", zap.Error(err), zap.String("topic", topic))
	} else {
		p.logger.Info("Successfully sent Kafka message", zap.String("topic", topic))
	}
	return err
}

// SendBuildCreatedEvent 发送装机单创建事件到 Kafka
// - 意图: 将新创建的装机单摘要（含兼容性检查结果）广播给下游服务，例如搜索索引或推荐服务
// - 输入: ctx context.Context 上下文, data events.BuildCreatedEvent 事件负载（EventID 与 Timestamp 由本方法填充）
// - 输出: error 错误信息
func (p *KafkaProducer) SendBuildCreatedEvent(ctx context.Context, data events.BuildCreatedEvent) error {
	data.EventID = uuid.New().String()
	data.Timestamp = time.Now()

	return p.SendEvent(ctx, p.topics.BuildCreated, data)
}

// SendBuildLikedEvent 发送装机单点赞事件到 Kafka
// - 意图: 将点赞行为广播给下游服务（如消息通知服务）
// - 输入: ctx context.Context 上下文, buildID uint64 装机单ID, userID string 点赞用户ID
// - 输出: error 错误信息
func (p *KafkaProducer) SendBuildLikedEvent(ctx context.Context, buildID uint64, userID string) error {
	event := events.BuildLikedEvent{
		EventID:   uuid.New().String(),
		Timestamp: time.Now(),
		BuildID:   buildID,
		UserID:    userID,
	}

	return p.SendEvent(ctx, p.topics.BuildLiked, event)
}

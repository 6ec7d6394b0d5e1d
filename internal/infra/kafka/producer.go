package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"plume-go/internal/config"
	"plume-go/pkg/logger"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

var producer *kafka.Writer

// 帖子事件动作
const (
	PostActionCreated = "created"
	PostActionUpdated = "updated"
	PostActionDeleted = "deleted"
)

// PostEvent 帖子变更事件消息体
// worker 据此同步搜索索引并向订阅者发通知
type PostEvent struct {
	PostID int64  `json:"post_id"`
	BlogID int64  `json:"blog_id"`
	Action string `json:"action"`
}

// InitProducer 初始化 Kafka 生产者
func InitProducer(cfg *config.KafkaConfig) error {
	producer = &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}

	logger.Info("Kafka producer initialized",
		zap.Strings("brokers", cfg.Brokers),
	)

	return nil
}

// SendPostEvent 发送帖子变更事件到 Kafka
func SendPostEvent(ctx context.Context, topic string, event *PostEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal post event: %w", err)
	}

	msg := kafka.Message{
		Topic: topic,
		Key:   []byte(fmt.Sprintf("post-%d", event.PostID)),
		Value: payload,
	}

	if err := producer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to send post event: %w", err)
	}

	logger.Info("Post event sent",
		zap.Int64("post_id", event.PostID),
		zap.String("topic", topic),
		zap.String("action", event.Action),
	)

	return nil
}

// SendRaw 发送原始消息到指定 topic
func SendRaw(ctx context.Context, topic, key string, value []byte) error {
	msg := kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: value,
	}

	if err := producer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to send kafka message: %w", err)
	}
	return nil
}

// CloseProducer 关闭生产者
func CloseProducer() error {
	if producer == nil {
		return nil
	}
	logger.Info("Kafka producer closed")
	return producer.Close()
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"plume-go/internal/config"
	"plume-go/internal/infra/database"
	infraES "plume-go/internal/infra/elasticsearch"
	infraKafka "plume-go/internal/infra/kafka"
	"plume-go/internal/repository"
	"plume-go/internal/service"
	"plume-go/pkg/logger"

	"go.uber.org/zap"
)

// worker 消费帖子变更事件：同步搜索索引，并为新帖子做订阅者通知分发
func main() {
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	if err := logger.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.Output, cfg.Log.FilePath); err != nil {
		panic(fmt.Sprintf("Failed to init logger: %v", err))
	}
	defer logger.Sync()

	if err := database.Init(&cfg.Database); err != nil {
		logger.Fatal("Failed to init database", zap.Error(err))
	}
	defer database.Close()

	if err := infraES.Init(&cfg.Elasticsearch); err != nil {
		logger.Fatal("Failed to init elasticsearch", zap.Error(err))
	}
	defer infraES.Close()

	if err := infraES.InitIndexes(); err != nil {
		logger.Fatal("Failed to init elasticsearch indexes", zap.Error(err))
	}

	db := database.Get()
	postRepo := repository.NewPostRepository(db)
	subscriptionRepo := repository.NewSubscriptionRepository(db)
	searchService := service.NewSearchService(postRepo)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 监听系统信号，优雅退出
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		logger.Info("Received signal, shutting down", zap.String("signal", sig.String()))
		cancel()
	}()

	topic := cfg.Kafka.Topics["post_events"]
	groupID := "plume-go-post-worker"

	logger.Info("Post event worker started",
		zap.String("topic", topic),
		zap.String("group", groupID),
		zap.Strings("brokers", cfg.Kafka.Brokers),
	)

	eventHandler := func(event *infraKafka.PostEvent) error {
		switch event.Action {
		case infraKafka.PostActionDeleted:
			if err := infraES.DeletePost(ctx, event.PostID); err != nil {
				return err
			}
		case infraKafka.PostActionCreated:
			if err := searchService.SyncPostToES(event.PostID); err != nil {
				return err
			}
			notifySubscribers(subscriptionRepo, event)
		default:
			if err := searchService.SyncPostToES(event.PostID); err != nil {
				return err
			}
		}

		logger.Info("Post event processed",
			zap.Int64("post_id", event.PostID),
			zap.String("action", event.Action),
		)
		return nil
	}

	infraKafka.StartPostEventConsumer(ctx, cfg.Kafka.Brokers, topic, groupID, eventHandler)

	logger.Info("Post event worker stopped")
}

// notifySubscribers 新帖子发布后的订阅者通知分发
// 目前仅记录分发日志，投递渠道（邮件/推送）后续接入
func notifySubscribers(subscriptionRepo *repository.SubscriptionRepository, event *infraKafka.PostEvent) {
	subscriberIDs, err := subscriptionRepo.ListSubscriberIDs(event.BlogID)
	if err != nil {
		logger.Error("List subscribers failed",
			zap.Int64("blog_id", event.BlogID),
			zap.Error(err),
		)
		return
	}

	if len(subscriberIDs) == 0 {
		return
	}

	logger.Info("Notify subscribers of new post",
		zap.Int64("blog_id", event.BlogID),
		zap.Int64("post_id", event.PostID),
		zap.Int("subscriber_count", len(subscriberIDs)),
	)
}

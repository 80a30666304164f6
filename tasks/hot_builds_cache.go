// File: tasks/hot_builds_cache.go
package tasks

import (
	"context"
	"time"

	"github.com/Xushengqwer/go-common/core"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/Xushengqwer/build_service/constant"
	"github.com/Xushengqwer/build_service/repo/redis"
)

// HotBuildsCacheTask 负责定时刷新 Redis 中的热门装机单缓存。
// 它协调生成热榜快照 ZSet，并基于该快照更新装机单摘要 Hash。
type HotBuildsCacheTask struct {
	taskCache redis.BuildTaskCache
	cron      *cron.Cron
	logger    *core.ZapLogger
}

// NewHotBuildsCacheTask 初始化并启动热门装机单缓存的定时任务。
// - taskCache: 实现了 redis.BuildTaskCache 接口的实例。
// - logger: ZapLogger 实例。
func NewHotBuildsCacheTask(taskCache redis.BuildTaskCache, logger *core.ZapLogger) *HotBuildsCacheTask {
	cronV3 := cron.New() // 默认分钟级精度

	task := &HotBuildsCacheTask{
		taskCache: taskCache,
		cron:      cronV3,
		logger:    logger,
	}
	task.startCronJob()
	return task
}

// startCronJob 配置并启动 cron 作业。
func (t *HotBuildsCacheTask) startCronJob() {
	schedule := constant.HotBuildsCacheCronSpec
	t.logger.Info("准备启动热门装机单缓存刷新定时任务", zap.String("schedule", schedule))

	entryID, err := t.cron.AddFunc(schedule, func() {
		t.logger.Info("热门装机单缓存刷新任务开始执行...")
		startTime := time.Now()
		// 为单次任务执行设置超时，防止任务卡死。
		// 超时时间应大于 CreateHotList 与 CacheHotBuildsToRedis
		// 正常执行时间的总和，并留有一定余量。
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()

		t.syncHotCaches(ctx)

		duration := time.Since(startTime)
		t.logger.Info("热门装机单缓存刷新任务执行完毕", zap.Duration("duration", duration))
	})

	if err != nil {
		t.logger.Fatal("添加热门装机单缓存刷新 cron 作业失败", zap.Error(err), zap.String("schedule", schedule))
	}

	t.cron.Start()
	t.logger.Info("热门装机单缓存刷新定时任务已启动", zap.Uint("cronEntryID", uint(entryID)))
}

// syncHotCaches 是定时任务执行的实际同步逻辑。
// 它按顺序调用 BuildTaskCache 接口的方法：
// 1. 创建/更新热榜快照 (ZSet)。
// 2. 基于快照同步热门装机单摘要到 Hash。
func (t *HotBuildsCacheTask) syncHotCaches(ctx context.Context) {
	// 步骤 1: 创建/更新热榜快照 (constant.HotBuildsRankKey)
	// 这个快照将作为后续缓存更新步骤的数据源。
	t.logger.Info("任务步骤1: 开始创建/更新热榜快照 ZSet...")
	if err := t.taskCache.CreateHotList(ctx, constant.HotBuildsCacheSize); err != nil {
		// 如果创建热榜快照失败，后续的缓存更新可能基于旧的或不一致的数据源。
		// 当前选择：记录错误并继续，让后续步骤自行处理源数据问题。
		t.logger.Error("创建/更新热榜快照 ZSet 失败，后续缓存可能不准确", zap.Error(err))
	} else {
		t.logger.Info("任务步骤1: 成功创建/更新热榜快照 ZSet")
	}

	// 步骤 2: 同步热门装机单摘要到 Hash 缓存。
	// 此方法依赖于步骤 1 生成的 `constant.HotBuildsRankKey`。
	t.logger.Info("任务步骤2: 开始同步热门装机单摘要到 Redis Hash...")
	if err := t.taskCache.CacheHotBuildsToRedis(ctx); err != nil {
		t.logger.Error("同步热门装机单摘要到 Redis Hash 失败", zap.Error(err))
	} else {
		t.logger.Info("任务步骤2: 成功同步热门装机单摘要到 Redis Hash")
	}
}

// Stop 优雅地停止 cron 调度器。
func (t *HotBuildsCacheTask) Stop() context.Context {
	t.logger.Info("正在停止热门装机单缓存刷新定时任务...")
	stopCtx := t.cron.Stop()
	t.logger.Info("热门装机单缓存刷新定时任务已停止调度。等待正在执行的任务完成...")
	return stopCtx // 调用者可以使用此 context 等待任务结束
}

package tasks

import (
	"context"
	"time"

	"github.com/Xushengqwer/go-common/core"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/Xushengqwer/build_service/constant"
	"github.com/Xushengqwer/build_service/repo/mysql"
	"github.com/Xushengqwer/build_service/repo/redis"
)

// LikeCountSyncTask 负责定时将 Redis 中的装机单点赞数同步到 MySQL 数据库。
type LikeCountSyncTask struct {
	buildLikeRepo  redis.BuildLikeRepository            // Redis 仓库，用于获取点赞计数
	buildBatchRepo mysql.BuildBatchOperationsRepository // MySQL 批量操作仓库，用于更新点赞数
	cron           *cron.Cron                           // cron V3 实例
	logger         *core.ZapLogger                      // 日志记录器
}

// NewLikeCountSyncTask 初始化并启动点赞数同步的定时任务。
func NewLikeCountSyncTask(
	buildLikeRepo redis.BuildLikeRepository,
	buildBatchRepo mysql.BuildBatchOperationsRepository,
	logger *core.ZapLogger,
) *LikeCountSyncTask {
	cronV3 := cron.New() // 默认分钟级精度
	task := &LikeCountSyncTask{
		buildLikeRepo:  buildLikeRepo,
		buildBatchRepo: buildBatchRepo,
		cron:           cronV3,
		logger:         logger,
	}
	task.startCronJob() // 在构造函数中启动定时作业
	return task
}

// startCronJob 配置并启动 cron 作业。
// 使用 constant.SyncLikeCountCronSpec 定义的 cron 表达式来调度 syncLikeCountsToDB 方法。
func (t *LikeCountSyncTask) startCronJob() {
	schedule := constant.SyncLikeCountCronSpec
	t.logger.Info("准备启动装机单点赞数同步MySQL定时任务", zap.String("schedule", schedule))

	entryID, err := t.cron.AddFunc(schedule, func() {
		t.logger.Info("装机单点赞数同步MySQL任务开始执行...")
		startTime := time.Now()
		// 为单次任务执行设置超时，例如 3 分钟。
		// 这个超时应该足够完成 Redis 数据获取和 MySQL 批量更新。
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
		defer cancel()

		t.syncLikeCountsToDB(ctx) // 调用核心同步逻辑

		duration := time.Since(startTime)
		t.logger.Info("装机单点赞数同步MySQL任务执行完毕", zap.Duration("duration", duration))
	})

	if err != nil {
		// 如果添加 cron 作业失败（通常是 schedule 表达式错误），记录致命错误。
		t.logger.Fatal("添加装机单点赞数同步 cron 作业失败", zap.Error(err), zap.String("schedule", schedule))
	}

	t.cron.Start() // 启动 cron 调度器 (在后台 goroutine 中运行)
	t.logger.Info("装机单点赞数同步MySQL定时任务已启动", zap.Uint("cronEntryID", uint(entryID)))
}

// syncLikeCountsToDB 是定时任务执行的实际同步逻辑。
// 1. 从 Redis 获取全量的装机单点赞计数。
// 2. 调用 MySQL 仓库的 BatchUpdateBuildLikeCounts 方法批量回写数据库（以 Redis 计数为准覆盖）。
func (t *LikeCountSyncTask) syncLikeCountsToDB(ctx context.Context) {
	t.logger.Info("任务步骤1: 开始从 Redis 获取全量装机单点赞计数...")
	likeCounts, err := t.buildLikeRepo.GetAllLikeCounts(ctx)
	if err != nil {
		// 如果从 Redis 获取数据失败，记录错误并中止本次同步。
		t.logger.Error("从 Redis 获取全量点赞计数失败，本次同步中止。", zap.Error(err))
		return
	}

	countFromRedis := len(likeCounts)
	if countFromRedis == 0 {
		t.logger.Info("从 Redis 获取到的点赞计数为空，无需同步到 MySQL。")
		return // 没有数据需要同步
	}
	t.logger.Info("任务步骤1: 成功从 Redis 获取到点赞计数。", zap.Int("装机单数量", countFromRedis))

	t.logger.Info("任务步骤2: 开始将点赞数批量回写到 MySQL...")
	// BatchUpdateBuildLikeCounts 内部按批次处理并记录失败批次的日志，通常返回 nil。
	if err := t.buildBatchRepo.BatchUpdateBuildLikeCounts(ctx, likeCounts); err != nil {
		t.logger.Error("调用 MySQL 批量回写点赞数操作时发生意外错误",
			zap.Error(err),
			zap.Int("提交数量", countFromRedis),
		)
	} else {
		// 这里的日志表示调用已完成。实际的成功/失败情况需查看批量更新的内部日志。
		t.logger.Info("任务步骤2: 调用 MySQL 批量回写点赞数操作已完成。", zap.Int("提交数量", countFromRedis))
	}
}

// Stop 优雅地停止 cron 调度器。
// 返回一个 context，调用者可以使用它来等待正在运行的任务完成。
func (t *LikeCountSyncTask) Stop() context.Context {
	t.logger.Info("正在停止装机单点赞数同步MySQL定时任务...")
	stopCtx := t.cron.Stop() // cron.Stop() 停止新任务调度，并返回一个在其管理的任务都完成后关闭的 context
	t.logger.Info("装机单点赞数同步MySQL定时任务已停止调度。等待正在执行的任务完成...")
	return stopCtx
}

// File: repo/mysql/batch_for_cache.go
package mysql

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Xushengqwer/go-common/core"

	"github.com/Xushengqwer/build_service/config"
	"github.com/Xushengqwer/build_service/models/entities"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// BuildBatchOperationsRepository defines the interface for batch database operations,
// primarily supporting tasks like syncing data with Redis or populating caches.
type BuildBatchOperationsRepository interface {
	// BatchUpdateBuildLikeCounts 异步、并发地将 Redis 中的点赞量批量同步到 MySQL。
	// 设计目标是高吞吐量和容错性，允许在单个任务中处理大量更新，并记录但不中断因部分批次失败。
	BatchUpdateBuildLikeCounts(ctx context.Context, likeCounts map[uint64]int64) error

	// GetBuildsByIDs 根据 ID 列表批量检索装机单 (entities.Build)。
	// - 主要服务于需要一次性加载多个已知 ID 装机单的场景，例如填充 Redis 热榜缓存。
	// - 使用 "WHERE id IN (...)" 进行查询。
	GetBuildsByIDs(ctx context.Context, ids []uint64) ([]*entities.Build, error)
}

type buildBatchOperationsRepository struct {
	db          *gorm.DB
	logger      *core.ZapLogger
	likeSyncCfg config.LikeSyncConfig
}

// NewBuildBatchOperationsRepository creates a new instance of BuildBatchOperationsRepository.
func NewBuildBatchOperationsRepository(db *gorm.DB, logger *core.ZapLogger, likeSyncCfg config.LikeSyncConfig) BuildBatchOperationsRepository {
	return &buildBatchOperationsRepository{db: db, logger: logger, likeSyncCfg: likeSyncCfg}
}

// updateItem 是一个内部结构体，用于在并发处理通道中传递 ID 和对应的点赞量。
type updateItem struct {
	ID        uint64
	LikeCount int64
}

// BatchUpdateBuildLikeCounts 实现了点赞量批量同步的核心逻辑。
//
// 使用场景:
// 由后台定时任务调用，将 Redis 中缓存的装机单点赞量 (likeCounts map)
// 定期、批量且并发地同步更新到 MySQL 的 builds 表中。
//
// 核心机制:
// 1. 数据分批: 根据配置 `likeSyncCfg.BatchSize` 将大量更新分割成小批次。
// 2. 并发处理: 根据配置 `likeSyncCfg.ConcurrencyLevel` 启动 worker goroutine 池处理这些批次。
// 3. 数据库更新: 每个 worker 对其批次内的数据，通过 `processBatch` 方法构建单条 SQL (CASE WHEN) 更新数据库。
//
// 设计目标:
// 高效同步数据，同时通过分批和并发控制数据库负载，保证服务稳定性。
// 允许部分批次失败（记录错误并聚合返回），以实现最终一致性。
func (r *buildBatchOperationsRepository) BatchUpdateBuildLikeCounts(ctx context.Context, likeCounts map[uint64]int64) error {
	totalUpdates := len(likeCounts)
	if totalUpdates == 0 {
		r.logger.Info("BatchUpdateBuildLikeCounts: 没有需要更新的装机单点赞量，任务提前结束。")
		return nil // 如果没有数据，直接返回 nil 表示成功（无需操作）。
	}

	// --- 1. 加载并验证配置 ---
	batchSize := r.likeSyncCfg.BatchSize
	if batchSize <= 0 {
		batchSize = 500 // Fallback
		r.logger.Warn("BatchUpdateBuildLikeCounts: 配置 BatchSize 无效，使用默认值", zap.Int("defaultBatchSize", batchSize), zap.Int("configured", r.likeSyncCfg.BatchSize))
	}

	concurrencyLevel := r.likeSyncCfg.ConcurrencyLevel
	if concurrencyLevel <= 0 {
		concurrencyLevel = 1 // Fallback (顺序执行)
		r.logger.Warn("BatchUpdateBuildLikeCounts: 配置 ConcurrencyLevel 无效，使用默认值 1", zap.Int("defaultConcurrency", concurrencyLevel), zap.Int("configured", r.likeSyncCfg.ConcurrencyLevel))
	}

	// --- 2. 数据准备与日志记录 ---
	itemsToUpdate := make([]updateItem, 0, totalUpdates)
	for id, count := range likeCounts {
		itemsToUpdate = append(itemsToUpdate, updateItem{ID: id, LikeCount: count})
	}

	totalBatches := (totalUpdates + batchSize - 1) / batchSize
	r.logger.Info("BatchUpdateBuildLikeCounts: 开始并发批量更新",
		zap.Int("总数", totalUpdates),
		zap.Int("批大小", batchSize),
		zap.Int("并发数", concurrencyLevel),
		zap.Int("批次数", totalBatches),
	)

	// --- 3. 设置并发工作池 ---
	var wg sync.WaitGroup
	jobs := make(chan []updateItem, concurrencyLevel)
	results := make(chan error, totalBatches)
	overallStartTime := time.Now()

	// --- 4. 启动 Worker Goroutines ---
	r.logger.Info("BatchUpdateBuildLikeCounts: 启动 Worker", zap.Int("数量", concurrencyLevel))
	for i := 0; i < concurrencyLevel; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			r.logger.Debug("Worker 启动", zap.Int("workerID", workerID))
			for batch := range jobs {
				select {
				case <-ctx.Done():
					r.logger.Warn("上下文取消，Worker 停止处理", zap.Int("workerID", workerID), zap.Error(ctx.Err()))
					results <- fmt.Errorf("worker %d: context cancelled: %w", workerID, ctx.Err())
					continue
				default:
				}

				err := r.processBatch(ctx, batch, workerID)
				results <- err
			}
			r.logger.Debug("Worker 正常退出", zap.Int("workerID", workerID))
		}(i)
	}

	// --- 5. 启动分发任务 Goroutine ---
	go func() {
		defer func() {
			close(jobs)
			r.logger.Info("所有批次任务已发送完毕，jobs channel 已关闭。")
		}()

		for i := 0; i < totalUpdates; i += batchSize {
			end := i + batchSize
			if end > totalUpdates {
				end = totalUpdates
			}
			batchCopy := make([]updateItem, len(itemsToUpdate[i:end]))
			copy(batchCopy, itemsToUpdate[i:end])

			select {
			case <-ctx.Done():
				r.logger.Warn("上下文取消，停止分发更多批次任务。", zap.Error(ctx.Err()))
				return
			case jobs <- batchCopy:
			}
		}
	}()

	// --- 6. 启动收集结果 Goroutine ---
	var aggregatedErrors []error
	go func() {
		wg.Wait()
		close(results)
		r.logger.Info("所有 Worker 已完成处理，results channel 已关闭。")
	}()

	// --- 7. 收集并聚合结果 ---
	r.logger.Info("开始收集处理结果...")
	for err := range results {
		if err != nil {
			aggregatedErrors = append(aggregatedErrors, err)
		}
	}
	r.logger.Info("结果收集完毕。")

	// --- 8. 最终日志记录与返回 ---
	totalDuration := time.Since(overallStartTime)
	failedCount := len(aggregatedErrors)
	r.logger.Info("完成所有批次的装机单点赞量并发更新处理。",
		zap.Duration("总耗时", totalDuration),
		zap.Int("总批次数", totalBatches),
		zap.Int("失败批次数", failedCount),
	)

	if failedCount > 0 {
		var errorStrings []string
		for _, e := range aggregatedErrors {
			errorStrings = append(errorStrings, e.Error())
		}
		finalError := fmt.Errorf("并发批量更新过程中发生错误 (%d / %d 个批次失败): %s", failedCount, totalBatches, strings.Join(errorStrings, "; "))
		r.logger.Error("并发批量更新最终结果：失败", zap.Error(finalError))
		return finalError
	}

	r.logger.Info("并发批量更新最终结果：成功。")
	return nil
}

// processBatch 负责处理单个批次的数据库更新。
func (r *buildBatchOperationsRepository) processBatch(ctx context.Context, batch []updateItem, workerID int) error {
	currentBatchSize := len(batch)

	var (
		ids          []uint64
		sqlCase      strings.Builder
		updateParams []interface{}
	)
	sqlCase.WriteString("CASE id ")
	for _, item := range batch {
		ids = append(ids, item.ID)
		sqlCase.WriteString("WHEN ? THEN ? ")
		updateParams = append(updateParams, item.ID, item.LikeCount)
	}
	sqlCase.WriteString("END")

	dbOperationStart := time.Now()
	err := r.db.WithContext(ctx).Model(&entities.Build{}).
		Where("id IN ?", ids).
		Update("likes", gorm.Expr(sqlCase.String(), updateParams...)).Error
	dbDuration := time.Since(dbOperationStart)

	if err != nil {
		r.logger.Error("processBatch: 数据库更新批次失败",
			zap.Int("workerID", workerID),
			zap.Int("batchSize", currentBatchSize),
			zap.Duration("db耗时", dbDuration),
			zap.Error(err),
		)
		return fmt.Errorf("worker %d 处理批次 (大小 %d) 失败: %w", workerID, currentBatchSize, err)
	}

	r.logger.Debug("processBatch: 数据库更新批次成功",
		zap.Int("workerID", workerID),
		zap.Int("batchSize", currentBatchSize),
		zap.Duration("db耗时", dbDuration),
	)
	return nil
}

// GetBuildsByIDs 实现根据 ID 列表批量获取装机单 (entities.Build)。
func (r *buildBatchOperationsRepository) GetBuildsByIDs(ctx context.Context, ids []uint64) ([]*entities.Build, error) {
	var builds []*entities.Build

	if len(ids) == 0 {
		r.logger.Debug("GetBuildsByIDs: ids 为空，返回空列表。")
		return builds, nil
	}
	r.logger.Debug("GetBuildsByIDs: 开始查询装机单。", zap.Int("id数量", len(ids)))

	// GORM 的 Find 方法会自动处理软删除（如果模型中有 DeletedAt），并只返回存在的记录。
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&builds).Error; err != nil {
		r.logger.Error("GetBuildsByIDs: 查询装机单失败。", zap.Error(err))
		return nil, err
	}

	r.logger.Debug("GetBuildsByIDs: 查询装机单成功。", zap.Int("找到数量", len(builds)))
	return builds, nil
}

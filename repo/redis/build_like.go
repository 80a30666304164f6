package redis

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Xushengqwer/go-common/core"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Xushengqwer/build_service/config"
	"github.com/Xushengqwer/build_service/constant"
)

// BuildLikeRepository 定义了与装机单点赞计数、热度排名相关的 Redis 操作接口。
// - 目标: 点赞写路径只触达 Redis，计数回刷 MySQL 由定时任务完成。
// - 注意: “一人一赞”的去重不在这里做，由 likes 表的唯一索引兜底，
//   本仓库只负责已确认有效的点赞的计数与排名。
type BuildLikeRepository interface {
	// IncrementLikeCount 原子性地增加指定装机单的点赞数，并更新其在热度榜中的分数。
	// - 使用 Lua 脚本保证计数器 (`likeCountKey`) 和 ZSet (`buildsRankKey`) 的原子性更新。
	IncrementLikeCount(ctx context.Context, buildID uint64) error

	// GetAllLikeCounts 使用 SCAN 命令分批获取 Redis 中所有装机单的点赞计数。
	// - 目的是安全、高效地获取全量点赞数据，作为回刷 MySQL 的数据源。
	// - 使用 SCAN 避免一次性 KEYS 操作阻塞 Redis，MGET 批量获取提高效率。
	// - 输出: map[uint64]int64 (装机单 ID -> 点赞数), error 操作错误。
	GetAllLikeCounts(ctx context.Context) (map[uint64]int64, error)
}

// buildLikeRepository 是 BuildLikeRepository 接口的 Redis 实现。
type buildLikeRepository struct {
	redisClient *redis.Client
	logger      *core.ZapLogger
	likeSyncCfg config.LikeSyncConfig // 点赞回刷相关配置，这里用到 ScanBatchSize
}

// NewBuildLikeRepository 创建 BuildLikeRepository 实例。
func NewBuildLikeRepository(redisClient *redis.Client, logger *core.ZapLogger, likeSyncCfg config.LikeSyncConfig) BuildLikeRepository {
	return &buildLikeRepository{
		redisClient: redisClient,
		logger:      logger,
		likeSyncCfg: likeSyncCfg,
	}
}

// incrLikeScript 原子性增加点赞数并把最新计数写入热度榜。
var incrLikeScript = redis.NewScript(`
    local likeCount = redis.call("INCR", KEYS[1])
    redis.call("ZADD", KEYS[2], likeCount, ARGV[1])
    return likeCount
`)

// IncrementLikeCount 实现点赞计数的原子递增。
func (r *buildLikeRepository) IncrementLikeCount(ctx context.Context, buildID uint64) error {
	likeCountKey := fmt.Sprintf("%s%d", constant.BuildLikeCountPrefix, buildID)

	_, err := incrLikeScript.Run(ctx, r.redisClient, []string{likeCountKey, constant.BuildsRankKey}, buildID).Result()
	if err != nil {
		r.logger.Error("Lua 脚本执行失败：增加点赞数和更新排名", zap.Error(err), zap.Uint64("buildID", buildID))
		return fmt.Errorf("原子性增加点赞数失败 (BuildID: %d): %w", buildID, err)
	}

	r.logger.Debug("成功增加点赞数并更新排名", zap.Uint64("buildID", buildID))
	return nil
}

// GetAllLikeCounts 使用 SCAN 命令安全地迭代并获取所有装机单的点赞数。
// 此方法主要用于定时任务，将 Redis 中的全量点赞数据回刷到 MySQL。
func (r *buildLikeRepository) GetAllLikeCounts(ctx context.Context) (map[uint64]int64, error) {
	likeCounts := make(map[uint64]int64)
	var cursor uint64 = 0
	matchPattern := constant.BuildLikeCountPrefix + "*"

	scanCount := r.likeSyncCfg.ScanBatchSize
	if scanCount <= 0 {
		scanCount = 1000
		r.logger.Warn("GetAllLikeCounts: 配置中的 ScanBatchSize 无效或为零，使用默认值。",
			zap.Int64("defaultScanBatchSize", scanCount),
			zap.Int64("configuredScanBatchSize", r.likeSyncCfg.ScanBatchSize),
		)
	}

	r.logger.Info("开始扫描 Redis 获取所有装机单点赞数",
		zap.String("pattern", matchPattern),
		zap.Int64("scan_batch_size", scanCount),
	)
	startTime := time.Now()

	// 使用 for 循环和 SCAN 命令迭代，直到游标返回 0，表示遍历完成。
	for {
		keys, nextCursor, err := r.redisClient.Scan(ctx, cursor, matchPattern, scanCount).Result()
		if err != nil {
			r.logger.Error("执行 Redis SCAN 命令失败",
				zap.Error(err),
				zap.Uint64("cursor", cursor),
				zap.String("pattern", matchPattern),
			)
			return nil, fmt.Errorf("扫描 Redis Keys 失败 (模式: %s): %w", matchPattern, err)
		}

		if len(keys) > 0 {
			values, mgetErr := r.redisClient.MGet(ctx, keys...).Result()
			if mgetErr != nil {
				r.logger.Error("执行 Redis MGET 命令批量获取点赞数失败",
					zap.Error(mgetErr),
					zap.Strings("keys_in_batch", keys),
				)
				return nil, fmt.Errorf("批量获取点赞数值失败 (%d keys): %w", len(keys), mgetErr)
			}

			for i, key := range keys {
				buildIDStr := strings.TrimPrefix(key, constant.BuildLikeCountPrefix)
				buildID, parseErr := strconv.ParseUint(buildIDStr, 10, 64)
				if parseErr != nil {
					r.logger.Error("从 Redis Key 解析 BuildID 失败，已跳过该 Key。",
						zap.Error(parseErr),
						zap.String("key", key),
					)
					continue
				}

				likeCount := int64(0)
				if i < len(values) && values[i] != nil {
					if valueStr, ok := values[i].(string); ok && valueStr != "" {
						parsedCount, parseCountErr := strconv.ParseInt(valueStr, 10, 64)
						if parseCountErr != nil {
							r.logger.Error("解析 Redis 中的点赞数值失败，该装机单点赞数将视为 0。",
								zap.Error(parseCountErr),
								zap.String("key", key),
								zap.String("value_str", valueStr),
							)
						} else {
							likeCount = parsedCount
						}
					} else {
						r.logger.Warn("Redis Key 的值类型不是有效字符串或为空，该装机单点赞数将视为 0。",
							zap.String("key", key),
							zap.Any("value", values[i]),
						)
					}
				} else {
					r.logger.Warn("MGET 未能获取到 Key 的值 (可能已删除或类型错误)，该装机单点赞数将视为 0。",
						zap.String("key", key),
						zap.Int("value_index", i),
					)
				}
				likeCounts[buildID] = likeCount
			}
		}

		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}

	r.logger.Info("完成扫描 Redis 装机单点赞数",
		zap.Int("total_unique_builds_found", len(likeCounts)),
		zap.Duration("duration", time.Since(startTime)),
	)
	return likeCounts, nil
}

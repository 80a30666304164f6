package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/Xushengqwer/go-common/core"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Xushengqwer/build_service/constant"
	"github.com/Xushengqwer/build_service/models/entities"
)

// Cache 定义了装机单相关的缓存操作接口。
// - 目标: 提供 Redis 缓存层，加速热门榜单的访问，减轻数据库压力。
type Cache interface {
	// GetBuildRank 获取指定装机单在热门榜 ZSet (`HotBuildsRankKey`) 中的排名（0-based, 降序）。
	// - 返回 -1 表示装机单不在榜单中。
	GetBuildRank(ctx context.Context, buildID uint64) (int64, error)

	// GetBuildsByRange 从热门榜 ZSet 获取指定排名范围内的装机单 ID 列表。
	// - 用于游标分页加载热门装机单列表。
	// - start, stop 是基于 0 的排名索引。
	GetBuildsByRange(ctx context.Context, start, stop int64) ([]uint64, error)

	// GetBuilds 从 Redis Hash (`BuildsHashKey`) 中批量获取装机单实体。
	// - 返回的实体中 Likes 反映的是缓存刷新时的快照值。
	// - 未命中的 ID 直接缺席结果，不报错。
	GetBuilds(ctx context.Context, buildIDs []uint64) ([]*entities.Build, error)
}

// cacheImpl 是 Cache 接口的 Redis 实现。
type cacheImpl struct {
	redisClient *redis.Client
	logger      *core.ZapLogger
}

// NewCache 是 cacheImpl 的构造函数。
func NewCache(redisClient *redis.Client, logger *core.ZapLogger) Cache {
	return &cacheImpl{
		redisClient: redisClient,
		logger:      logger,
	}
}

// GetBuildRank 实现获取装机单排名。
// 排名是 0-based，分数越高，排名越靠前 (即 ZREVRANK 的结果)。
func (c *cacheImpl) GetBuildRank(ctx context.Context, buildID uint64) (int64, error) {
	key := constant.HotBuildsRankKey
	member := fmt.Sprintf("%d", buildID)

	rank, err := c.redisClient.ZRevRank(ctx, key, member).Result()
	if err != nil {
		// redis.Nil 表示成员不存在于 ZSet 中，按约定返回 -1 且不视为错误
		if errors.Is(err, redis.Nil) {
			c.logger.Info("装机单不在热门榜 ZSet 中 (或 ZSet 本身不存在)",
				zap.Uint64("buildID", buildID),
				zap.String("key", key),
			)
			return -1, nil
		}
		c.logger.Error("从 Redis 获取装机单排名失败",
			zap.Error(err),
			zap.Uint64("buildID", buildID),
			zap.String("key", key),
		)
		return -1, fmt.Errorf("获取装机单(ID: %d)在热门榜(key: %s)中的排名失败: %w", buildID, key, err)
	}

	return rank, nil
}

// GetBuildsByRange 实现按排名范围获取装机单 ID。
// start 和 stop 是 0-based 的排名索引，按分数从高到低排列。
func (c *cacheImpl) GetBuildsByRange(ctx context.Context, start, stop int64) ([]uint64, error) {
	key := constant.HotBuildsRankKey

	// ZREVRANGE 对越界范围本身就返回空列表，这里只拦截明显无效的入参
	if start < 0 {
		c.logger.Warn("GetBuildsByRange: start 参数为负数，视为无效请求，返回空列表。",
			zap.Int64("start", start),
			zap.Int64("stop", stop),
		)
		return []uint64{}, nil
	}
	if start > stop && stop != -1 { // stop 为 -1 表示到 ZSet 末尾
		c.logger.Info("GetBuildsByRange: start 排名大于 stop 排名，这是一个无效范围，返回空列表。",
			zap.Int64("start", start),
			zap.Int64("stop", stop),
			zap.String("key", key),
		)
		return []uint64{}, nil
	}

	idStrs, err := c.redisClient.ZRevRange(ctx, key, start, stop).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []uint64{}, nil
		}
		c.logger.Error("从 Redis ZRevRange 按排名范围获取装机单 ID 失败",
			zap.Error(err),
			zap.Int64("start", start),
			zap.Int64("stop", stop),
			zap.String("key", key),
		)
		return nil, fmt.Errorf("获取排名 %d-%d 的装机单 ID 失败 (key: %s): %w", start, stop, key, err)
	}

	if len(idStrs) == 0 {
		return []uint64{}, nil
	}

	ids := make([]uint64, 0, len(idStrs))
	for _, idStr := range idStrs {
		id, parseErr := strconv.ParseUint(idStr, 10, 64)
		if parseErr != nil {
			// ZSet 成员理论上都是数字 ID，解析失败说明数据被污染，跳过以保证其余 ID 可用
			c.logger.Warn("解析 ZSet 中的装机单 ID 字符串失败，已跳过该 ID。",
				zap.Error(parseErr),
				zap.String("idStr", idStr),
				zap.String("rankKey", key),
			)
			continue
		}
		ids = append(ids, id)
	}

	return ids, nil
}

// GetBuilds 从 Redis Hash (`BuildsHashKey`) 中批量获取装机单实体。
func (c *cacheImpl) GetBuilds(ctx context.Context, buildIDs []uint64) ([]*entities.Build, error) {
	if len(buildIDs) == 0 {
		return []*entities.Build{}, nil
	}

	hashKey := constant.BuildsHashKey
	fields := make([]string, len(buildIDs))
	for i, id := range buildIDs {
		fields[i] = fmt.Sprintf("%d", id)
	}

	// HMGET 返回值顺序与请求的 fields 顺序一致，不存在的 field 对应 nil
	values, err := c.redisClient.HMGet(ctx, hashKey, fields...).Result()
	if err != nil {
		c.logger.Error("从 Redis Hash 批量获取装机单失败 (HMGET 执行错误)",
			zap.Error(err),
			zap.String("hashKey", hashKey),
			zap.Int("idCount", len(buildIDs)),
		)
		return nil, fmt.Errorf("批量获取装机单缓存 (key: %s) 失败: %w", hashKey, err)
	}

	builds := make([]*entities.Build, 0, len(buildIDs))
	cacheMissCount := 0
	unmarshalErrorCount := 0

	for i, val := range values {
		requestedBuildID := buildIDs[i]

		if val == nil {
			cacheMissCount++
			continue
		}

		jsonStr, ok := val.(string)
		if !ok {
			unmarshalErrorCount++
			c.logger.Error("装机单 Hash 缓存中的值类型不是预期的字符串，跳过该装机单",
				zap.Uint64("buildID", requestedBuildID),
				zap.String("hashKey", hashKey),
				zap.String("field", fields[i]),
			)
			continue
		}

		var build entities.Build
		if jsonErr := json.Unmarshal([]byte(jsonStr), &build); jsonErr != nil {
			unmarshalErrorCount++
			c.logger.Error("反序列化装机单 Hash 缓存数据失败，跳过该装机单",
				zap.Error(jsonErr),
				zap.Uint64("buildID", requestedBuildID),
				zap.String("hashKey", hashKey),
			)
			continue
		}

		builds = append(builds, &build)
	}

	c.logger.Debug("批量获取装机单 Hash 缓存完成",
		zap.String("hashKey", hashKey),
		zap.Int("requested_id_count", len(buildIDs)),
		zap.Int("found_in_cache_count", len(builds)),
		zap.Int("cache_miss_count", cacheMissCount),
		zap.Int("unmarshal_error_count", unmarshalErrorCount),
	)
	return builds, nil
}

package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/Xushengqwer/go-common/core"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Xushengqwer/build_service/constant"
	"github.com/Xushengqwer/build_service/models/entities"
	"github.com/Xushengqwer/build_service/repo/mysql"
)

// BuildTaskCache 定义了后台任务管理和维护装机单相关缓存的操作接口。
type BuildTaskCache interface {
	// CreateHotList 原子性地从总排行榜 (`BuildsRankKey`) 截取前 N 条记录，生成/覆盖热门榜 (`HotBuildsRankKey`)。
	// 此方法负责生成后续缓存方法所依赖的热门榜快照。
	CreateHotList(ctx context.Context, n int) error

	// CacheHotBuildsToRedis 将 MySQL 中的热门装机单摘要加载到 Redis Hash。
	CacheHotBuildsToRedis(ctx context.Context) error
}

// buildTaskCacheImpl 是 BuildTaskCache 接口的 Redis 实现。
type buildTaskCacheImpl struct {
	redisClient *redis.Client
	logger      *core.ZapLogger
	buildBatch  mysql.BuildBatchOperationsRepository
}

// NewBuildTaskCache 创建 BuildTaskCache 的新实例。
func NewBuildTaskCache(
	redisClient *redis.Client,
	logger *core.ZapLogger,
	buildBatch mysql.BuildBatchOperationsRepository,
) BuildTaskCache {
	return &buildTaskCacheImpl{
		redisClient: redisClient,
		logger:      logger,
		buildBatch:  buildBatch,
	}
}

// CreateHotList 原子性地从总排行榜截取前 N 条记录，生成或覆盖热门榜。
func (c *buildTaskCacheImpl) CreateHotList(ctx context.Context, n int) error {
	if n <= 0 {
		c.logger.Info("CreateHotList: 请求创建的热门榜大小 n 小于或等于 0，操作取消。", zap.Int("n", n))
		return nil
	}

	fullRankKey := constant.BuildsRankKey
	hotListKey := constant.HotBuildsRankKey

	c.logger.Info("开始创建/更新热门榜快照",
		zap.String("sourceKey", fullRankKey),
		zap.String("destinationKey", hotListKey),
		zap.Int("size_n", n),
	)

	// ZREVRANGE WITHSCORES 返回 {member1, score1, ...}，ZADD 需要 {score, member} 顺序，
	// 在 Lua 中重排后一次性写入目标 Key。
	luaScript := redis.NewScript(`
		-- KEYS[1]: source ZSet (total rank)
		-- KEYS[2]: destination ZSet (hot list)
		-- ARGV[1]: number of items to copy (n)

		local items_with_scores = redis.call("ZREVRANGE", KEYS[1], 0, tonumber(ARGV[1]) - 1, "WITHSCORES")
		redis.call("DEL", KEYS[2])

		if #items_with_scores > 0 then
			local args_for_zadd = { KEYS[2] }
			for i = 1, #items_with_scores, 2 do
				table.insert(args_for_zadd, items_with_scores[i+1])
				table.insert(args_for_zadd, items_with_scores[i])
			end
			redis.call("ZADD", unpack(args_for_zadd))
		end
		return #items_with_scores / 2
	`)

	_, err := luaScript.Run(ctx, c.redisClient, []string{fullRankKey, hotListKey}, n).Result()
	if err != nil {
		c.logger.Error("执行 Lua 脚本创建热门榜快照失败",
			zap.Error(err),
			zap.String("sourceKey", fullRankKey),
			zap.String("destinationKey", hotListKey),
			zap.Int("n", n),
		)
		return fmt.Errorf("创建热门榜快照 (Top %d) 失败: %w", n, err)
	}

	c.logger.Info("成功创建/更新热门榜快照",
		zap.String("key", hotListKey),
		zap.Int("requested_size_n", n),
	)
	return nil
}

// CacheHotBuildsToRedis 将热门装机单摘要缓存到 Redis Hash。
// 采用临时 Key + RENAME 策略，重建过程中不影响读路径。
func (c *buildTaskCacheImpl) CacheHotBuildsToRedis(ctx context.Context) error {
	startTime := time.Now()
	c.logger.Info("开始同步热门装机单到 Redis Hash (采用临时Key+RENAME策略)")

	hotListKey := constant.HotBuildsRankKey
	finalHashKey := constant.BuildsHashKey
	tempHashKey := finalHashKey + "_temp_" + strconv.FormatInt(time.Now().UnixNano(), 10)

	buildScores, err := c.redisClient.ZRevRangeWithScores(ctx, hotListKey, 0, int64(constant.HotBuildsCacheSize-1)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			c.logger.Info("热门榜 ZSet (快照) 为空，将清空装机单 Hash 缓存", zap.String("hashKeyToClear", finalHashKey))
			if delErr := c.redisClient.Del(ctx, finalHashKey).Err(); delErr != nil {
				c.logger.Error("清空装机单 Hash 缓存失败", zap.Error(delErr), zap.String("key", finalHashKey))
			}
			return nil
		}
		c.logger.Error("从热门榜 ZSet (快照) 获取装机单分数失败", zap.Error(err), zap.String("key", hotListKey))
		return fmt.Errorf("获取热门榜 ZSet (快照) 失败: %w", err)
	}

	currentHotBuildIDs := make([]uint64, 0, len(buildScores))
	currentScoreMap := make(map[string]float64) // Key: buildID string, Value: 快照时刻的点赞数
	for _, z := range buildScores {
		idStr, ok := z.Member.(string)
		if !ok {
			errMsg := fmt.Sprintf("热门榜 ZSet (key: %s) 成员类型非字符串 (member: %v)，数据异常", hotListKey, z.Member)
			c.logger.Error(errMsg)
			return errors.New(errMsg)
		}
		id, parseErr := strconv.ParseUint(idStr, 10, 64)
		if parseErr != nil {
			errMsg := fmt.Sprintf("解析热门榜 ZSet (key: %s) 成员 ID '%s' 失败: %v，数据异常", hotListKey, idStr, parseErr)
			c.logger.Error(errMsg)
			return errors.New(errMsg)
		}
		currentHotBuildIDs = append(currentHotBuildIDs, id)
		currentScoreMap[idStr] = z.Score
	}

	if len(currentHotBuildIDs) == 0 {
		c.logger.Info("热门榜 ZSet (快照) 中没有有效装机单 ID，将清空装机单 Hash 缓存", zap.String("hashKeyToClear", finalHashKey))
		if delErr := c.redisClient.Del(ctx, finalHashKey).Err(); delErr != nil {
			c.logger.Error("清空装机单 Hash 缓存失败", zap.Error(delErr), zap.String("key", finalHashKey))
		}
		return nil
	}

	buildsFromDB, dbErr := c.buildBatch.GetBuildsByIDs(ctx, currentHotBuildIDs)
	if dbErr != nil {
		c.logger.Error("从 MySQL 批量获取热门装机单失败，本次缓存更新中止，现有缓存将保留。",
			zap.Error(dbErr), zap.Int("idCount", len(currentHotBuildIDs)))
		return fmt.Errorf("从数据库获取装机单数据失败: %w", dbErr)
	}

	dataToCache := make(map[string]interface{})
	marshalErrors := 0
	dbBuildsMap := make(map[uint64]*entities.Build)
	for _, b := range buildsFromDB {
		dbBuildsMap[b.ID] = b
	}

	for _, hotID := range currentHotBuildIDs {
		idStr := fmt.Sprintf("%d", hotID)
		build, foundInDB := dbBuildsMap[hotID]
		if !foundInDB {
			c.logger.Warn("热门榜中的 BuildID 在数据库中未找到，无法缓存该装机单", zap.Uint64("buildID", hotID))
			continue
		}
		buildToCache := *build
		if score, scoreExists := currentScoreMap[idStr]; scoreExists {
			// 使用 ZSet 快照中的分数作为点赞数，比 DB 列更接近实时值
			buildToCache.Likes = int64(score)
		}
		jsonData, jsonErr := json.Marshal(buildToCache)
		if jsonErr != nil {
			c.logger.Error("序列化装机单实体失败，跳过该装机单", zap.Error(jsonErr), zap.Uint64("buildID", buildToCache.ID))
			marshalErrors++
			continue
		}
		dataToCache[idStr] = jsonData
	}

	if len(dataToCache) == 0 {
		c.logger.Error("未能准备任何有效的装机单数据进行缓存 (DB未找到或序列化失败)，现有缓存将保留。",
			zap.Int("hotIDsFromZset", len(currentHotBuildIDs)),
			zap.Int("dbBuildsFetched", len(buildsFromDB)),
			zap.Int("marshalErrors", marshalErrors),
		)
		return errors.New("未能准备有效的装机单数据进行缓存，操作中止")
	}

	pipe := c.redisClient.Pipeline()
	pipe.Del(ctx, tempHashKey)
	if hmSetCmdErr := pipe.HMSet(ctx, tempHashKey, dataToCache).Err(); hmSetCmdErr != nil {
		c.logger.Error("构造 HMSet 命令到 Pipeline 失败", zap.Error(hmSetCmdErr), zap.String("tempHashKey", tempHashKey))
		c.redisClient.Del(ctx, tempHashKey)
		return fmt.Errorf("构造 HMSet 命令 (key: %s) 失败: %w", tempHashKey, hmSetCmdErr)
	}
	if _, execErr := pipe.Exec(ctx); execErr != nil {
		c.logger.Error("执行 Redis Pipeline (写入临时 Hash) 失败，现有缓存将保留。",
			zap.Error(execErr), zap.String("tempHashKey", tempHashKey))
		c.redisClient.Del(ctx, tempHashKey)
		return fmt.Errorf("写入临时装机单 Hash 缓存 (key: %s) 失败: %w", tempHashKey, execErr)
	}

	if renameErr := c.redisClient.Rename(ctx, tempHashKey, finalHashKey).Err(); renameErr != nil {
		c.logger.Error("执行 Redis RENAME (temp 到 final Hash) 失败，新缓存可能在临时Key中，现有缓存可能仍存在。",
			zap.Error(renameErr),
			zap.String("tempHashKey", tempHashKey),
			zap.String("finalHashKey", finalHashKey),
		)
		c.redisClient.Del(ctx, tempHashKey)
		return fmt.Errorf("重命名临时 Hash (key: %s) 到最终 Hash (key: %s) 失败: %w", tempHashKey, finalHashKey, renameErr)
	}

	c.logger.Info("成功将热门装机单同步到 Redis Hash",
		zap.String("finalHashKey", finalHashKey),
		zap.Int("cachedCount", len(dataToCache)),
		zap.Int("marshalErrors", marshalErrors),
		zap.Duration("duration", time.Since(startTime)),
	)
	return nil
}

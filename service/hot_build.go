// File: service/hot_build.go
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Xushengqwer/go-common/core"
	"go.uber.org/zap"

	"github.com/Xushengqwer/build_service/models/vo"
	"github.com/Xushengqwer/build_service/repo/redis"
)

// HotBuildServiceInterface 定义了热门装机单查询的业务逻辑接口。
type HotBuildServiceInterface interface {
	GetHotBuildsByCursor(ctx context.Context, lastBuildID *uint64, limit int) ([]*vo.BuildVO, *uint64, error)
}

// HotBuildService 是 HotBuildServiceInterface 的具体实现。
// - 数据全部来自定时任务预热的 Redis 快照（热度榜 ZSet + 装机单 Hash），不回源 MySQL。
type HotBuildService struct {
	buildCache redis.Cache // 依赖装机单缓存读取接口
	logger     *core.ZapLogger
}

// NewHotBuildService 是 HotBuildService 的构造函数。
func NewHotBuildService(
	buildCache redis.Cache,
	logger *core.ZapLogger,
) *HotBuildService {
	return &HotBuildService{
		buildCache: buildCache,
		logger:     logger,
	}
}

// GetHotBuildsByCursor 实现游标方式获取热门装机单列表。
// - lastBuildID: 上一页最后一条装机单的 ID，为 nil 表示首次加载。
// - limit: 希望获取的数量。
// - 返回: 装机单列表, 下一页游标, 错误。
func (s *HotBuildService) GetHotBuildsByCursor(ctx context.Context, lastBuildID *uint64, limit int) ([]*vo.BuildVO, *uint64, error) {
	var start int64 // ZSet 范围查询的起始排名 (0-based)

	if limit <= 0 {
		s.logger.Warn("GetHotBuildsByCursor: 请求的 limit 小于或等于0", zap.Int("limit", limit))
		return []*vo.BuildVO{}, nil, errors.New("limit 参数必须大于0")
	}

	if lastBuildID == nil { // 首次加载
		start = 0
		s.logger.Debug("热门装机单首次加载 (游标分页)", zap.Int("limit", limit))
	} else { // 非首次加载，根据 lastBuildID 计算 start
		rank, err := s.buildCache.GetBuildRank(ctx, *lastBuildID)
		if err != nil {
			s.logger.Error("获取上一页最后装机单排名失败 (游标分页)", zap.Error(err), zap.Uint64p("lastBuildID", lastBuildID))
			return nil, nil, fmt.Errorf("获取装机单排名失败: %w", err)
		}
		if rank == -1 { // 游标装机单已不在榜单中
			s.logger.Warn("游标 lastBuildID 已不在热榜中 (游标分页)", zap.Uint64p("lastBuildID", lastBuildID))
			// 返回特定错误，让客户端决定如何响应（例如提示刷新或从头加载）。
			return nil, nil, fmt.Errorf("提供的游标装机单(ID: %d)已不在热门榜单中，请刷新", *lastBuildID)
		}
		start = rank + 1 // 下一页从上一页最后一条的下一名开始
		s.logger.Debug("热门装机单分页加载", zap.Uint64p("lastBuildID", lastBuildID), zap.Int64("startRank", start), zap.Int("limit", limit))
	}

	stop := start + int64(limit) - 1 // 计算 ZSet 查询的结束排名

	// 从热榜 ZSet 获取指定排名范围内的装机单 ID 列表。
	buildIDs, err := s.buildCache.GetBuildsByRange(ctx, start, stop)
	if err != nil {
		s.logger.Error("从缓存按排名范围获取装机单 ID 失败 (游标分页)", zap.Error(err), zap.Int64("start", start), zap.Int64("stop", stop))
		return nil, nil, fmt.Errorf("获取装机单 ID 列表失败: %w", err)
	}

	if len(buildIDs) == 0 { // 未获取到任何 ID（可能已到达列表末尾或该范围无数据）
		s.logger.Info("按排名范围未获取到装机单 ID (游标分页)，可能已到末尾", zap.Int64("start", start), zap.Int64("stop", stop))
		return []*vo.BuildVO{}, nil, nil // 返回空列表和 nil 游标，表示没有更多数据
	}
	s.logger.Debug("成功从 ZSet 获取到装机单 ID 列表 (游标分页)", zap.Int("count", len(buildIDs)))

	// 根据获取到的 buildIDs 列表，从 Redis Hash 缓存中批量获取装机单实体数据。
	builds, err := s.buildCache.GetBuilds(ctx, buildIDs)
	if err != nil {
		s.logger.Error("从缓存批量获取装机单实体失败 (游标分页)", zap.Error(err), zap.Any("buildIDs", buildIDs))
		return nil, nil, fmt.Errorf("获取装机单数据失败: %w", err)
	}
	// GetBuilds 可能因部分 ID 缓存未命中而返回比 buildIDs 数量少的记录。
	// 游标的确定应基于从 ZSet 获取的 ID 数量。

	buildVOs := vo.MapBuildsToVOs(builds)

	// 确定下一页的游标。
	var nextCursor *uint64
	// 如果从 ZSet 获取的 ID 数量等于请求的 limit，说明可能还有更多数据。
	// 游标取 buildIDs (来自ZSet) 的最后一个 ID，因为 buildVOs 可能因部分未命中而比 buildIDs 短。
	if len(buildIDs) == limit && len(buildVOs) > 0 {
		lastReturnedID := buildIDs[len(buildIDs)-1]
		nextCursor = &lastReturnedID
		s.logger.Debug("确定下一页游标 (游标分页)", zap.Uint64("nextCursor", *nextCursor))
	} else {
		nextCursor = nil // 没有更多数据
		s.logger.Debug("已到达热门装机单列表末尾 (游标分页)")
	}

	return buildVOs, nextCursor, nil
}

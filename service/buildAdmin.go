package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Xushengqwer/go-common/commonerrors"
	"github.com/Xushengqwer/go-common/core"
	"go.uber.org/zap"

	"github.com/Xushengqwer/build_service/models/vo"
	"github.com/Xushengqwer/build_service/repo/mysql"
)

// BuildAdminService 定义装机单管理员服务的接口。
// - 封装管理员对装机单的运营操作：锚定推荐位的设置与查询。
type BuildAdminService interface {
	// SetAnchor 设置或取消装机单的锚定标记。
	// - 锚定的装机单会出现在运营推荐位，不参与热度排序。
	SetAnchor(ctx context.Context, buildID uint64, isAnchor bool) error

	// ListAnchorBuilds 获取全部锚定装机单，按点赞数倒序。
	ListAnchorBuilds(ctx context.Context) (*vo.ListBuildsVO, error)
}

// buildAdminService 是 BuildAdminService 接口的实现。
type buildAdminService struct {
	buildRepo mysql.BuildRepository
	logger    *core.ZapLogger
}

// NewBuildAdminService 初始化装机单管理员服务。
func NewBuildAdminService(
	buildRepo mysql.BuildRepository,
	logger *core.ZapLogger,
) BuildAdminService {
	return &buildAdminService{
		buildRepo: buildRepo,
		logger:    logger,
	}
}

// SetAnchor 实现锚定标记的设置。
func (s *buildAdminService) SetAnchor(ctx context.Context, buildID uint64, isAnchor bool) error {
	err := s.buildRepo.SetAnchor(ctx, buildID, isAnchor)
	if err != nil {
		logFields := []zap.Field{
			zap.Error(err),
			zap.Uint64("buildID", buildID),
			zap.Bool("isAnchor", isAnchor),
		}
		s.logger.Error("设置锚定标记时调用仓库层失败", logFields...)
		if errors.Is(err, commonerrors.ErrRepoNotFound) {
			return fmt.Errorf("装机单(ID: %d)未找到: %w", buildID, err)
		}
		return fmt.Errorf("设置装机单(ID: %d)锚定标记失败: %w", buildID, err)
	}
	s.logger.Info("管理员设置锚定标记成功", zap.Uint64("buildID", buildID), zap.Bool("isAnchor", isAnchor))
	return nil
}

// ListAnchorBuilds 实现锚定装机单的查询。
func (s *buildAdminService) ListAnchorBuilds(ctx context.Context) (*vo.ListBuildsVO, error) {
	builds, err := s.buildRepo.GetAnchorBuilds(ctx)
	if err != nil {
		s.logger.Error("查询锚定装机单列表失败", zap.Error(err))
		return nil, fmt.Errorf("查询锚定装机单失败: %w", err)
	}

	s.logger.Debug("查询锚定装机单列表成功", zap.Int("count", len(builds)))
	return &vo.ListBuildsVO{
		Builds: vo.MapBuildsToVOs(builds),
		Total:  int64(len(builds)),
	}, nil
}

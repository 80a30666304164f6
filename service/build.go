package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Xushengqwer/go-common/commonerrors"
	"github.com/Xushengqwer/go-common/core"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Xushengqwer/build_service/compat"
	"github.com/Xushengqwer/build_service/models/dto"
	"github.com/Xushengqwer/build_service/models/entities"
	"github.com/Xushengqwer/build_service/models/events"
	"github.com/Xushengqwer/build_service/models/vo"
	"github.com/Xushengqwer/build_service/mq/producer"
	"github.com/Xushengqwer/build_service/myErrors"
	"github.com/Xushengqwer/build_service/repo/mysql"
)

// BuildService 定义了装机单核心业务逻辑的接口。
type BuildService interface {
	// CreateBuild 处理用户创建装机单的业务流程。
	// - 配件引用严格解析：任一引用非法或查无此件即中止，不产生部分写入。
	// - 兼容性检测不通过时拒绝创建，全部违规通过 myErrors.IncompatibleBuildError 返回。
	// - 合计价与估算功耗在创建时刻计算并落库。
	CreateBuild(ctx context.Context, ownerID string, req *dto.CreateBuildRequest) (*vo.BuildVO, error)

	// GetBuildDetail 获取装机单详情。
	// - 配件按装机单内的展示顺序展开，重复引用原样保留。
	// - 评论按创建时间倒序附带返回。
	GetBuildDetail(ctx context.Context, buildID uint64) (*vo.BuildDetailVO, error)

	// UpdateBuild 部分更新装机单的元信息（名称/描述/锚点标记）。
	// - 配件清单在创建后不可变更，合计价与估算功耗因此无需重算。
	UpdateBuild(ctx context.Context, buildID uint64, req *dto.UpdateBuildRequest) (*vo.BuildVO, error)

	// ValidateBuild 独立的兼容性校验，不落库。
	// - 配件引用宽松解析：查无此件的引用静默跳过。
	ValidateBuild(ctx context.Context, req *dto.ValidateBuildRequest) (*vo.ValidateBuildVO, error)

	// ListBuilds 分页查询装机单，支持按创建者筛选。
	// - TopLoved 为 true 时改为按点赞数降序返回前 3 条，分页参数被忽略。
	ListBuilds(ctx context.Context, req *dto.ListBuildsRequest) (*vo.ListBuildsVO, error)

	// DeleteBuild 删除装机单及其配件引用。
	DeleteBuild(ctx context.Context, buildID uint64) error
}

// buildService 是 BuildService 接口的具体实现。
type buildService struct {
	buildRepo          mysql.BuildRepository          // 负责装机单的 MySQL 操作
	buildComponentRepo mysql.BuildComponentRepository // 负责装机单配件引用的 MySQL 操作
	componentRepo      mysql.ComponentRepository      // 负责配件的 MySQL 操作（详情页展开）
	commentRepo        mysql.CommentRepository        // 负责评论的 MySQL 操作（详情页附带）
	resolver           *compat.Resolver               // 配件引用解析器
	db                 *gorm.DB                       // GORM 数据库实例，主要用于事务管理
	kafkaSvc           *producer.KafkaProducer        // Kafka 生产者，用于发送异步消息
	logger             *core.ZapLogger
}

// NewBuildService 是 buildService 的构造函数，通过依赖注入初始化服务实例。
func NewBuildService(
	db *gorm.DB,
	buildRepo mysql.BuildRepository,
	buildComponentRepo mysql.BuildComponentRepository,
	componentRepo mysql.ComponentRepository,
	commentRepo mysql.CommentRepository,
	resolver *compat.Resolver,
	kafkaSvc *producer.KafkaProducer,
	logger *core.ZapLogger,
) BuildService {
	return &buildService{
		buildRepo:          buildRepo,
		buildComponentRepo: buildComponentRepo,
		componentRepo:      componentRepo,
		commentRepo:        commentRepo,
		resolver:           resolver,
		db:                 db,
		kafkaSvc:           kafkaSvc,
		logger:             logger,
	}
}

// sumPrice 按入参顺序累加配件价格，重复引用会被计价两次。
func sumPrice(components []*entities.Component) float64 {
	var total float64
	for _, c := range components {
		total += c.Price
	}
	return total
}

// CreateBuild 实现装机单的创建。
func (s *buildService) CreateBuild(ctx context.Context, ownerID string, req *dto.CreateBuildRequest) (*vo.BuildVO, error) {
	// 1. 严格解析配件引用
	ordered, resolved, err := s.resolver.ResolveOrFail(ctx, req.Components)
	if err != nil {
		s.logger.Warn("创建装机单：配件引用解析失败",
			zap.Error(err),
			zap.String("ownerID", ownerID),
			zap.Strings("components", req.Components))
		return nil, err
	}

	// 2. 兼容性判定，任何违规都拒绝创建（全部违规一次性返回）
	if issues := compat.CheckCompatibility(resolved); len(issues) > 0 {
		s.logger.Warn("创建装机单：兼容性检测未通过",
			zap.String("ownerID", ownerID),
			zap.Strings("issues", issues))
		return nil, &myErrors.IncompatibleBuildError{Issues: issues}
	}

	// 3. 派生字段计算
	wattage := compat.EstimateWattage(resolved)
	totalPrice := sumPrice(ordered)

	// 4. 事务内写入装机单与配件引用
	build := &entities.Build{
		Name:             req.Name,
		Description:      req.Description,
		OwnerID:          ownerID,
		TotalPrice:       totalPrice,
		EstimatedWattage: wattage,
		Likes:            0,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if repoErr := s.buildRepo.CreateBuild(ctx, tx, build); repoErr != nil {
			return fmt.Errorf("创建装机单失败: %w", repoErr)
		}

		items := make([]*entities.BuildComponent, 0, len(ordered))
		for i, c := range ordered {
			items = append(items, &entities.BuildComponent{
				BuildID:      build.ID,
				ComponentID:  c.ID,
				Role:         c.Role,
				DisplayOrder: i,
			})
		}
		if repoErr := s.buildComponentRepo.CreateInBatch(ctx, tx, items); repoErr != nil {
			return fmt.Errorf("写入装机单配件引用失败: %w", repoErr)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("创建装机单事务失败", zap.Error(err), zap.String("ownerID", ownerID))
		return nil, err
	}

	// 5. 异步发送创建事件
	componentIDs := make([]uint64, 0, len(ordered))
	for _, c := range ordered {
		componentIDs = append(componentIDs, c.ID)
	}
	eventData := events.BuildCreatedEvent{
		BuildID:          build.ID,
		OwnerID:          build.OwnerID,
		Name:             build.Name,
		TotalPrice:       build.TotalPrice,
		EstimatedWattage: build.EstimatedWattage,
		ComponentIDs:     componentIDs,
	}
	go func(data events.BuildCreatedEvent) {
		bgCtx := context.Background()
		if kafkaErr := s.kafkaSvc.SendBuildCreatedEvent(bgCtx, data); kafkaErr != nil {
			s.logger.Error("发送 Kafka 装机单创建事件失败", zap.Error(kafkaErr), zap.Uint64("build_id", data.BuildID))
		} else {
			s.logger.Info("成功发送 Kafka 装机单创建事件", zap.Uint64("build_id", data.BuildID))
		}
	}(eventData)

	s.logger.Info("创建装机单成功",
		zap.Uint64("buildID", build.ID),
		zap.String("ownerID", ownerID),
		zap.Int("componentCount", len(ordered)))
	return vo.MapBuildToVO(build), nil
}

// GetBuildDetail 实现装机单详情的查询。
func (s *buildService) GetBuildDetail(ctx context.Context, buildID uint64) (*vo.BuildDetailVO, error) {
	// 1. 装机单主记录
	build, err := s.buildRepo.GetBuildByID(ctx, buildID)
	if err != nil {
		if errors.Is(err, commonerrors.ErrRepoNotFound) {
			s.logger.Warn("查询的装机单不存在", zap.Uint64("buildID", buildID))
		} else {
			s.logger.Error("查询装机单失败", zap.Error(err), zap.Uint64("buildID", buildID))
		}
		return nil, err
	}

	// 2. 配件引用（按展示顺序）与配件实体
	refs, err := s.buildComponentRepo.GetByBuildID(ctx, buildID)
	if err != nil {
		s.logger.Error("查询装机单配件引用失败", zap.Error(err), zap.Uint64("buildID", buildID))
		return nil, fmt.Errorf("查询装机单配件失败: %w", err)
	}

	componentVOs := make([]*vo.ComponentVO, 0, len(refs))
	if len(refs) > 0 {
		ids := make([]uint64, 0, len(refs))
		for _, ref := range refs {
			ids = append(ids, ref.ComponentID)
		}
		components, repoErr := s.componentRepo.GetComponentsByIDs(ctx, ids)
		if repoErr != nil {
			s.logger.Error("批量查询装机单配件失败", zap.Error(repoErr), zap.Uint64("buildID", buildID))
			return nil, fmt.Errorf("查询装机单配件失败: %w", repoErr)
		}
		byID := make(map[uint64]*entities.Component, len(components))
		for _, c := range components {
			byID[c.ID] = c
		}
		// 按引用顺序展开，配件在引用后被删除的情况下跳过该引用
		for _, ref := range refs {
			if c, ok := byID[ref.ComponentID]; ok {
				componentVOs = append(componentVOs, vo.MapComponentToVO(c))
			}
		}
	}

	// 3. 评论（最新在前）
	comments, err := s.commentRepo.GetCommentsByBuildID(ctx, buildID)
	if err != nil {
		s.logger.Error("查询装机单评论失败", zap.Error(err), zap.Uint64("buildID", buildID))
		return nil, fmt.Errorf("查询装机单评论失败: %w", err)
	}

	return &vo.BuildDetailVO{
		BuildVO:    *vo.MapBuildToVO(build),
		Components: componentVOs,
		Comments:   vo.MapCommentsToVOs(comments),
	}, nil
}

// UpdateBuild 实现装机单元信息的部分更新。
// 配件清单创建后不可变更，因此这里不涉及解析器与派生字段重算。
func (s *buildService) UpdateBuild(ctx context.Context, buildID uint64, req *dto.UpdateBuildRequest) (*vo.BuildVO, error) {
	err := s.buildRepo.UpdateBuild(ctx, buildID, req.Name, req.Description, req.IsAnchor)
	if err != nil {
		if errors.Is(err, commonerrors.ErrRepoNotFound) {
			s.logger.Warn("更新的装机单不存在", zap.Uint64("buildID", buildID))
		} else {
			s.logger.Error("更新装机单失败", zap.Error(err), zap.Uint64("buildID", buildID))
		}
		return nil, err
	}

	// 返回更新后的数据
	updated, err := s.buildRepo.GetBuildByID(ctx, buildID)
	if err != nil {
		s.logger.Error("更新装机单后回查失败", zap.Error(err), zap.Uint64("buildID", buildID))
		return nil, err
	}

	s.logger.Info("更新装机单成功", zap.Uint64("buildID", buildID))
	return vo.MapBuildToVO(updated), nil
}

// ValidateBuild 实现独立的兼容性校验。
func (s *buildService) ValidateBuild(ctx context.Context, req *dto.ValidateBuildRequest) (*vo.ValidateBuildVO, error) {
	resolved, err := s.resolver.ResolveBestEffort(ctx, req.Components)
	if err != nil {
		s.logger.Warn("兼容性校验：配件引用解析失败",
			zap.Error(err),
			zap.Strings("components", req.Components))
		return nil, err
	}

	return &vo.ValidateBuildVO{
		Issues:           compat.CheckCompatibility(resolved),
		EstimatedWattage: compat.EstimateWattage(resolved),
	}, nil
}

// topLovedLimit 人气榜接口固定返回的条数。
const topLovedLimit = 3

// ListBuilds 实现装机单的分页查询。
func (s *buildService) ListBuilds(ctx context.Context, req *dto.ListBuildsRequest) (*vo.ListBuildsVO, error) {
	// 人气榜模式：按点赞数降序取固定条数，忽略分页参数
	if req.TopLoved {
		builds, err := s.buildRepo.GetTopLovedBuilds(ctx, topLovedLimit)
		if err != nil {
			s.logger.Error("查询人气装机单失败", zap.Error(err))
			return nil, fmt.Errorf("查询人气装机单失败: %w", err)
		}
		return &vo.ListBuildsVO{
			Builds: vo.MapBuildsToVOs(builds),
			Total:  int64(len(builds)),
		}, nil
	}

	page := req.Page
	if page <= 0 {
		page = 1
	}
	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}

	offset := (page - 1) * pageSize
	builds, total, err := s.buildRepo.ListBuilds(ctx, req.OwnerID, offset, pageSize)
	if err != nil {
		s.logger.Error("查询装机单列表失败", zap.Error(err), zap.Any("request", req))
		return nil, fmt.Errorf("查询装机单列表失败: %w", err)
	}

	s.logger.Debug("查询装机单列表成功", zap.Int("count", len(builds)), zap.Int64("total", total))
	return &vo.ListBuildsVO{
		Builds: vo.MapBuildsToVOs(builds),
		Total:  total,
	}, nil
}

// DeleteBuild 实现装机单及其配件引用的删除。
func (s *buildService) DeleteBuild(ctx context.Context, buildID uint64) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if repoErr := s.buildRepo.DeleteBuild(ctx, tx, buildID); repoErr != nil {
			return repoErr
		}
		if repoErr := s.buildComponentRepo.DeleteByBuildID(ctx, tx, buildID); repoErr != nil {
			return fmt.Errorf("删除装机单配件引用失败: %w", repoErr)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, commonerrors.ErrRepoNotFound) {
			s.logger.Warn("删除的装机单不存在", zap.Uint64("buildID", buildID))
		} else {
			s.logger.Error("删除装机单事务失败", zap.Error(err), zap.Uint64("buildID", buildID))
		}
		return err
	}

	s.logger.Info("删除装机单成功", zap.Uint64("buildID", buildID))
	return nil
}

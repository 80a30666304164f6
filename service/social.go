package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Xushengqwer/go-common/commonerrors"
	"github.com/Xushengqwer/go-common/core"
	"go.uber.org/zap"

	"github.com/Xushengqwer/build_service/models/dto"
	"github.com/Xushengqwer/build_service/models/entities"
	"github.com/Xushengqwer/build_service/models/vo"
	"github.com/Xushengqwer/build_service/mq/producer"
	"github.com/Xushengqwer/build_service/myErrors"
	"github.com/Xushengqwer/build_service/repo/mysql"
	"github.com/Xushengqwer/build_service/repo/redis"
)

// SocialService 定义了装机单社交互动（点赞、评论）的业务逻辑接口。
type SocialService interface {
	// LikeBuild 处理用户点赞装机单。
	// - 去重依赖数据库唯一索引：重复点赞返回 myErrors.ErrAlreadyLiked。
	// - 计数走 Redis 累加，由后台任务定期回写 MySQL，接口本身不更新 builds.likes。
	// - 成功后异步投递点赞事件。
	LikeBuild(ctx context.Context, buildID uint64, userID string) error

	// CreateComment 处理用户发表评论。
	// - 装机单不存在时返回 commonerrors.ErrRepoNotFound。
	CreateComment(ctx context.Context, userID string, req *dto.CreateCommentRequest) (*vo.CommentVO, error)

	// GetComments 按时间倒序返回指定装机单的全部评论。
	// - 装机单不存在时返回 commonerrors.ErrRepoNotFound。
	GetComments(ctx context.Context, buildID uint64) ([]*vo.CommentVO, error)
}

// socialService 是 SocialService 接口的具体实现。
type socialService struct {
	buildRepo     mysql.BuildRepository     // 点赞/评论前确认装机单存在
	likeRepo      mysql.LikeRepository      // 点赞去重记录
	commentRepo   mysql.CommentRepository   // 评论
	buildLikeRepo redis.BuildLikeRepository // Redis 点赞计数与热度榜
	kafkaSvc      *producer.KafkaProducer   // Kafka 生产者，用于发送异步消息
	logger        *core.ZapLogger
}

// NewSocialService 是 socialService 的构造函数，通过依赖注入初始化服务实例。
func NewSocialService(
	buildRepo mysql.BuildRepository,
	likeRepo mysql.LikeRepository,
	commentRepo mysql.CommentRepository,
	buildLikeRepo redis.BuildLikeRepository,
	kafkaSvc *producer.KafkaProducer,
	logger *core.ZapLogger,
) SocialService {
	return &socialService{
		buildRepo:     buildRepo,
		likeRepo:      likeRepo,
		commentRepo:   commentRepo,
		buildLikeRepo: buildLikeRepo,
		kafkaSvc:      kafkaSvc,
		logger:        logger,
	}
}

// LikeBuild 实现装机单点赞。
func (s *socialService) LikeBuild(ctx context.Context, buildID uint64, userID string) error {
	// 1. 确认装机单存在
	if _, err := s.buildRepo.GetBuildByID(ctx, buildID); err != nil {
		if errors.Is(err, commonerrors.ErrRepoNotFound) {
			s.logger.Warn("点赞的装机单不存在", zap.Uint64("buildID", buildID), zap.String("userID", userID))
		} else {
			s.logger.Error("点赞：查询装机单失败", zap.Error(err), zap.Uint64("buildID", buildID))
		}
		return err
	}

	// 2. 写入去重记录，唯一索引冲突即重复点赞
	if err := s.likeRepo.CreateLike(ctx, buildID, userID); err != nil {
		if errors.Is(err, myErrors.ErrAlreadyLiked) {
			s.logger.Info("用户重复点赞被拒绝", zap.Uint64("buildID", buildID), zap.String("userID", userID))
			return err
		}
		s.logger.Error("写入点赞记录失败", zap.Error(err), zap.Uint64("buildID", buildID), zap.String("userID", userID))
		return fmt.Errorf("点赞失败: %w", err)
	}

	// 3. Redis 计数累加。失败只记录不回滚：去重记录已落库，计数回写任务
	//    以 Redis 为准源，下一次点赞会继续累加，误差可接受。
	if err := s.buildLikeRepo.IncrementLikeCount(ctx, buildID); err != nil {
		s.logger.Error("Redis 点赞计数累加失败",
			zap.Error(err),
			zap.Uint64("buildID", buildID),
			zap.String("userID", userID))
	}

	// 4. 异步发送点赞事件
	go func(bID uint64, uID string) {
		bgCtx := context.Background()
		if kafkaErr := s.kafkaSvc.SendBuildLikedEvent(bgCtx, bID, uID); kafkaErr != nil {
			s.logger.Error("发送 Kafka 点赞事件失败", zap.Error(kafkaErr), zap.Uint64("build_id", bID))
		}
	}(buildID, userID)

	s.logger.Info("点赞成功", zap.Uint64("buildID", buildID), zap.String("userID", userID))
	return nil
}

// CreateComment 实现评论的发表。
func (s *socialService) CreateComment(ctx context.Context, userID string, req *dto.CreateCommentRequest) (*vo.CommentVO, error) {
	// 1. 确认装机单存在
	if _, err := s.buildRepo.GetBuildByID(ctx, req.BuildID); err != nil {
		if errors.Is(err, commonerrors.ErrRepoNotFound) {
			s.logger.Warn("评论的装机单不存在", zap.Uint64("buildID", req.BuildID), zap.String("userID", userID))
		} else {
			s.logger.Error("评论：查询装机单失败", zap.Error(err), zap.Uint64("buildID", req.BuildID))
		}
		return nil, err
	}

	// 2. 写入评论
	comment := &entities.Comment{
		BuildID: req.BuildID,
		UserID:  userID,
		Content: req.Content,
	}
	if err := s.commentRepo.CreateComment(ctx, comment); err != nil {
		s.logger.Error("写入评论失败", zap.Error(err), zap.Uint64("buildID", req.BuildID), zap.String("userID", userID))
		return nil, fmt.Errorf("发表评论失败: %w", err)
	}

	s.logger.Info("发表评论成功",
		zap.Uint64("commentID", comment.ID),
		zap.Uint64("buildID", req.BuildID),
		zap.String("userID", userID))
	return &vo.CommentVO{
		ID:        comment.ID,
		BuildID:   comment.BuildID,
		UserID:    comment.UserID,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
	}, nil
}

// GetComments 实现评论列表查询。
func (s *socialService) GetComments(ctx context.Context, buildID uint64) ([]*vo.CommentVO, error) {
	// 1. 确认装机单存在
	if _, err := s.buildRepo.GetBuildByID(ctx, buildID); err != nil {
		if errors.Is(err, commonerrors.ErrRepoNotFound) {
			s.logger.Warn("查询评论的装机单不存在", zap.Uint64("buildID", buildID))
		} else {
			s.logger.Error("查询评论：查询装机单失败", zap.Error(err), zap.Uint64("buildID", buildID))
		}
		return nil, err
	}

	// 2. 查询评论列表
	comments, err := s.commentRepo.GetCommentsByBuildID(ctx, buildID)
	if err != nil {
		s.logger.Error("查询评论列表失败", zap.Error(err), zap.Uint64("buildID", buildID))
		return nil, fmt.Errorf("查询评论列表失败: %w", err)
	}

	return vo.MapCommentsToVOs(comments), nil
}

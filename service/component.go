package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/Xushengqwer/go-common/commonerrors"
	"github.com/Xushengqwer/go-common/core"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Xushengqwer/build_service/constant"
	"github.com/Xushengqwer/build_service/dependencies"
	"github.com/Xushengqwer/build_service/models/dto"
	"github.com/Xushengqwer/build_service/models/entities"
	"github.com/Xushengqwer/build_service/models/enums"
	"github.com/Xushengqwer/build_service/models/vo"
	"github.com/Xushengqwer/build_service/myErrors"
	"github.com/Xushengqwer/build_service/repo/mysql"
)

// ComponentService 定义了配件目录核心业务逻辑的接口。
type ComponentService interface {
	// CreateComponent 录入单个配件。
	// - 接收 DTO 作为输入，角色字段在绑定层已做枚举校验，这里再做一次防御性解析。
	// - 返回 VO，包含数据库生成的 ID 与时间戳。
	CreateComponent(ctx context.Context, req *dto.ComponentPayload) (*vo.ComponentVO, error)

	// ImportComponents 批量导入配件。
	// - 整批在一个事务内写入，任何一条数据非法则整批回滚。
	// - 同步 HTTP 导入接口与 Kafka 异步导入通道共用此方法，保证落库语义一致。
	ImportComponents(ctx context.Context, payloads []dto.ComponentPayload) (*vo.ImportComponentsVO, error)

	// GetComponentByID 获取单个配件详情。
	GetComponentByID(ctx context.Context, id uint64) (*vo.ComponentVO, error)

	// ListComponents 分页查询配件目录，支持按角色筛选与名称关键词模糊搜索。
	ListComponents(ctx context.Context, req *dto.ListComponentsRequest) (*vo.ListComponentsVO, error)

	// UploadComponentImage 上传配件商品图到 COS 并回写图片 URL。
	UploadComponentImage(ctx context.Context, componentID uint64, file *multipart.FileHeader) (*vo.ComponentVO, error)

	// DeleteComponent 删除配件。
	// - 若该配件仍被任何装机单引用，返回 myErrors.ErrComponentInUse，拒绝删除。
	DeleteComponent(ctx context.Context, id uint64) error
}

// componentService 是 ComponentService 接口的具体实现。
type componentService struct {
	componentRepo      mysql.ComponentRepository      // 负责配件的 MySQL 操作
	buildComponentRepo mysql.BuildComponentRepository // 负责装机单配件引用的 MySQL 操作（删除保护检查）
	cosClient          dependencies.COSClientInterface
	db                 *gorm.DB // GORM 数据库实例，主要用于事务管理
	logger             *core.ZapLogger
}

// NewComponentService 是 componentService 的构造函数，通过依赖注入初始化服务实例。
func NewComponentService(
	db *gorm.DB,
	componentRepo mysql.ComponentRepository,
	buildComponentRepo mysql.BuildComponentRepository,
	cosClient dependencies.COSClientInterface,
	logger *core.ZapLogger,
) ComponentService {
	return &componentService{
		componentRepo:      componentRepo,
		buildComponentRepo: buildComponentRepo,
		cosClient:          cosClient,
		db:                 db,
		logger:             logger,
	}
}

// componentFromPayload 将写入载荷转换为数据库实体。
// - 角色字符串在这里统一解析为枚举，HTTP 绑定层与 Kafka 通道的校验口径保持一致。
func componentFromPayload(p *dto.ComponentPayload) (*entities.Component, error) {
	role, err := enums.ParseComponentRole(p.Role)
	if err != nil {
		return nil, err
	}
	return &entities.Component{
		Name:                   p.Name,
		Role:                   role,
		Brand:                  p.Brand,
		Model:                  p.Model,
		Socket:                 p.Socket,
		Chipset:                p.Chipset,
		TDP:                    p.TDP,
		RAMType:                p.RAMType,
		RAMSpeed:               p.RAMSpeed,
		RAMSlots:               p.RAMSlots,
		PCIeVersion:            p.PCIeVersion,
		GPULengthMM:            p.GPULengthMM,
		MaxGPULengthMM:         p.MaxGPULengthMM,
		PSUWattage:             p.PSUWattage,
		PSUFormFactor:          p.PSUFormFactor,
		CaseSupportedPSU:       p.CaseSupportedPSU,
		CaseMotherboardSupport: p.CaseMotherboardSupport,
		MotherboardFormFactor:  p.MotherboardFormFactor,
		CoolerHeightMM:         p.CoolerHeightMM,
		CaseMaxCoolerHeightMM:  p.CaseMaxCoolerHeightMM,
		StorageInterface:       p.StorageInterface,
		M2Slots:                p.M2Slots,
		Price:                  p.Price,
		Image:                  p.Image,
		URL:                    p.URL,
	}, nil
}

// CreateComponent 实现单个配件的录入。
func (s *componentService) CreateComponent(ctx context.Context, req *dto.ComponentPayload) (*vo.ComponentVO, error) {
	component, err := componentFromPayload(req)
	if err != nil {
		s.logger.Warn("录入配件：角色解析失败", zap.String("role", req.Role), zap.Error(err))
		return nil, err
	}

	if err := s.componentRepo.CreateComponent(ctx, s.db, component); err != nil {
		s.logger.Error("录入配件失败", zap.Error(err), zap.String("name", req.Name))
		return nil, fmt.Errorf("录入配件失败: %w", err)
	}

	s.logger.Info("录入配件成功", zap.Uint64("componentID", component.ID), zap.String("name", component.Name))
	return vo.MapComponentToVO(component), nil
}

// ImportComponents 实现配件的批量导入。
func (s *componentService) ImportComponents(ctx context.Context, payloads []dto.ComponentPayload) (*vo.ImportComponentsVO, error) {
	if len(payloads) == 0 {
		return &vo.ImportComponentsVO{InsertedIDs: []uint64{}}, nil
	}

	// 1. 先整批转换，任何一条角色非法直接拒绝整批（不产生部分写入）
	components := make([]*entities.Component, 0, len(payloads))
	for i := range payloads {
		component, err := componentFromPayload(&payloads[i])
		if err != nil {
			s.logger.Warn("批量导入：载荷包含非法角色，整批拒绝",
				zap.Int("index", i),
				zap.String("role", payloads[i].Role),
				zap.Error(err))
			return nil, fmt.Errorf("第 %d 条配件数据非法: %w", i+1, err)
		}
		components = append(components, component)
	}

	// 2. 事务内整批写入
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.componentRepo.CreateComponentsInBatch(ctx, tx, components)
	})
	if err != nil {
		s.logger.Error("批量导入配件事务失败", zap.Error(err), zap.Int("count", len(components)))
		return nil, fmt.Errorf("批量导入配件失败: %w", err)
	}

	insertedIDs := make([]uint64, 0, len(components))
	for _, c := range components {
		insertedIDs = append(insertedIDs, c.ID)
	}

	s.logger.Info("批量导入配件成功", zap.Int("count", len(insertedIDs)))
	return &vo.ImportComponentsVO{
		InsertedCount: len(insertedIDs),
		InsertedIDs:   insertedIDs,
	}, nil
}

// GetComponentByID 实现单个配件的查询。
func (s *componentService) GetComponentByID(ctx context.Context, id uint64) (*vo.ComponentVO, error) {
	component, err := s.componentRepo.GetComponentByID(ctx, id)
	if err != nil {
		if errors.Is(err, commonerrors.ErrRepoNotFound) {
			s.logger.Warn("查询的配件不存在", zap.Uint64("componentID", id))
		} else {
			s.logger.Error("查询配件失败", zap.Error(err), zap.Uint64("componentID", id))
		}
		return nil, err
	}
	return vo.MapComponentToVO(component), nil
}

// ListComponents 实现配件目录的分页查询。
func (s *componentService) ListComponents(ctx context.Context, req *dto.ListComponentsRequest) (*vo.ListComponentsVO, error) {
	// 角色筛选是可选的，但传了就必须是合法枚举
	var role *enums.ComponentRole
	if req.Role != nil && *req.Role != "" {
		parsed, err := enums.ParseComponentRole(*req.Role)
		if err != nil {
			s.logger.Warn("配件列表查询：角色参数非法", zap.String("role", *req.Role))
			return nil, err
		}
		role = &parsed
	}

	offset := (req.Page - 1) * req.PageSize
	components, total, err := s.componentRepo.ListComponents(ctx, role, req.Keyword, offset, req.PageSize)
	if err != nil {
		s.logger.Error("查询配件列表失败", zap.Error(err), zap.Any("request", req))
		return nil, fmt.Errorf("查询配件列表失败: %w", err)
	}

	s.logger.Debug("查询配件列表成功", zap.Int("count", len(components)), zap.Int64("total", total))
	return &vo.ListComponentsVO{
		Components: vo.MapComponentsToVOs(components),
		Total:      total,
	}, nil
}

// generateComponentImageObjectKey 创建一个唯一的 COS 对象键。
func (s *componentService) generateComponentImageObjectKey(originalFilename string, componentID uint64) string {
	now := time.Now()
	datePrefix := now.Format("20060102") // YYYYMMDD
	randomUUID := uuid.NewString()
	extension := strings.ToLower(filepath.Ext(originalFilename)) // 例如：".jpg", ".png"

	// 规则：component_images/YYYYMMDD/componentID_uuid.ext
	return fmt.Sprintf("%s%s/%d_%s%s",
		constant.COSObjectKeyPrefixComponentImages,
		datePrefix,
		componentID,
		randomUUID,
		extension,
	)
}

// UploadComponentImage 实现配件商品图的上传与回写。
func (s *componentService) UploadComponentImage(ctx context.Context, componentID uint64, fileHeader *multipart.FileHeader) (*vo.ComponentVO, error) {
	// 1. 确认配件存在，避免给不存在的记录上传孤立文件
	component, err := s.componentRepo.GetComponentByID(ctx, componentID)
	if err != nil {
		if errors.Is(err, commonerrors.ErrRepoNotFound) {
			s.logger.Warn("上传配件图：配件不存在", zap.Uint64("componentID", componentID))
		} else {
			s.logger.Error("上传配件图：查询配件失败", zap.Error(err), zap.Uint64("componentID", componentID))
		}
		return nil, err
	}

	// 2. 上传文件到 COS
	file, err := fileHeader.Open()
	if err != nil {
		s.logger.Error("打开图片文件以上传失败",
			zap.String("filename", fileHeader.Filename),
			zap.Error(err))
		return nil, fmt.Errorf("打开图片文件 %s 失败: %w", fileHeader.Filename, err)
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream" // 常见的默认值
		s.logger.Warn("未提供图片的内容类型，使用默认值",
			zap.String("filename", fileHeader.Filename),
			zap.String("defaultContentType", contentType))
	}

	objectKey := s.generateComponentImageObjectKey(fileHeader.Filename, componentID)

	imageURL, err := s.cosClient.UploadFile(ctx, objectKey, file, fileHeader.Size, contentType)
	file.Close() // 在 UploadFile 使用完文件后关闭它。
	if err != nil {
		s.logger.Error("上传配件图到 COS 失败",
			zap.String("filename", fileHeader.Filename),
			zap.String("objectKey", objectKey),
			zap.Error(err))
		return nil, fmt.Errorf("上传图片 %s 到 COS 失败: %w", fileHeader.Filename, err)
	}

	// 3. 回写图片 URL；失败时清理刚上传的 COS 文件，避免孤立文件
	if err := s.componentRepo.UpdateComponentImage(ctx, componentID, imageURL); err != nil {
		s.logger.Warn("回写图片 URL 失败，尝试清理已上传的 COS 文件", zap.String("objectKey", objectKey))
		if cleanupErr := s.cosClient.DeleteObject(context.Background(), objectKey); cleanupErr != nil {
			s.logger.Error("清理孤立的 COS 文件失败", zap.String("objectKey", objectKey), zap.Error(cleanupErr))
		}
		return nil, fmt.Errorf("更新配件图片失败: %w", err)
	}

	s.logger.Info("成功上传配件图并回写",
		zap.Uint64("componentID", componentID),
		zap.String("objectKey", objectKey),
		zap.String("imageURL", imageURL))

	component.Image = imageURL
	return vo.MapComponentToVO(component), nil
}

// DeleteComponent 实现带引用保护的配件删除。
func (s *componentService) DeleteComponent(ctx context.Context, id uint64) error {
	// 1. 引用检查：仍被装机单引用的配件不允许删除
	refCount, err := s.buildComponentRepo.CountByComponentID(ctx, id)
	if err != nil {
		s.logger.Error("删除配件：统计引用数失败", zap.Error(err), zap.Uint64("componentID", id))
		return fmt.Errorf("检查配件引用失败: %w", err)
	}
	if refCount > 0 {
		s.logger.Warn("删除配件被拒绝：仍有装机单引用该配件",
			zap.Uint64("componentID", id),
			zap.Int64("refCount", refCount))
		return myErrors.ErrComponentInUse
	}

	// 2. 软删除配件记录
	if err := s.componentRepo.DeleteComponent(ctx, s.db, id); err != nil {
		if errors.Is(err, commonerrors.ErrRepoNotFound) {
			s.logger.Warn("删除配件：配件不存在", zap.Uint64("componentID", id))
		} else {
			s.logger.Error("删除配件失败", zap.Error(err), zap.Uint64("componentID", id))
		}
		return err
	}

	s.logger.Info("删除配件成功", zap.Uint64("componentID", id))
	return nil
}

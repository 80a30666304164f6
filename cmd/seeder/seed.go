package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync" // 用于并发控制

	"github.com/Xushengqwer/go-common/core"
	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid" // 用于生成 OwnerID
	"go.uber.org/zap"

	"github.com/Xushengqwer/build_service/models/dto"
	"github.com/Xushengqwer/build_service/models/enums"
	"github.com/Xushengqwer/build_service/myErrors"
	"github.com/Xushengqwer/build_service/service"
)

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

// seedComponentCatalog 生成一套角色覆盖完整的配件目录。
// 同一插槽/内存代际的配件会成组出现，保证随机组装时多数装机单兼容性检测能通过；
// 穿插的不兼容组合（AM5 CPU 配 LGA1700 主板等）会在创建时被拒绝，属预期现象。
func seedComponentCatalog(ctx context.Context, componentSvc service.ComponentService, logger *core.ZapLogger) []uint64 {
	payloads := []dto.ComponentPayload{
		// CPU
		{Name: "Ryzen 7 7800X3D", Role: enums.RoleCPU.String(), Brand: "AMD", Model: "7800X3D",
			Socket: strPtr("AM5"), TDP: intPtr(120), Price: 2899},
		{Name: "Core i5-14600K", Role: enums.RoleCPU.String(), Brand: "Intel", Model: "14600K",
			Socket: strPtr("LGA1700"), TDP: intPtr(125), Price: 2199},
		// 主板
		{Name: "B650M AORUS ELITE AX", Role: enums.RoleMotherboard.String(), Brand: "GIGABYTE", Model: "B650M",
			Socket: strPtr("AM5"), Chipset: strPtr("B650"), RAMType: strPtr("DDR5"), RAMSlots: intPtr(4),
			MotherboardFormFactor: strPtr("mATX"), PCIeVersion: strPtr("4.0"), M2Slots: intPtr(2), TDP: intPtr(35), Price: 1099},
		{Name: "Z790 TUF GAMING", Role: enums.RoleMotherboard.String(), Brand: "ASUS", Model: "Z790",
			Socket: strPtr("LGA1700"), Chipset: strPtr("Z790"), RAMType: strPtr("DDR5"), RAMSlots: intPtr(4),
			MotherboardFormFactor: strPtr("ATX"), PCIeVersion: strPtr("5.0"), M2Slots: intPtr(4), TDP: intPtr(40), Price: 1899},
		// 内存
		{Name: "Fury Beast DDR5 6000 16Gx2", Role: enums.RoleRAM.String(), Brand: "Kingston", Model: "KF560C36",
			RAMType: strPtr("DDR5"), RAMSpeed: intPtr(6000), TDP: intPtr(10), Price: 699},
		{Name: "Vengeance DDR4 3600 16Gx2", Role: enums.RoleRAM.String(), Brand: "Corsair", Model: "CMK32GX4",
			RAMType: strPtr("DDR4"), RAMSpeed: intPtr(3600), TDP: intPtr(10), Price: 459},
		// 显卡
		{Name: "GeForce RTX 4070 SUPER", Role: enums.RoleGPU.String(), Brand: "NVIDIA", Model: "RTX4070S",
			PCIeVersion: strPtr("4.0"), GPULengthMM: intPtr(304), TDP: intPtr(220), Price: 4999},
		{Name: "Radeon RX 7800 XT", Role: enums.RoleGPU.String(), Brand: "AMD", Model: "RX7800XT",
			PCIeVersion: strPtr("4.0"), GPULengthMM: intPtr(287), TDP: intPtr(263), Price: 3999},
		// 电源
		{Name: "RM850x", Role: enums.RolePSU.String(), Brand: "Corsair", Model: "RM850x",
			PSUWattage: intPtr(850), PSUFormFactor: strPtr("ATX"), Price: 899},
		{Name: "SF450", Role: enums.RolePSU.String(), Brand: "Corsair", Model: "SF450",
			PSUWattage: intPtr(450), PSUFormFactor: strPtr("SFX"), Price: 699},
		// 机箱
		{Name: "4000D Airflow", Role: enums.RoleCase.String(), Brand: "Corsair", Model: "4000D",
			CaseSupportedPSU: []string{"ATX"}, CaseMotherboardSupport: []string{"ATX", "mATX", "ITX"},
			MaxGPULengthMM: intPtr(360), CaseMaxCoolerHeightMM: intPtr(170), Price: 549},
		{Name: "Meshlicious ITX", Role: enums.RoleCase.String(), Brand: "SSUPD", Model: "Meshlicious",
			CaseSupportedPSU: []string{"SFX"}, CaseMotherboardSupport: []string{"ITX"},
			MaxGPULengthMM: intPtr(336), CaseMaxCoolerHeightMM: intPtr(73), Price: 799},
		// 散热
		{Name: "AK620 风冷", Role: enums.RoleCooler.String(), Brand: "DeepCool", Model: "AK620",
			CoolerHeightMM: intPtr(160), TDP: intPtr(5), Price: 249},
		// 存储
		{Name: "980 PRO 1TB", Role: enums.RoleStorage.String(), Brand: "Samsung", Model: "980PRO",
			StorageInterface: strPtr("M.2"), TDP: intPtr(8), Price: 649},
		{Name: "MX500 1TB", Role: enums.RoleStorage.String(), Brand: "Crucial", Model: "MX500",
			StorageInterface: strPtr("SATA"), TDP: intPtr(5), Price: 429},
	}

	ids := make([]uint64, 0, len(payloads))
	for i := range payloads {
		resp, err := componentSvc.CreateComponent(ctx, &payloads[i])
		if err != nil {
			logger.Error("创建配件失败", zap.Error(err), zap.String("name", payloads[i].Name))
			continue
		}
		ids = append(ids, resp.ID)
		logger.Info("成功创建配件", zap.Uint64("component_id", resp.ID), zap.String("name", payloads[i].Name))
	}
	return ids
}

// Seed 先填充配件目录，再并发创建随机装机单。
// 注意：函数名 Seed 首字母大写，以便在同一个包中被 main.go 调用
func Seed(ctx context.Context, componentSvc service.ComponentService, buildSvc service.BuildService, logger *core.ZapLogger, numBuilds int) {
	logger.Info("开始填充测试数据 (通过服务层)...", zap.Int("装机单数量", numBuilds))

	componentIDs := seedComponentCatalog(ctx, componentSvc, logger)
	if len(componentIDs) == 0 {
		logger.Error("配件目录填充失败，跳过装机单填充")
		return
	}

	var wg sync.WaitGroup
	concurrencyLimit := 10
	semaphore := make(chan struct{}, concurrencyLimit)

	for i := 0; i < numBuilds; i++ {
		wg.Add(1)
		semaphore <- struct{}{}

		go func(itemIndex int) {
			defer wg.Done()
			defer func() { <-semaphore }()

			ownerID := uuid.New().String()

			// 从目录中随机抽取 3~8 件配件（允许重复），不兼容组合会被创建接口拒绝
			count := gofakeit.Number(3, 8)
			refs := make([]string, 0, count)
			for j := 0; j < count; j++ {
				id := componentIDs[gofakeit.Number(0, len(componentIDs)-1)]
				refs = append(refs, strconv.FormatUint(id, 10))
			}

			createReq := &dto.CreateBuildRequest{
				Name:        gofakeit.Sentence(gofakeit.Number(2, 5)),
				Description: gofakeit.Paragraph(1, 3, 15, "\n"),
				Components:  refs,
			}

			resp, err := buildSvc.CreateBuild(ctx, ownerID, createReq)
			if err != nil {
				var incErr *myErrors.IncompatibleBuildError
				if errors.As(err, &incErr) {
					logger.Warn(fmt.Sprintf("装机单 %d/%d 被兼容性检测拒绝", itemIndex+1, numBuilds),
						zap.Strings("issues", incErr.Issues),
						zap.String("name", createReq.Name))
					return
				}
				logger.Error(fmt.Sprintf("创建装机单 %d/%d 失败", itemIndex+1, numBuilds),
					zap.Error(err),
					zap.String("name", createReq.Name),
					zap.String("owner_id", ownerID))
			} else {
				logger.Info(fmt.Sprintf("成功创建装机单 %d/%d", itemIndex+1, numBuilds),
					zap.Uint64("build_id", resp.ID),
					zap.Int("estimated_wattage", resp.EstimatedWattage),
					zap.String("name", resp.Name))
			}
		}(i)
	}

	wg.Wait()
	logger.Info("测试数据填充完毕 (通过服务层)。")
}

package database

import (
	"fmt"

	"github.com/wfunc/wager-engine/internal/config"
	"github.com/wfunc/wager-engine/internal/logger"
	"github.com/wfunc/wager-engine/internal/models"
	"go.uber.org/zap"
)

// AutoMigrate 自动迁移数据库表结构
func AutoMigrate() error {
	if DB == nil {
		return fmt.Errorf("数据库未初始化")
	}

	migrationModels := []interface{}{
		// 资金相关
		&models.Wallet{},
		&models.Transaction{},

		// 投注相关
		&models.Game{},
		&models.BetSession{},
	}

	for _, model := range migrationModels {
		if err := DB.AutoMigrate(model); err != nil {
			logger.Error("表迁移失败", zap.Error(err))
			return fmt.Errorf("迁移失败: %w", err)
		}
	}

	logger.Info("数据库迁移完成", zap.Int("tables", len(migrationModels)))
	return nil
}

// SeedGames 按配置写入默认游戏（幂等，已存在则跳过）
func SeedGames(cfg *config.GameConfig) error {
	if DB == nil {
		return fmt.Errorf("数据库未初始化")
	}

	symbols := make([]interface{}, len(cfg.Slot.Symbols))
	for i, s := range cfg.Slot.Symbols {
		symbols[i] = s
	}
	multipliers := make([]interface{}, len(cfg.Slot.Multipliers))
	for i, m := range cfg.Slot.Multipliers {
		multipliers[i] = m
	}

	games := []models.Game{
		{
			Name:       "经典拉霸",
			Type:       "slot",
			Status:     models.GameStatusActive,
			MinStake:   cfg.Slot.MinStake,
			MaxStake:   cfg.Slot.MaxStake,
			Volatility: cfg.Slot.Volatility,
			Config: models.JSONMap{
				"symbols":     symbols,
				"multipliers": multipliers,
			},
		},
		{
			Name:       "欧式轮盘",
			Type:       "roulette",
			Status:     models.GameStatusActive,
			MinStake:   cfg.Roulette.MinStake,
			MaxStake:   cfg.Roulette.MaxStake,
			Volatility: cfg.Roulette.Volatility,
		},
		{
			Name:       "抛硬币",
			Type:       "coinflip",
			Status:     models.GameStatusActive,
			MinStake:   cfg.Coinflip.MinStake,
			MaxStake:   cfg.Coinflip.MaxStake,
			Volatility: cfg.Coinflip.Volatility,
		},
	}

	for i := range games {
		var count int64
		if err := DB.Model(&models.Game{}).Where("type = ?", games[i].Type).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		if err := DB.Create(&games[i]).Error; err != nil {
			return fmt.Errorf("写入默认游戏失败: %w", err)
		}
		logger.Info("写入默认游戏",
			zap.String("type", games[i].Type),
			zap.String("name", games[i].Name))
	}

	return nil
}

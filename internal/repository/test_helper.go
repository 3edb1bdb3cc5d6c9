package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/wfunc/wager-engine/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB 为测试套件设置测试数据库
func SetupTestDB() *gorm.DB {
	// 使用内存数据库进行测试（更快，不需要文件系统，在所有环境中都能工作）
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic(err)
	}

	err = db.AutoMigrate(
		&models.Wallet{},
		&models.Transaction{},
		&models.Game{},
		&models.BetSession{},
	)
	if err != nil {
		panic(err)
	}

	return db
}

// CleanupTestDB 清理测试数据库
func CleanupTestDB(db *gorm.DB) {
	sqlDB, _ := db.DB()
	if sqlDB != nil {
		sqlDB.Close()
	}
}

// SeedTestWallet 创建测试钱包
func SeedTestWallet(t *testing.T, db *gorm.DB, userID uint, balance int64) *models.Wallet {
	wallet := &models.Wallet{
		UserID:  userID,
		Balance: balance,
	}
	err := db.Create(wallet).Error
	require.NoError(t, err)
	return wallet
}

// SeedTestGame 创建测试游戏
func SeedTestGame(t *testing.T, db *gorm.DB, gameType string, volatility int) *models.Game {
	game := &models.Game{
		Name:       "测试游戏_" + gameType,
		Type:       gameType,
		Status:     models.GameStatusActive,
		MinStake:   100,
		MaxStake:   1000000,
		Volatility: volatility,
	}
	err := db.Create(game).Error
	require.NoError(t, err)
	return game
}

// CreateTestBetSession 创建测试投注会话
func CreateTestBetSession(sessionID string, userID, gameID uint, stake int64) *models.BetSession {
	return &models.BetSession{
		SessionID:   sessionID,
		UserID:      userID,
		GameID:      gameID,
		GameType:    "coinflip",
		StakeAmount: stake,
		Selection:   models.JSONMap{"side": "heads"},
		Status:      models.BetStatusPending,
		PlacedAt:    time.Now(),
	}
}

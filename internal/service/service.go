package service

import (
	"github.com/wfunc/wager-engine/internal/game/rng"
	"github.com/wfunc/wager-engine/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Config 服务配置
type Config struct {
	InitialBalance int64 // 新钱包初始额度（分）
}

// DefaultConfig 默认配置
func DefaultConfig() *Config {
	return &Config{
		InitialBalance: 100000, // 1000.00
	}
}

// Services 服务集合
type Services struct {
	Bet    BetService
	Wallet WalletService
	Game   GameService
}

// NewServices 创建服务集合
func NewServices(db *gorm.DB, config *Config, emitter EventEmitter, log *zap.Logger) *Services {
	// 初始化仓储
	walletRepo := repository.NewWalletRepository(db)
	betRepo := repository.NewBetSessionRepository(db)
	gameRepo := repository.NewGameRepository(db)
	txRepo := repository.NewTransactionRepository(db)

	// 开奖随机源：生产环境使用密码学随机
	random := rng.NewCryptoRandomGenerator()

	// 初始化服务
	betService := NewBetService(
		walletRepo,
		betRepo,
		gameRepo,
		txRepo,
		random,
		emitter,
		log,
	)

	walletService := NewWalletService(
		walletRepo,
		txRepo,
		config.InitialBalance,
		log,
	)

	gameService := NewGameService(gameRepo)

	return &Services{
		Bet:    betService,
		Wallet: walletService,
		Game:   gameService,
	}
}

package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/wfunc/wager-engine/internal/service"
	"github.com/wfunc/wager-engine/internal/websocket"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Router API路由器
type Router struct {
	engine        *gin.Engine
	db            *gorm.DB
	services      *service.Services
	betHandler    *BetHandler
	walletHandler *WalletHandler
	gameHandler   *GameHandler
	wsHandler     *WebSocketHandler
	log           *zap.Logger
}

// NewRouter 创建路由器
func NewRouter(db *gorm.DB, services *service.Services, hub *websocket.Hub, log *zap.Logger) *Router {
	// 创建Gin引擎
	engine := gin.New()

	// 全局中间件
	engine.Use(gin.Recovery())
	engine.Use(gin.Logger())

	router := &Router{
		engine:        engine,
		db:            db,
		services:      services,
		betHandler:    NewBetHandler(services.Bet, log),
		walletHandler: NewWalletHandler(services.Wallet, log),
		gameHandler:   NewGameHandler(services.Game),
		wsHandler:     NewWebSocketHandler(hub, log),
		log:           log,
	}

	// 设置路由
	router.setupRoutes()

	return router
}

// setupRoutes 设置路由
func (r *Router) setupRoutes() {
	// 健康检查
	r.engine.GET("/health", r.healthCheck)

	// 结算事件订阅
	r.engine.GET("/ws", r.wsHandler.Subscribe)

	// API v1路由组
	v1 := r.engine.Group("/api/v1")
	{
		// 游戏配置
		games := v1.Group("/games")
		{
			games.GET("", r.gameHandler.ListGames)
			games.GET("/:id", r.gameHandler.GetGame)
		}

		// 投注生命周期
		bets := v1.Group("/bets")
		{
			bets.POST("", r.betHandler.PlaceBet)
			bets.GET("", r.betHandler.ListBets)
			bets.GET("/:session_id", r.betHandler.GetBet)
			bets.POST("/:session_id/settle", r.betHandler.SettleBet)
		}

		// 钱包
		wallet := v1.Group("/wallet")
		{
			wallet.GET("/balance", r.walletHandler.GetBalance)
			wallet.POST("/deposit", r.walletHandler.Deposit)
			wallet.GET("/transactions", r.walletHandler.ListTransactions)
		}
	}
}

// healthCheck 健康检查
func (r *Router) healthCheck(c *gin.Context) {
	sqlDB, err := r.db.DB()
	if err != nil || sqlDB.Ping() != nil {
		c.JSON(503, gin.H{
			"status":    "unhealthy",
			"timestamp": time.Now().Unix(),
		})
		return
	}

	c.JSON(200, gin.H{
		"status":    "ok",
		"timestamp": time.Now().Unix(),
	})
}

// Engine 返回底层Gin引擎
func (r *Router) Engine() *gin.Engine {
	return r.engine
}

package service

import (
	"context"
	"time"

	"github.com/wfunc/wager-engine/internal/game"
	"github.com/wfunc/wager-engine/internal/models"
)

// EventEmitter 结算事件出口。实现方（WebSocket Hub等）必须
// 尽力而为且不阻塞，结算流程不等待推送结果。
type EventEmitter interface {
	EmitSettlement(accountID, gameID uint, sessionID string, payoutAmount int64)
}

// PlaceBetRequest 下注请求
type PlaceBetRequest struct {
	UserID    uint            `json:"user_id"`
	GameID    uint            `json:"game_id"`
	Stake     int64           `json:"stake"` // 分
	Selection *game.Selection `json:"selection,omitempty"`
}

// BetResult 结算后的完整投注快照
type BetResult struct {
	SessionID    string        `json:"session_id"`
	UserID       uint          `json:"user_id"`
	GameID       uint          `json:"game_id"`
	GameType     string        `json:"game_type"`
	StakeAmount  int64         `json:"stake_amount"`
	Status       string        `json:"status"`
	Outcome      *game.Outcome `json:"outcome,omitempty"`
	PayoutAmount int64         `json:"payout_amount"`
	Multiplier   float64       `json:"multiplier"`
	IsWin        bool          `json:"is_win"`
	NewBalance   int64         `json:"new_balance"`
	PlacedAt     time.Time     `json:"placed_at"`
	SettledAt    *time.Time    `json:"settled_at,omitempty"`
}

// BetService 投注生命周期服务
type BetService interface {
	// PlaceBet 下注：验证、扣款、建立pending会话
	PlaceBet(ctx context.Context, req *PlaceBetRequest) (*models.BetSession, error)
	// SettleBet 结算：开奖一次并落终态、派彩入账
	SettleBet(ctx context.Context, sessionID string) (*BetResult, error)
	// GetBet 查询单个投注会话
	GetBet(ctx context.Context, sessionID string) (*models.BetSession, error)
	// ListBets 分页查询用户投注历史
	ListBets(ctx context.Context, userID uint, page, pageSize int) ([]*models.BetSession, int64, error)
	// SweepPending 扫描超时未结算的会话，供对账使用
	SweepPending(ctx context.Context, olderThan time.Duration) ([]*models.BetSession, error)
}

// WalletService 钱包服务
type WalletService interface {
	// GetOrCreateWallet 查询钱包，不存在时创建并发放初始额度
	GetOrCreateWallet(ctx context.Context, userID uint) (*models.Wallet, error)
	// GetBalance 查询余额
	GetBalance(ctx context.Context, userID uint) (int64, error)
	// Deposit 充值入账
	Deposit(ctx context.Context, userID uint, amount int64) (*models.Wallet, error)
	// ListTransactions 分页查询资金流水
	ListTransactions(ctx context.Context, userID uint, page, pageSize int) ([]*models.Transaction, int64, error)
}

// GameService 游戏配置服务
type GameService interface {
	// ListGames 列出开放中的游戏
	ListGames(ctx context.Context) ([]*models.Game, error)
	// GetGame 查询单个游戏
	GetGame(ctx context.Context, gameID uint) (*models.Game, error)
}

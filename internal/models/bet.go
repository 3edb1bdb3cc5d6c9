package models

import (
	"time"
)

// 投注会话状态
const (
	BetStatusPending = "pending" // 已扣注，等待结算
	BetStatusSettled = "settled" // 已结算（终态）
	BetStatusFailed  = "failed"  // 结算失败（终态，待人工对账）
)

// BetSession 投注会话表
//
// 生命周期：扣注成功时以 pending 创建并立即落库，之后有且仅有一次
// 状态迁移到 settled 或 failed，终态后只读。
type BetSession struct {
	BaseModel
	SessionID     string     `gorm:"uniqueIndex;size:64;not null" json:"session_id"`
	UserID        uint       `gorm:"not null;index" json:"user_id"`
	GameID        uint       `gorm:"not null;index" json:"game_id"`
	GameType      string     `gorm:"size:20;not null" json:"game_type"`
	StakeAmount   int64      `gorm:"not null" json:"stake_amount"` // 注额（分）
	Selection     JSONMap    `gorm:"type:json" json:"selection"`   // 玩家选择（轮盘/硬币）
	Status        string     `gorm:"size:20;default:'pending';index" json:"status"`
	Outcome       JSONMap    `gorm:"type:json" json:"outcome"`      // 开奖结果
	PayoutAmount  int64      `gorm:"default:0" json:"payout_amount"` // 派彩（分）
	Multiplier    float64    `gorm:"default:0" json:"multiplier"`
	IsWin         bool       `gorm:"default:false" json:"is_win"`
	CreditPending bool       `gorm:"default:false" json:"credit_pending"` // 已结算但派彩入账失败
	PlacedAt      time.Time  `json:"placed_at"`
	SettledAt     *time.Time `json:"settled_at,omitempty"`
}

// IsTerminal 检查会话是否已到终态
func (b *BetSession) IsTerminal() bool {
	return b.Status == BetStatusSettled || b.Status == BetStatusFailed
}

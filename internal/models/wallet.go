package models

import (
	"time"
)

// Wallet 用户钱包表
type Wallet struct {
	BaseModel
	UserID       uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	Balance      int64     `gorm:"default:0" json:"balance"` // 余额（分）
	TotalDeposit int64     `gorm:"default:0" json:"total_deposit"`
	TotalBet     int64     `gorm:"default:0" json:"total_bet"`
	TotalWin     int64     `gorm:"default:0" json:"total_win"`
	LastBetAt    *time.Time `json:"last_bet_at,omitempty"`
}

// CanBet 检查余额是否足够下注
func (w *Wallet) CanBet(amount int64) bool {
	return w.Balance >= amount
}

// Transaction 资金流水表
type Transaction struct {
	BaseModel
	UserID        uint    `gorm:"not null;index" json:"user_id"`
	OrderNo       string  `gorm:"uniqueIndex;size:64;not null" json:"order_no"`
	Type          string  `gorm:"size:20;not null;index" json:"type"` // deposit, bet, win
	Amount        int64   `gorm:"not null" json:"amount"`
	BeforeBalance int64   `json:"before_balance"`
	AfterBalance  int64   `json:"after_balance"`
	Status        string  `gorm:"size:20;default:'success';index" json:"status"`
	RefID         string  `gorm:"size:64;index" json:"ref_id"` // 关联的投注会话ID
	RefType       string  `gorm:"size:20" json:"ref_type"`
	Description   string  `gorm:"size:255" json:"description"`
}

// 流水类型
const (
	TransactionTypeDeposit = "deposit"
	TransactionTypeBet     = "bet"
	TransactionTypeWin     = "win"
)

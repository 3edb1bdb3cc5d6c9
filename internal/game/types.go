package game

import (
	"fmt"

	"github.com/wfunc/wager-engine/internal/game/coinflip"
	"github.com/wfunc/wager-engine/internal/game/roulette"
	"github.com/wfunc/wager-engine/internal/game/slot"
)

// Type 游戏类型
type Type string

const (
	TypeSlot     Type = "slot"
	TypeRoulette Type = "roulette"
	TypeCoinflip Type = "coinflip"
)

// Valid 检查游戏类型是否合法
func (t Type) Valid() bool {
	return t == TypeSlot || t == TypeRoulette || t == TypeCoinflip
}

// Selection 玩家的下注选择。
// 老虎机没有选择；轮盘是选项组合；硬币是所押的一面。
type Selection struct {
	Roulette roulette.Selection `json:"roulette,omitempty"`
	Coinflip coinflip.Side      `json:"coinflip,omitempty"`
}

// Outcome 开奖结果描述
type Outcome struct {
	GameType Type           `json:"game_type"`
	Grid     slot.Grid      `json:"grid,omitempty"`   // 老虎机
	Number   *int           `json:"number,omitempty"` // 轮盘（指针以保留0）
	Color    roulette.Color `json:"color,omitempty"`  // 轮盘
	Side     coinflip.Side  `json:"side,omitempty"`   // 硬币
}

// Describe 返回开奖结果的简短描述
func (o *Outcome) Describe() string {
	switch o.GameType {
	case TypeSlot:
		return fmt.Sprintf("slot grid %v", o.Grid)
	case TypeRoulette:
		if o.Number == nil {
			return "roulette (no draw)"
		}
		return fmt.Sprintf("roulette %d (%s)", *o.Number, o.Color)
	case TypeCoinflip:
		return fmt.Sprintf("coinflip %s", o.Side)
	default:
		return "unknown outcome"
	}
}

// PayoutResult 派彩结果
type PayoutResult struct {
	Payout     int64          `json:"payout"` // 派彩金额（分），输为0
	Multiplier float64        `json:"multiplier"`
	IsWin      bool           `json:"is_win"`
	WinLines   []slot.WinLine `json:"win_lines,omitempty"` // 老虎机中奖线
}

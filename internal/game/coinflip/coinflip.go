// Package coinflip 实现抛硬币玩法：50/50开奖，猜中按2倍派彩。
package coinflip

import (
	"fmt"

	"github.com/wfunc/wager-engine/internal/game/rng"
)

// Side 硬币面
type Side string

const (
	SideHeads Side = "heads"
	SideTails Side = "tails"
)

// WinMultiplier 猜中时的固定倍率
const WinMultiplier = 2.0

// Valid 检查硬币面是否合法
func (s Side) Valid() bool {
	return s == SideHeads || s == SideTails
}

// ParseSide 解析硬币面
func ParseSide(s string) (Side, error) {
	side := Side(s)
	if !side.Valid() {
		return "", fmt.Errorf("无效的硬币面: %s", s)
	}
	return side, nil
}

// Generate 开奖：与波动等级无关的50/50。
func Generate(random rng.RandomGenerator) Side {
	if random.NextInt(0, 2) == 0 {
		return SideHeads
	}
	return SideTails
}

// CalculatePayout 猜中返回注额×2，否则返回0，不存在第三种结果。
func CalculatePayout(drawn, picked Side, stake int64) (int64, bool) {
	if drawn == picked {
		return stake * 2, true
	}
	return 0, false
}

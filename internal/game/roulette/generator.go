package roulette

import (
	"github.com/wfunc/wager-engine/internal/game/rng"
)

// ZeroChance 返回波动等级对应的开0概率，1%到5%线性递增。
func ZeroChance(volatility int) float64 {
	return 0.01 + float64(volatility-1)*0.01
}

// Generate 开奖：以波动等级决定的概率开0，否则在1-36中等概率取一个号码。
func Generate(volatility int, random rng.RandomGenerator) int {
	if random.Next() < ZeroChance(volatility) {
		return 0
	}
	return random.NextInt(1, 37)
}

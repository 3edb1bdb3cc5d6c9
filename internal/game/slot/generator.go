package slot

import (
	"math"

	"github.com/wfunc/wager-engine/internal/game/rng"
)

// BuildWeightPool 构建波动等级调整后的抽样池。
//
// 中间索引附近是常见符号，两端是最常见与最稀有符号：
// 波动等级1把权重压向中间（小奖频出），波动等级5把权重推向两端
// （方差更大）。池是每次调用新建的本地切片，整个网格的9个格子
// 共用同一个池，各自独立等概率抽取，等价于有放回的加权抽样。
func BuildWeightPool(cfg *Config) []int {
	n := len(cfg.Symbols)
	middleIndex := float64(n-1) / 2.0
	volatilityFactor := float64(cfg.Volatility-3) * 0.5

	var pool []int
	for i := 0; i < n; i++ {
		distance := math.Abs(float64(i) - middleIndex)
		adjustment := math.Pow(1.5, distance*volatilityFactor)
		weight := int(math.Round(float64(cfg.baseWeight(i)) * adjustment))
		if weight < 1 {
			weight = 1
		}
		for j := 0; j < weight; j++ {
			pool = append(pool, i)
		}
	}
	return pool
}

// Generate 生成3x3开奖网格
func Generate(cfg *Config, random rng.RandomGenerator) Grid {
	pool := BuildWeightPool(cfg)

	grid := NewGrid()
	for r := 0; r < GridRows; r++ {
		for c := 0; c < GridCols; c++ {
			grid[r][c] = pool[random.NextInt(0, len(pool))]
		}
	}
	return grid
}

package slot

import "math"

// FindWinningLines 扫描8条支付线，三格同一符号即中奖。
// 同一符号在多条线上同时中奖时各线独立计入，不去重。
func FindWinningLines(grid Grid, cfg *Config) []WinLine {
	var winLines []WinLine

	for lineID, line := range paylines {
		first := grid[line.positions[0].Row][line.positions[0].Col]
		matched := true
		for _, pos := range line.positions[1:] {
			if grid[pos.Row][pos.Col] != first {
				matched = false
				break
			}
		}
		if !matched {
			continue
		}

		positions := make([]Position, GridCols)
		copy(positions, line.positions[:])

		winLines = append(winLines, WinLine{
			LineID:     lineID,
			LineType:   line.lineType,
			Symbol:     first,
			Positions:  positions,
			Multiplier: cfg.Multipliers[first],
		})
	}

	return winLines
}

// CalculatePayout 计算派彩：注额 × 各中奖线倍率之和，向下取整到分。
func CalculatePayout(winLines []WinLine, stake int64) (int64, float64) {
	var totalMultiplier float64
	for _, line := range winLines {
		totalMultiplier += line.Multiplier
	}

	// 只舍不入，避免因取整多付
	payout := int64(math.Floor(float64(stake) * totalMultiplier))
	return payout, totalMultiplier
}

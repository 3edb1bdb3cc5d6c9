package roulette

import "math"

// GreenMultiplier GREEN单注命中0的倍率
const GreenMultiplier = 36.0

// 倍率表：[是否下注颜色][区间数量] -> 倍率。
// 区间数量为0表示只押颜色。
var multiplierTable = map[bool]map[int]float64{
	false: {
		1: 4.0,
		2: 2.0,
		3: 1.5,
		4: 1.0,
	},
	true: {
		0: 2.0,
		1: 8.0,
		2: 4.0,
		3: 3.0,
		4: 2.0,
	},
}

// Result 派彩结果
type Result struct {
	Payout     int64   `json:"payout"`
	Multiplier float64 `json:"multiplier"`
	// IsWin 仅当倍率大于1.0时为真：倍率1.0只是返还本金，
	// 不算可上榜的赢局。
	IsWin bool `json:"is_win"`
}

// CalculatePayout 根据开出的号码结算一组下注选项。
//
// GREEN单注：命中0按36倍派彩，否则输。
// 其他组合：押了颜色则颜色必须命中，押了区间则号码必须落在
// 任意一个所押区间内；任一已押条件未命中即为输，即使另一条件
// 命中也不例外。
func CalculatePayout(number int, selection Selection, stake int64) Result {
	if selection.HasGreen() {
		if number == 0 {
			return Result{
				Payout:     floorPayout(stake, GreenMultiplier),
				Multiplier: GreenMultiplier,
				IsWin:      true,
			}
		}
		return Result{}
	}

	colorPlaced := selection.ColorPlaced()
	rangeCount := selection.RangeCount()

	// 颜色条件：未押颜色视为满足
	colorMet := true
	if colorPlaced != "" {
		colorMet = Color(colorPlaced) == ColorOf(number)
	}

	// 区间条件：未押区间视为满足；押了多个区间命中任意一个即可
	rangeMet := true
	if rangeCount > 0 {
		rangeMet = false
		for _, opt := range selection {
			if !opt.IsRange() {
				continue
			}
			bounds := ranges[opt]
			if number >= bounds[0] && number <= bounds[1] {
				rangeMet = true
				break
			}
		}
	}

	if !colorMet || !rangeMet {
		return Result{}
	}

	multiplier := multiplierTable[colorPlaced != ""][rangeCount]
	return Result{
		Payout:     floorPayout(stake, multiplier),
		Multiplier: multiplier,
		IsWin:      multiplier > 1.0,
	}
}

// floorPayout 注额×倍率，向下取整到分
func floorPayout(stake int64, multiplier float64) int64 {
	return int64(math.Floor(float64(stake) * multiplier))
}

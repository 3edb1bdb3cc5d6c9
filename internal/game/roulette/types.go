package roulette

import "fmt"

// Color 号码颜色
type Color string

const (
	ColorRed   Color = "red"
	ColorBlack Color = "black"
	ColorGreen Color = "green"
)

// BetOption 下注选项
type BetOption string

const (
	BetRed         BetOption = "red"
	BetBlack       BetOption = "black"
	BetGreen       BetOption = "green"
	BetRange1To9   BetOption = "range_1_9"
	BetRange10To18 BetOption = "range_10_18"
	BetRange19To27 BetOption = "range_19_27"
	BetRange28To36 BetOption = "range_28_36"
)

// ranges 区间选项对应的号码范围（闭区间）
var ranges = map[BetOption][2]int{
	BetRange1To9:   {1, 9},
	BetRange10To18: {10, 18},
	BetRange19To27: {19, 27},
	BetRange28To36: {28, 36},
}

// IsRange 检查是否为区间选项
func (o BetOption) IsRange() bool {
	_, ok := ranges[o]
	return ok
}

// IsColor 检查是否为红/黑颜色选项
func (o BetOption) IsColor() bool {
	return o == BetRed || o == BetBlack
}

// Valid 检查选项是否合法
func (o BetOption) Valid() bool {
	return o.IsColor() || o.IsRange() || o == BetGreen
}

// Selection 一次下注的选项组合
type Selection []BetOption

// Validate 验证选项组合：
//   - 组合非空且无重复；
//   - GREEN 只能单独下注；
//   - 红/黑最多选一个；
//   - 区间可以任意组合，并可与一个颜色同时下注。
func (s Selection) Validate() error {
	if len(s) == 0 {
		return fmt.Errorf("下注选项不能为空")
	}

	seen := make(map[BetOption]bool, len(s))
	colorCount := 0
	greenCount := 0

	for _, opt := range s {
		if !opt.Valid() {
			return fmt.Errorf("无效的下注选项: %s", opt)
		}
		if seen[opt] {
			return fmt.Errorf("重复的下注选项: %s", opt)
		}
		seen[opt] = true

		if opt.IsColor() {
			colorCount++
		}
		if opt == BetGreen {
			greenCount++
		}
	}

	if greenCount > 0 && len(s) > 1 {
		return fmt.Errorf("GREEN只能单独下注")
	}
	if colorCount > 1 {
		return fmt.Errorf("红黑不能同时下注")
	}

	return nil
}

// ColorPlaced 返回组合中的颜色选项，未选颜色返回空串
func (s Selection) ColorPlaced() BetOption {
	for _, opt := range s {
		if opt.IsColor() {
			return opt
		}
	}
	return ""
}

// RangeCount 返回组合中区间选项的数量
func (s Selection) RangeCount() int {
	count := 0
	for _, opt := range s {
		if opt.IsRange() {
			count++
		}
	}
	return count
}

// HasGreen 检查组合是否为GREEN单注
func (s Selection) HasGreen() bool {
	for _, opt := range s {
		if opt == BetGreen {
			return true
		}
	}
	return false
}

// ColorOf 返回号码的颜色。
// 1-10 与 19-28：奇红偶黑；11-18 与 29-36：奇黑偶红；0为绿色。
func ColorOf(number int) Color {
	if number == 0 {
		return ColorGreen
	}

	odd := number%2 == 1
	if (number >= 1 && number <= 10) || (number >= 19 && number <= 28) {
		if odd {
			return ColorRed
		}
		return ColorBlack
	}
	if odd {
		return ColorBlack
	}
	return ColorRed
}

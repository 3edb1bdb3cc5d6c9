package slot

import "fmt"

// 固定3x3网格
const (
	GridRows = 3
	GridCols = 3
)

// 默认符号基础权重表，按稀有度升序排列的符号索引使用；
// 超出表长的符号权重为1（最稀有）。
var defaultBaseWeights = []int{10, 12, 15, 8, 5, 2}

// Config 老虎机配置
type Config struct {
	Symbols     []string  // 符号名，按稀有度升序
	Multipliers []float64 // 每个符号的单线倍率
	BaseWeights []int     // 基础权重表，空则使用默认表
	Volatility  int       // 波动等级 1-5
}

// Validate 验证配置
func (c *Config) Validate() error {
	if len(c.Symbols) < 2 {
		return fmt.Errorf("符号数量至少为2，当前%d", len(c.Symbols))
	}
	if len(c.Multipliers) != len(c.Symbols) {
		return fmt.Errorf("倍率表长度(%d)与符号数量(%d)不一致", len(c.Multipliers), len(c.Symbols))
	}
	for i, m := range c.Multipliers {
		if m < 0 {
			return fmt.Errorf("符号%d的倍率不能为负", i)
		}
	}
	if c.Volatility < 1 || c.Volatility > 5 {
		return fmt.Errorf("波动等级必须在1-5之间，当前%d", c.Volatility)
	}
	return nil
}

// baseWeight 返回符号i的基础权重
func (c *Config) baseWeight(i int) int {
	table := c.BaseWeights
	if len(table) == 0 {
		table = defaultBaseWeights
	}
	if i < len(table) {
		return table[i]
	}
	return 1
}

// Grid 3x3开奖网格，元素为符号索引
type Grid [][]int

// NewGrid 创建空网格
func NewGrid() Grid {
	g := make(Grid, GridRows)
	for r := range g {
		g[r] = make([]int, GridCols)
	}
	return g
}

// Position 网格中的位置
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// LineType 连线类型
type LineType string

const (
	LineTypeRow      LineType = "row"
	LineTypeColumn   LineType = "column"
	LineTypeDiagonal LineType = "diagonal"
)

// WinLine 中奖线
type WinLine struct {
	LineID     int        `json:"line_id"`
	LineType   LineType   `json:"line_type"`
	Symbol     int        `json:"symbol"` // 中奖符号索引
	Positions  []Position `json:"positions"`
	Multiplier float64    `json:"multiplier"`
}

// payline 支付线模式
type payline struct {
	lineType  LineType
	positions [GridCols]Position
}

// paylines 3x3网格的8条固定支付线：3行、3列、2条对角线
var paylines = []payline{
	{LineTypeRow, [3]Position{{0, 0}, {0, 1}, {0, 2}}},
	{LineTypeRow, [3]Position{{1, 0}, {1, 1}, {1, 2}}},
	{LineTypeRow, [3]Position{{2, 0}, {2, 1}, {2, 2}}},
	{LineTypeColumn, [3]Position{{0, 0}, {1, 0}, {2, 0}}},
	{LineTypeColumn, [3]Position{{0, 1}, {1, 1}, {2, 1}}},
	{LineTypeColumn, [3]Position{{0, 2}, {1, 2}, {2, 2}}},
	{LineTypeDiagonal, [3]Position{{0, 0}, {1, 1}, {2, 2}}},
	{LineTypeDiagonal, [3]Position{{0, 2}, {1, 1}, {2, 0}}},
}

// PaylineCount 支付线数量
const PaylineCount = 8

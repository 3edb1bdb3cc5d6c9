package models

// 游戏状态
const (
	GameStatusActive   = "active"   // 开放
	GameStatusDisabled = "disabled" // 停用
)

// Game 游戏配置表
//
// 配置一旦加载即视为不可变，引擎运行期间不修改本表。
type Game struct {
	BaseModel
	Name       string  `gorm:"size:100;not null" json:"name"`
	Type       string  `gorm:"size:20;not null;index" json:"type"` // slot, roulette, coinflip
	Status     string  `gorm:"size:20;default:'active'" json:"status"`
	MinStake   int64   `gorm:"not null" json:"min_stake"` // 最小注额（分）
	MaxStake   int64   `gorm:"not null" json:"max_stake"` // 最大注额（分）
	Volatility int     `gorm:"default:3" json:"volatility"` // 波动等级 1-5
	Config     JSONMap `gorm:"type:json" json:"config"`     // 游戏专属配置（符号表、倍率表等）
}

// IsActive 检查游戏是否开放
func (g *Game) IsActive() bool {
	return g.Status == GameStatusActive
}

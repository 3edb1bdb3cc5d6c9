package game

import (
	"fmt"

	apperrors "github.com/wfunc/wager-engine/internal/errors"
	"github.com/wfunc/wager-engine/internal/game/slot"
	"github.com/wfunc/wager-engine/internal/models"
)

// Config 单个游戏的静态配置。
// 加载后不可变，引擎只读。
type Config struct {
	GameID     uint
	GameType   Type
	MinStake   int64 // 分
	MaxStake   int64 // 分
	Volatility int   // 1-5
	Slot       *slot.Config
}

// Validate 验证配置
func (c *Config) Validate() error {
	if !c.GameType.Valid() {
		return fmt.Errorf("无效的游戏类型: %s", c.GameType)
	}
	if c.MinStake <= 0 {
		return fmt.Errorf("最小注额必须大于0")
	}
	if c.MinStake >= c.MaxStake {
		return fmt.Errorf("最小注额(%d)必须小于最大注额(%d)", c.MinStake, c.MaxStake)
	}
	if c.Volatility < 1 || c.Volatility > 5 {
		return fmt.Errorf("波动等级必须在1-5之间，当前%d", c.Volatility)
	}
	if c.GameType == TypeSlot {
		if c.Slot == nil {
			return fmt.Errorf("老虎机缺少符号配置")
		}
		if err := c.Slot.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStake 验证注额在允许范围内
func (c *Config) ValidateStake(stake int64) error {
	if stake < c.MinStake || stake > c.MaxStake {
		return apperrors.Newf(apperrors.ErrInvalidStake,
			"注额%d不在[%d, %d]范围内", stake, c.MinStake, c.MaxStake)
	}
	return nil
}

// ConfigFromModel 从游戏配置表记录构建引擎配置
func ConfigFromModel(g *models.Game) (*Config, error) {
	cfg := &Config{
		GameID:     g.ID,
		GameType:   Type(g.Type),
		MinStake:   g.MinStake,
		MaxStake:   g.MaxStake,
		Volatility: g.Volatility,
	}

	if cfg.GameType == TypeSlot {
		slotCfg, err := slotConfigFromJSON(g.Config, g.Volatility)
		if err != nil {
			return nil, err
		}
		cfg.Slot = slotCfg
	}

	if err := cfg.Validate(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrConfigValidate)
	}
	return cfg, nil
}

// slotConfigFromJSON 解析游戏表json配置中的符号与倍率表
func slotConfigFromJSON(raw models.JSONMap, volatility int) (*slot.Config, error) {
	symbolsRaw, ok := raw["symbols"].([]interface{})
	if !ok {
		return nil, fmt.Errorf("老虎机配置缺少symbols")
	}
	multipliersRaw, ok := raw["multipliers"].([]interface{})
	if !ok {
		return nil, fmt.Errorf("老虎机配置缺少multipliers")
	}

	symbols := make([]string, 0, len(symbolsRaw))
	for _, s := range symbolsRaw {
		name, ok := s.(string)
		if !ok {
			return nil, fmt.Errorf("符号名必须是字符串: %v", s)
		}
		symbols = append(symbols, name)
	}

	multipliers := make([]float64, 0, len(multipliersRaw))
	for _, m := range multipliersRaw {
		value, ok := m.(float64)
		if !ok {
			return nil, fmt.Errorf("倍率必须是数值: %v", m)
		}
		multipliers = append(multipliers, value)
	}

	return &slot.Config{
		Symbols:     symbols,
		Multipliers: multipliers,
		Volatility:  volatility,
	}, nil
}

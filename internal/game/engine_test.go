package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apperrors "github.com/wfunc/wager-engine/internal/errors"
	"github.com/wfunc/wager-engine/internal/game/coinflip"
	"github.com/wfunc/wager-engine/internal/game/roulette"
	"github.com/wfunc/wager-engine/internal/game/rng"
	"github.com/wfunc/wager-engine/internal/game/slot"
	"github.com/wfunc/wager-engine/internal/models"
)

func slotEngineConfig() *Config {
	return &Config{
		GameID:     1,
		GameType:   TypeSlot,
		MinStake:   100,
		MaxStake:   100000,
		Volatility: 3,
		Slot: &slot.Config{
			Symbols:     []string{"CHERRY", "LEMON", "ORANGE", "GRAPE", "BAR", "SEVEN"},
			Multipliers: []float64{1.5, 2, 3, 5, 10, 50},
			Volatility:  3,
		},
	}
}

func rouletteEngineConfig() *Config {
	return &Config{
		GameID:     2,
		GameType:   TypeRoulette,
		MinStake:   100,
		MaxStake:   50000,
		Volatility: 3,
	}
}

func coinflipEngineConfig() *Config {
	return &Config{
		GameID:     3,
		GameType:   TypeCoinflip,
		MinStake:   100,
		MaxStake:   200000,
		Volatility: 3,
	}
}

// TestValidateStake 测试注额验证
func TestValidateStake(t *testing.T) {
	cfg := coinflipEngineConfig()

	assert.NoError(t, cfg.ValidateStake(100))
	assert.NoError(t, cfg.ValidateStake(200000))

	err := cfg.ValidateStake(99)
	assert.Error(t, err)
	assert.Equal(t, apperrors.ErrInvalidStake, apperrors.GetCode(err))

	err = cfg.ValidateStake(200001)
	assert.Error(t, err)
	assert.Equal(t, apperrors.ErrInvalidStake, apperrors.GetCode(err))
}

// TestValidateSelection 测试选择验证按游戏类型分派
func TestValidateSelection(t *testing.T) {
	// 老虎机没有选择，nil也合法
	assert.NoError(t, ValidateSelection(slotEngineConfig(), nil))

	// 轮盘必须提供合法选项组合
	err := ValidateSelection(rouletteEngineConfig(), nil)
	assert.Equal(t, apperrors.ErrInvalidSelection, apperrors.GetCode(err))

	err = ValidateSelection(rouletteEngineConfig(), &Selection{
		Roulette: roulette.Selection{roulette.BetRed, roulette.BetBlack},
	})
	assert.Equal(t, apperrors.ErrInvalidSelection, apperrors.GetCode(err))

	assert.NoError(t, ValidateSelection(rouletteEngineConfig(), &Selection{
		Roulette: roulette.Selection{roulette.BetRed, roulette.BetRange1To9},
	}))

	// 硬币必须指定面
	err = ValidateSelection(coinflipEngineConfig(), &Selection{})
	assert.Equal(t, apperrors.ErrInvalidSelection, apperrors.GetCode(err))

	assert.NoError(t, ValidateSelection(coinflipEngineConfig(), &Selection{
		Coinflip: coinflip.SideTails,
	}))
}

// TestGenerate_Dispatch 开奖按游戏类型分派并填充对应字段
func TestGenerate_Dispatch(t *testing.T) {
	random := rng.NewSeededRandomGenerator(11)

	outcome, err := Generate(slotEngineConfig(), nil, random)
	require.NoError(t, err)
	assert.Equal(t, TypeSlot, outcome.GameType)
	assert.Len(t, outcome.Grid, slot.GridRows)
	assert.Nil(t, outcome.Number)

	outcome, err = Generate(rouletteEngineConfig(), &Selection{
		Roulette: roulette.Selection{roulette.BetRed},
	}, random)
	require.NoError(t, err)
	assert.Equal(t, TypeRoulette, outcome.GameType)
	require.NotNil(t, outcome.Number)
	assert.Equal(t, roulette.ColorOf(*outcome.Number), outcome.Color)

	outcome, err = Generate(coinflipEngineConfig(), &Selection{
		Coinflip: coinflip.SideHeads,
	}, random)
	require.NoError(t, err)
	assert.Equal(t, TypeCoinflip, outcome.GameType)
	assert.True(t, outcome.Side.Valid())
}

// TestComputePayout_Slot 老虎机派彩走中奖线扫描
func TestComputePayout_Slot(t *testing.T) {
	outcome := &Outcome{
		GameType: TypeSlot,
		Grid: slot.Grid{
			{0, 0, 0},
			{1, 1, 2},
			{3, 4, 5},
		},
	}

	result, err := ComputePayout(slotEngineConfig(), outcome, nil, 1000)
	require.NoError(t, err)
	assert.True(t, result.IsWin)
	assert.Equal(t, 1.5, result.Multiplier)
	assert.Equal(t, int64(1500), result.Payout)
	assert.Len(t, result.WinLines, 1)
}

// TestComputePayout_Roulette 轮盘派彩按倍率表结算
func TestComputePayout_Roulette(t *testing.T) {
	number := 17
	outcome := &Outcome{
		GameType: TypeRoulette,
		Number:   &number,
		Color:    roulette.ColorOf(number),
	}
	sel := &Selection{
		Roulette: roulette.Selection{roulette.BetBlack, roulette.BetRange10To18, roulette.BetRange19To27},
	}

	result, err := ComputePayout(rouletteEngineConfig(), outcome, sel, 500)
	require.NoError(t, err)
	assert.True(t, result.IsWin)
	assert.Equal(t, 4.0, result.Multiplier)
	assert.Equal(t, int64(2000), result.Payout)
}

// TestComputePayout_Coinflip 硬币派彩只有0或2倍
func TestComputePayout_Coinflip(t *testing.T) {
	outcome := &Outcome{GameType: TypeCoinflip, Side: coinflip.SideHeads}

	result, err := ComputePayout(coinflipEngineConfig(), outcome, &Selection{Coinflip: coinflip.SideHeads}, 1000)
	require.NoError(t, err)
	assert.True(t, result.IsWin)
	assert.Equal(t, 2.0, result.Multiplier)
	assert.Equal(t, int64(2000), result.Payout)

	result, err = ComputePayout(coinflipEngineConfig(), outcome, &Selection{Coinflip: coinflip.SideTails}, 1000)
	require.NoError(t, err)
	assert.False(t, result.IsWin)
	assert.Equal(t, int64(0), result.Payout)
}

// TestConfigFromModel 从游戏表记录构建引擎配置
func TestConfigFromModel(t *testing.T) {
	g := &models.Game{
		Type:       "slot",
		MinStake:   100,
		MaxStake:   100000,
		Volatility: 4,
		Config: models.JSONMap{
			"symbols":     []interface{}{"A", "B", "C"},
			"multipliers": []interface{}{1.5, 3.0, 10.0},
		},
	}

	cfg, err := ConfigFromModel(g)
	require.NoError(t, err)
	assert.Equal(t, TypeSlot, cfg.GameType)
	assert.Equal(t, 4, cfg.Volatility)
	require.NotNil(t, cfg.Slot)
	assert.Equal(t, []string{"A", "B", "C"}, cfg.Slot.Symbols)
	assert.Equal(t, []float64{1.5, 3, 10}, cfg.Slot.Multipliers)

	// 缺少符号配置的老虎机拒绝加载
	g.Config = models.JSONMap{}
	_, err = ConfigFromModel(g)
	assert.Error(t, err)
}

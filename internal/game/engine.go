package game

import (
	apperrors "github.com/wfunc/wager-engine/internal/errors"
	"github.com/wfunc/wager-engine/internal/game/coinflip"
	"github.com/wfunc/wager-engine/internal/game/rng"
	"github.com/wfunc/wager-engine/internal/game/roulette"
	"github.com/wfunc/wager-engine/internal/game/slot"
)

// ValidateSelection 验证玩家选择与游戏类型匹配且合法
func ValidateSelection(cfg *Config, sel *Selection) error {
	switch cfg.GameType {
	case TypeSlot:
		// 老虎机没有选择
		return nil
	case TypeRoulette:
		if sel == nil {
			return apperrors.New(apperrors.ErrInvalidSelection, "轮盘必须提供下注选项")
		}
		if err := sel.Roulette.Validate(); err != nil {
			return apperrors.Wrap(err, apperrors.ErrInvalidSelection)
		}
		return nil
	case TypeCoinflip:
		if sel == nil || !sel.Coinflip.Valid() {
			return apperrors.New(apperrors.ErrInvalidSelection, "必须指定硬币面")
		}
		return nil
	default:
		return apperrors.Newf(apperrors.ErrInvalidParam, "未知游戏类型: %s", cfg.GameType)
	}
}

// Generate 开奖：纯函数，只依赖配置、选择与随机源，不产生副作用。
// 开奖结果一经产生即为最终结果，调用方不得重算。
func Generate(cfg *Config, sel *Selection, random rng.RandomGenerator) (*Outcome, error) {
	switch cfg.GameType {
	case TypeSlot:
		grid := slot.Generate(cfg.Slot, random)
		return &Outcome{GameType: TypeSlot, Grid: grid}, nil

	case TypeRoulette:
		number := roulette.Generate(cfg.Volatility, random)
		return &Outcome{
			GameType: TypeRoulette,
			Number:   &number,
			Color:    roulette.ColorOf(number),
		}, nil

	case TypeCoinflip:
		side := coinflip.Generate(random)
		return &Outcome{GameType: TypeCoinflip, Side: side}, nil

	default:
		return nil, apperrors.Newf(apperrors.ErrInvalidParam, "未知游戏类型: %s", cfg.GameType)
	}
}

// ComputePayout 根据开奖结果计算派彩，不触碰账务。
func ComputePayout(cfg *Config, outcome *Outcome, sel *Selection, stake int64) (*PayoutResult, error) {
	switch cfg.GameType {
	case TypeSlot:
		winLines := slot.FindWinningLines(outcome.Grid, cfg.Slot)
		payout, multiplier := slot.CalculatePayout(winLines, stake)
		return &PayoutResult{
			Payout:     payout,
			Multiplier: multiplier,
			IsWin:      payout > 0,
			WinLines:   winLines,
		}, nil

	case TypeRoulette:
		if outcome.Number == nil {
			return nil, apperrors.New(apperrors.ErrInvalidParam, "轮盘结果缺少号码")
		}
		result := roulette.CalculatePayout(*outcome.Number, sel.Roulette, stake)
		return &PayoutResult{
			Payout:     result.Payout,
			Multiplier: result.Multiplier,
			IsWin:      result.IsWin,
		}, nil

	case TypeCoinflip:
		payout, isWin := coinflip.CalculatePayout(outcome.Side, sel.Coinflip, stake)
		multiplier := 0.0
		if isWin {
			multiplier = coinflip.WinMultiplier
		}
		return &PayoutResult{
			Payout:     payout,
			Multiplier: multiplier,
			IsWin:      isWin,
		}, nil

	default:
		return nil, apperrors.Newf(apperrors.ErrInvalidParam, "未知游戏类型: %s", cfg.GameType)
	}
}

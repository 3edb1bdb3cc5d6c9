package coinflip

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/wfunc/wager-engine/internal/game/rng"
)

// TestParseSide 测试硬币面解析
func TestParseSide(t *testing.T) {
	side, err := ParseSide("heads")
	assert.NoError(t, err)
	assert.Equal(t, SideHeads, side)

	side, err = ParseSide("tails")
	assert.NoError(t, err)
	assert.Equal(t, SideTails, side)

	_, err = ParseSide("edge")
	assert.Error(t, err)

	_, err = ParseSide("")
	assert.Error(t, err)
}

// TestGenerate_BothSides 两面都会开出且大样本下接近对半
func TestGenerate_BothSides(t *testing.T) {
	random := rng.NewSeededRandomGenerator(1)

	const draws = 100000
	heads := 0
	for i := 0; i < draws; i++ {
		if Generate(random) == SideHeads {
			heads++
		}
	}

	freq := float64(heads) / draws
	assert.InDelta(t, 0.5, freq, 0.01)
}

// TestCalculatePayout 派彩只有0或2倍两种结果
func TestCalculatePayout(t *testing.T) {
	payout, isWin := CalculatePayout(SideHeads, SideHeads, 1000)
	assert.True(t, isWin)
	assert.Equal(t, int64(2000), payout)

	payout, isWin = CalculatePayout(SideHeads, SideTails, 1000)
	assert.False(t, isWin)
	assert.Equal(t, int64(0), payout)

	payout, isWin = CalculatePayout(SideTails, SideTails, 333)
	assert.True(t, isWin)
	assert.Equal(t, int64(666), payout)
}

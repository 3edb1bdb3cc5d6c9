package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// TestStateMachine_SettlePath pending到settled的正常路径
func TestStateMachine_SettlePath(t *testing.T) {
	sm := NewBetStateMachine("s-1", StatePending, zap.NewNop())

	assert.Equal(t, StatePending, sm.State())
	assert.False(t, sm.IsTerminal())
	assert.True(t, sm.CanTrigger(EventSettle))

	assert.NoError(t, sm.Trigger(EventSettle))
	assert.Equal(t, StateSettled, sm.State())
	assert.True(t, sm.IsTerminal())
	assert.NotNil(t, sm.SettledAt())
}

// TestStateMachine_FailPath pending到failed的失败路径
func TestStateMachine_FailPath(t *testing.T) {
	sm := NewBetStateMachine("s-2", StatePending, zap.NewNop())

	assert.NoError(t, sm.Trigger(EventFail))
	assert.Equal(t, StateFailed, sm.State())
	assert.True(t, sm.IsTerminal())
}

// TestStateMachine_TerminalRejectsEvents 终态拒绝一切事件
func TestStateMachine_TerminalRejectsEvents(t *testing.T) {
	sm := NewBetStateMachine("s-3", StatePending, zap.NewNop())
	assert.NoError(t, sm.Trigger(EventSettle))

	assert.Error(t, sm.Trigger(EventSettle))
	assert.Error(t, sm.Trigger(EventFail))
	assert.False(t, sm.CanTrigger(EventSettle))
	assert.Equal(t, StateSettled, sm.State())

	sm = NewBetStateMachine("s-4", StatePending, zap.NewNop())
	assert.NoError(t, sm.Trigger(EventFail))
	assert.Error(t, sm.Trigger(EventSettle))
}

// TestStateMachine_OnTransition 状态变更回调
func TestStateMachine_OnTransition(t *testing.T) {
	sm := NewBetStateMachine("s-5", StatePending, zap.NewNop())

	var gotFrom, gotTo BetState
	sm.OnTransition(func(from, to BetState) {
		gotFrom, gotTo = from, to
	})

	assert.NoError(t, sm.Trigger(EventSettle))
	assert.Equal(t, StatePending, gotFrom)
	assert.Equal(t, StateSettled, gotTo)
}

package game

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// BetState 投注会话状态
type BetState string

const (
	StatePending BetState = "pending" // 已扣注，等待结算
	StateSettled BetState = "settled" // 已结算（终态）
	StateFailed  BetState = "failed"  // 结算失败（终态）
)

// 状态机事件
const (
	EventSettle = "settle"
	EventFail   = "fail"
)

// stateTransition 状态转换定义
type stateTransition struct {
	From BetState
	To   BetState
}

// BetStateMachine 投注会话状态机。
//
// pending 只能迁移一次，到 settled 或 failed，终态不再接受任何事件。
// 这是"开奖只算一次"的内存侧防线，持久层的条件更新是最终防线。
type BetStateMachine struct {
	mu          sync.Mutex
	sessionID   string
	current     BetState
	settledAt   *time.Time
	logger      *zap.Logger
	transitions map[string]stateTransition

	onTransition func(from, to BetState)
}

// NewBetStateMachine 创建投注状态机
func NewBetStateMachine(sessionID string, initial BetState, logger *zap.Logger) *BetStateMachine {
	sm := &BetStateMachine{
		sessionID:   sessionID,
		current:     initial,
		logger:      logger,
		transitions: make(map[string]stateTransition),
	}

	sm.addTransition(StatePending, EventSettle, StateSettled)
	sm.addTransition(StatePending, EventFail, StateFailed)

	return sm
}

// addTransition 添加状态转换
func (sm *BetStateMachine) addTransition(from BetState, event string, to BetState) {
	sm.transitions[transitionKey(from, event)] = stateTransition{From: from, To: to}
}

// transitionKey 生成转换键
func transitionKey(state BetState, event string) string {
	return fmt.Sprintf("%s:%s", state, event)
}

// Trigger 触发事件
func (sm *BetStateMachine) Trigger(event string) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	transition, ok := sm.transitions[transitionKey(sm.current, event)]
	if !ok {
		return fmt.Errorf("无效的状态转换: 状态=%s, 事件=%s", sm.current, event)
	}

	oldState := sm.current
	sm.current = transition.To
	if transition.To == StateSettled || transition.To == StateFailed {
		now := time.Now()
		sm.settledAt = &now
	}

	if sm.onTransition != nil {
		sm.onTransition(oldState, sm.current)
	}

	sm.logger.Info("投注状态转换",
		zap.String("session_id", sm.sessionID),
		zap.String("from", string(oldState)),
		zap.String("to", string(sm.current)),
		zap.String("event", event))

	return nil
}

// State 获取当前状态
func (sm *BetStateMachine) State() BetState {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.current
}

// IsTerminal 检查是否到达终态
func (sm *BetStateMachine) IsTerminal() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.current == StateSettled || sm.current == StateFailed
}

// CanTrigger 检查事件在当前状态下是否可触发
func (sm *BetStateMachine) CanTrigger(event string) bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	_, ok := sm.transitions[transitionKey(sm.current, event)]
	return ok
}

// OnTransition 设置状态变更回调
func (sm *BetStateMachine) OnTransition(fn func(from, to BetState)) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.onTransition = fn
}

// SettledAt 返回到达终态的时间
func (sm *BetStateMachine) SettledAt() *time.Time {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.settledAt
}

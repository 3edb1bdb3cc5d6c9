package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	apperrors "github.com/wfunc/wager-engine/internal/errors"
	"github.com/wfunc/wager-engine/internal/game"
	"github.com/wfunc/wager-engine/internal/game/rng"
	"github.com/wfunc/wager-engine/internal/logger"
	"github.com/wfunc/wager-engine/internal/models"
	"github.com/wfunc/wager-engine/internal/repository"
	"go.uber.org/zap"
)

// betService 投注生命周期服务实现。
//
// 下注路径刻意不包在单个数据库事务里：扣款一旦落库即有效，
// 之后建会话失败不自动回退，由对账日志兜底。资金只进不退的
// 不对称性是账务安全的底线。
type betService struct {
	walletRepo repository.WalletRepository
	betRepo    repository.BetSessionRepository
	gameRepo   repository.GameRepository
	txRepo     repository.TransactionRepository
	random     rng.RandomGenerator
	emitter    EventEmitter
	logger     *zap.Logger
}

// NewBetService 创建投注服务
func NewBetService(
	walletRepo repository.WalletRepository,
	betRepo repository.BetSessionRepository,
	gameRepo repository.GameRepository,
	txRepo repository.TransactionRepository,
	random rng.RandomGenerator,
	emitter EventEmitter,
	log *zap.Logger,
) BetService {
	return &betService{
		walletRepo: walletRepo,
		betRepo:    betRepo,
		gameRepo:   gameRepo,
		txRepo:     txRepo,
		random:     random,
		emitter:    emitter,
		logger:     log,
	}
}

// PlaceBet 下注。验证通过后先原子扣款，再建pending会话。
func (s *betService) PlaceBet(ctx context.Context, req *PlaceBetRequest) (*models.BetSession, error) {
	// 加载游戏配置
	gameModel, err := s.gameRepo.FindByID(ctx, req.GameID)
	if err != nil {
		return nil, err
	}
	if !gameModel.IsActive() {
		return nil, apperrors.New(apperrors.ErrGameDisabled)
	}

	cfg, err := game.ConfigFromModel(gameModel)
	if err != nil {
		return nil, err
	}

	// 扣款前完成全部验证，验证失败零副作用
	if err := cfg.ValidateStake(req.Stake); err != nil {
		return nil, err
	}
	if err := game.ValidateSelection(cfg, req.Selection); err != nil {
		return nil, err
	}

	wallet, err := s.walletRepo.FindByUserID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	sessionID := uuid.New().String()

	// 原子扣款：余额检查与扣减在同一条更新里
	if err := s.walletRepo.DeductBalance(ctx, req.UserID, req.Stake); err != nil {
		return nil, err
	}

	logger.LogBetEvent("bet_debited", sessionID, req.UserID, map[string]interface{}{
		"game_id": req.GameID,
		"stake":   req.Stake,
	})

	// 记账流水。流水失败不回退扣款，留对账日志
	betTx := &models.Transaction{
		UserID:        req.UserID,
		OrderNo:       newOrderNo("BET"),
		Type:          models.TransactionTypeBet,
		Amount:        -req.Stake,
		BeforeBalance: wallet.Balance,
		AfterBalance:  wallet.Balance - req.Stake,
		Status:        "success",
		RefID:         sessionID,
		RefType:       "bet_session",
		Description:   fmt.Sprintf("%s下注", gameModel.Name),
	}
	if err := s.txRepo.Create(ctx, betTx); err != nil {
		logger.LogReconciliation("bet_journal_failed", sessionID, req.UserID, req.Stake, err)
	}

	if err := s.walletRepo.UpdateBetStats(ctx, req.UserID, req.Stake, 0); err != nil {
		s.logger.Warn("更新投注统计失败",
			zap.String("session_id", sessionID),
			zap.Error(err))
	}

	selectionJSON, err := toJSONMap(req.Selection)
	if err != nil {
		logger.LogReconciliation("selection_encode_failed", sessionID, req.UserID, req.Stake, err)
		return nil, apperrors.Wrap(err, apperrors.ErrSessionCreate)
	}

	session := &models.BetSession{
		SessionID:   sessionID,
		UserID:      req.UserID,
		GameID:      req.GameID,
		GameType:    gameModel.Type,
		StakeAmount: req.Stake,
		Selection:   selectionJSON,
		Status:      models.BetStatusPending,
		PlacedAt:    time.Now(),
	}

	// 扣款已持久，会话创建失败不自动退款：资金去向必须可审计，
	// 对账日志是唯一的恢复入口
	if err := s.betRepo.Create(ctx, session); err != nil {
		logger.LogReconciliation("session_create_failed", sessionID, req.UserID, req.Stake, err)
		return nil, apperrors.Wrap(err, apperrors.ErrSessionCreate)
	}

	logger.LogBetEvent("bet_placed", sessionID, req.UserID, map[string]interface{}{
		"game_id":   req.GameID,
		"game_type": gameModel.Type,
		"stake":     req.Stake,
	})

	return session, nil
}

// SettleBet 结算。开奖只算一次：结果先随守卫更新落库成终态，
// 之后即使入账失败也绝不重新开奖。
func (s *betService) SettleBet(ctx context.Context, sessionID string) (*BetResult, error) {
	session, err := s.betRepo.FindBySessionID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.IsTerminal() {
		return nil, apperrors.New(apperrors.ErrAlreadySettled)
	}

	gameModel, err := s.gameRepo.FindByID(ctx, session.GameID)
	if err != nil {
		s.failSession(ctx, session)
		return nil, err
	}
	cfg, err := game.ConfigFromModel(gameModel)
	if err != nil {
		s.failSession(ctx, session)
		return nil, err
	}

	var sel game.Selection
	if err := fromJSONMap(session.Selection, &sel); err != nil {
		s.failSession(ctx, session)
		return nil, apperrors.Wrap(err, apperrors.ErrSettlementFailed)
	}

	// 开奖
	outcome, err := game.Generate(cfg, &sel, s.random)
	if err != nil {
		s.failSession(ctx, session)
		return nil, apperrors.Wrap(err, apperrors.ErrSettlementFailed)
	}
	payoutResult, err := game.ComputePayout(cfg, outcome, &sel, session.StakeAmount)
	if err != nil {
		s.failSession(ctx, session)
		return nil, apperrors.Wrap(err, apperrors.ErrSettlementFailed)
	}

	outcomeJSON, err := toJSONMap(outcome)
	if err != nil {
		s.failSession(ctx, session)
		return nil, apperrors.Wrap(err, apperrors.ErrSettlementFailed)
	}

	sm := game.NewBetStateMachine(sessionID, game.StatePending, s.logger)

	// 守卫更新落终态：并发结算只有一方命中，输掉的一方在这里
	// 拿到已结算错误，不会入账
	if err := s.betRepo.MarkSettled(ctx, sessionID, outcomeJSON,
		payoutResult.Payout, payoutResult.Multiplier, payoutResult.IsWin); err != nil {
		return nil, err
	}
	_ = sm.Trigger(game.EventSettle)

	logger.LogBetEvent("bet_settled", sessionID, session.UserID, map[string]interface{}{
		"outcome":    outcome.Describe(),
		"payout":     payoutResult.Payout,
		"multiplier": payoutResult.Multiplier,
		"is_win":     payoutResult.IsWin,
	})

	// 派彩入账。结算已是终态，入账失败只置挂起标记，
	// 由对账任务补账，本次调用仍按成功返回
	s.creditPayout(ctx, session, gameModel, payoutResult)

	var newBalance int64
	if wallet, err := s.walletRepo.FindByUserID(ctx, session.UserID); err == nil {
		newBalance = wallet.Balance
	}

	now := time.Now()
	result := &BetResult{
		SessionID:    sessionID,
		UserID:       session.UserID,
		GameID:       session.GameID,
		GameType:     session.GameType,
		StakeAmount:  session.StakeAmount,
		Status:       models.BetStatusSettled,
		Outcome:      outcome,
		PayoutAmount: payoutResult.Payout,
		Multiplier:   payoutResult.Multiplier,
		IsWin:        payoutResult.IsWin,
		NewBalance:   newBalance,
		PlacedAt:     session.PlacedAt,
		SettledAt:    &now,
	}

	if payoutResult.Payout > 0 && s.emitter != nil {
		s.emitter.EmitSettlement(session.UserID, session.GameID, sessionID, payoutResult.Payout)
	}

	return result, nil
}

// creditPayout 派彩入账与流水记账
func (s *betService) creditPayout(ctx context.Context, session *models.BetSession, gameModel *models.Game, result *game.PayoutResult) {
	if err := s.walletRepo.AddBalance(ctx, session.UserID, result.Payout); err != nil {
		if markErr := s.betRepo.SetCreditPending(ctx, session.SessionID, true); markErr != nil {
			s.logger.Error("标记入账挂起失败",
				zap.String("session_id", session.SessionID),
				zap.Error(markErr))
		}
		logger.LogReconciliation("credit_failed", session.SessionID, session.UserID, result.Payout, err)
		return
	}

	if result.Payout > 0 {
		wallet, err := s.walletRepo.FindByUserID(ctx, session.UserID)
		afterBalance := int64(0)
		if err == nil {
			afterBalance = wallet.Balance
		}
		winTx := &models.Transaction{
			UserID:        session.UserID,
			OrderNo:       newOrderNo("WIN"),
			Type:          models.TransactionTypeWin,
			Amount:        result.Payout,
			BeforeBalance: afterBalance - result.Payout,
			AfterBalance:  afterBalance,
			Status:        "success",
			RefID:         session.SessionID,
			RefType:       "bet_session",
			Description:   fmt.Sprintf("%s派彩", gameModel.Name),
		}
		if err := s.txRepo.Create(ctx, winTx); err != nil {
			logger.LogReconciliation("win_journal_failed", session.SessionID, session.UserID, result.Payout, err)
		}
	}

	if err := s.walletRepo.UpdateBetStats(ctx, session.UserID, 0, result.Payout); err != nil {
		s.logger.Warn("更新派彩统计失败",
			zap.String("session_id", session.SessionID),
			zap.Error(err))
	}
}

// failSession 结算路径上开奖前出错时落失败终态。
// 已扣的注金不退，走对账。
func (s *betService) failSession(ctx context.Context, session *models.BetSession) {
	if err := s.betRepo.MarkFailed(ctx, session.SessionID); err != nil {
		s.logger.Error("标记投注失败态出错",
			zap.String("session_id", session.SessionID),
			zap.Error(err))
		return
	}
	logger.LogReconciliation("bet_failed", session.SessionID, session.UserID, session.StakeAmount, nil)
}

// GetBet 查询单个投注会话
func (s *betService) GetBet(ctx context.Context, sessionID string) (*models.BetSession, error) {
	return s.betRepo.FindBySessionID(ctx, sessionID)
}

// ListBets 分页查询用户投注历史
func (s *betService) ListBets(ctx context.Context, userID uint, page, pageSize int) ([]*models.BetSession, int64, error) {
	return s.betRepo.FindByUserID(ctx, userID, repository.NewPagination(page, pageSize))
}

// SweepPending 扫描超时未结算的会话并逐条记对账日志
func (s *betService) SweepPending(ctx context.Context, olderThan time.Duration) ([]*models.BetSession, error) {
	cutoff := time.Now().Add(-olderThan)
	sessions, err := s.betRepo.FindPendingBefore(ctx, cutoff)
	if err != nil {
		return nil, err
	}

	for _, session := range sessions {
		logger.LogReconciliation("pending_timeout", session.SessionID, session.UserID, session.StakeAmount, nil)
	}

	if len(sessions) > 0 {
		s.logger.Warn("发现超时未结算的投注会话",
			zap.Int("count", len(sessions)),
			zap.Time("cutoff", cutoff))
	}
	return sessions, nil
}

// newOrderNo 生成流水订单号
func newOrderNo(prefix string) string {
	return fmt.Sprintf("%s%s%s", prefix,
		time.Now().Format("20060102150405"),
		uuid.New().String()[:8])
}

// toJSONMap 序列化为json字段
func toJSONMap(v interface{}) (models.JSONMap, error) {
	if v == nil {
		return models.JSONMap{}, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var m models.JSONMap
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// fromJSONMap 从json字段反序列化
func fromJSONMap(m models.JSONMap, v interface{}) error {
	if m == nil {
		return nil
	}
	data, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

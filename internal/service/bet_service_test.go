package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	apperrors "github.com/wfunc/wager-engine/internal/errors"
	"github.com/wfunc/wager-engine/internal/game"
	"github.com/wfunc/wager-engine/internal/game/coinflip"
	"github.com/wfunc/wager-engine/internal/models"
	"github.com/wfunc/wager-engine/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// scriptedRandom 按脚本返回的随机源，让开奖结果可控
type scriptedRandom struct {
	next    float64
	nextInt int
}

func (r *scriptedRandom) Next() float64 { return r.next }
func (r *scriptedRandom) NextInt(min, max int) int { return r.nextInt }

// capturingEmitter 记录推送的结算事件
type capturingEmitter struct {
	mu     sync.Mutex
	events []string
}

func (e *capturingEmitter) EmitSettlement(accountID, gameID uint, sessionID string, payoutAmount int64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, sessionID)
}

func (e *capturingEmitter) count() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.events)
}

// BetServiceTestSuite 投注服务测试套件
type BetServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	random  *scriptedRandom
	emitter *capturingEmitter
	svc     BetService
	wallets repository.WalletRepository
	bets    repository.BetSessionRepository
	game    *models.Game
	ctx     context.Context
}

// SetupTest 每个测试前执行
func (suite *BetServiceTestSuite) SetupTest() {
	suite.db = repository.SetupTestDB()
	suite.ctx = context.Background()
	suite.random = &scriptedRandom{}
	suite.emitter = &capturingEmitter{}

	suite.wallets = repository.NewWalletRepository(suite.db)
	suite.bets = repository.NewBetSessionRepository(suite.db)
	gameRepo := repository.NewGameRepository(suite.db)
	txRepo := repository.NewTransactionRepository(suite.db)

	suite.svc = NewBetService(
		suite.wallets,
		suite.bets,
		gameRepo,
		txRepo,
		suite.random,
		suite.emitter,
		zap.NewNop(),
	)

	// 默认场景：抛硬币游戏与一个有1万分余额的钱包
	suite.game = &models.Game{
		Name:       "抛硬币",
		Type:       "coinflip",
		Status:     models.GameStatusActive,
		MinStake:   100,
		MaxStake:   100000,
		Volatility: 3,
	}
	suite.NoError(suite.db.Create(suite.game).Error)
	suite.NoError(suite.wallets.Create(suite.ctx, &models.Wallet{UserID: 1, Balance: 10000}))
}

// TearDownTest 每个测试后执行
func (suite *BetServiceTestSuite) TearDownTest() {
	repository.CleanupTestDB(suite.db)
}

// placeBet 下注辅助方法
func (suite *BetServiceTestSuite) placeBet(stake int64, side coinflip.Side) *models.BetSession {
	session, err := suite.svc.PlaceBet(suite.ctx, &PlaceBetRequest{
		UserID:    1,
		GameID:    suite.game.ID,
		Stake:     stake,
		Selection: &game.Selection{Coinflip: side},
	})
	suite.Require().NoError(err)
	return session
}

// TestPlaceBet 测试正常下注
func (suite *BetServiceTestSuite) TestPlaceBet() {
	session := suite.placeBet(1000, coinflip.SideHeads)

	suite.NotEmpty(session.SessionID)
	suite.Equal(models.BetStatusPending, session.Status)
	suite.Equal(int64(1000), session.StakeAmount)

	// 注额已扣
	wallet, err := suite.wallets.FindByUserID(suite.ctx, 1)
	suite.NoError(err)
	suite.Equal(int64(9000), wallet.Balance)
	suite.Equal(int64(1000), wallet.TotalBet)
}

// TestPlaceBet_InsufficientFunds 测试余额不足
func (suite *BetServiceTestSuite) TestPlaceBet_InsufficientFunds() {
	_, err := suite.svc.PlaceBet(suite.ctx, &PlaceBetRequest{
		UserID:    1,
		GameID:    suite.game.ID,
		Stake:     20000,
		Selection: &game.Selection{Coinflip: coinflip.SideHeads},
	})
	suite.Error(err)
	suite.Equal(apperrors.ErrInsufficientFunds, apperrors.GetCode(err))

	// 失败零副作用
	wallet, _ := suite.wallets.FindByUserID(suite.ctx, 1)
	suite.Equal(int64(10000), wallet.Balance)
}

// TestPlaceBet_StakeOutOfRange 测试注额越界
func (suite *BetServiceTestSuite) TestPlaceBet_StakeOutOfRange() {
	_, err := suite.svc.PlaceBet(suite.ctx, &PlaceBetRequest{
		UserID:    1,
		GameID:    suite.game.ID,
		Stake:     50,
		Selection: &game.Selection{Coinflip: coinflip.SideHeads},
	})
	suite.Error(err)
	suite.Equal(apperrors.ErrInvalidStake, apperrors.GetCode(err))
}

// TestPlaceBet_InvalidSelection 测试无效选择
func (suite *BetServiceTestSuite) TestPlaceBet_InvalidSelection() {
	_, err := suite.svc.PlaceBet(suite.ctx, &PlaceBetRequest{
		UserID: 1,
		GameID: suite.game.ID,
		Stake:  1000,
	})
	suite.Error(err)
	suite.Equal(apperrors.ErrInvalidSelection, apperrors.GetCode(err))

	// 验证在扣款之前，余额不动
	wallet, _ := suite.wallets.FindByUserID(suite.ctx, 1)
	suite.Equal(int64(10000), wallet.Balance)
}

// TestPlaceBet_GameDisabled 测试停用游戏
func (suite *BetServiceTestSuite) TestPlaceBet_GameDisabled() {
	suite.NoError(suite.db.Model(suite.game).Update("status", models.GameStatusDisabled).Error)

	_, err := suite.svc.PlaceBet(suite.ctx, &PlaceBetRequest{
		UserID:    1,
		GameID:    suite.game.ID,
		Stake:     1000,
		Selection: &game.Selection{Coinflip: coinflip.SideHeads},
	})
	suite.Error(err)
	suite.Equal(apperrors.ErrGameDisabled, apperrors.GetCode(err))
}

// TestSettleBet_Win 测试赢局结算
func (suite *BetServiceTestSuite) TestSettleBet_Win() {
	session := suite.placeBet(1000, coinflip.SideHeads)

	// 脚本开出heads
	suite.random.nextInt = 0

	result, err := suite.svc.SettleBet(suite.ctx, session.SessionID)
	suite.NoError(err)
	suite.True(result.IsWin)
	suite.Equal(int64(2000), result.PayoutAmount)
	suite.Equal(2.0, result.Multiplier)
	suite.Equal(models.BetStatusSettled, result.Status)
	suite.Equal(int64(11000), result.NewBalance)

	// 派彩已入账：10000 - 1000 + 2000
	wallet, _ := suite.wallets.FindByUserID(suite.ctx, 1)
	suite.Equal(int64(11000), wallet.Balance)
	suite.Equal(int64(2000), wallet.TotalWin)

	// 正派彩推送了结算事件
	suite.Equal(1, suite.emitter.count())
}

// TestSettleBet_Loss 测试输局结算
func (suite *BetServiceTestSuite) TestSettleBet_Loss() {
	session := suite.placeBet(1000, coinflip.SideHeads)

	// 脚本开出tails
	suite.random.nextInt = 1

	result, err := suite.svc.SettleBet(suite.ctx, session.SessionID)
	suite.NoError(err)
	suite.False(result.IsWin)
	suite.Equal(int64(0), result.PayoutAmount)

	// 输局不返还注额
	wallet, _ := suite.wallets.FindByUserID(suite.ctx, 1)
	suite.Equal(int64(9000), wallet.Balance)

	// 零派彩不推送事件
	suite.Equal(0, suite.emitter.count())
}

// TestSettleBet_Twice 测试重复结算被拒绝且不重复入账
func (suite *BetServiceTestSuite) TestSettleBet_Twice() {
	session := suite.placeBet(1000, coinflip.SideHeads)
	suite.random.nextInt = 0

	_, err := suite.svc.SettleBet(suite.ctx, session.SessionID)
	suite.NoError(err)

	_, err = suite.svc.SettleBet(suite.ctx, session.SessionID)
	suite.Error(err)
	suite.Equal(apperrors.ErrAlreadySettled, apperrors.GetCode(err))

	// 余额只入账一次
	wallet, _ := suite.wallets.FindByUserID(suite.ctx, 1)
	suite.Equal(int64(11000), wallet.Balance)
}

// TestSettleBet_NotFound 测试结算不存在的会话
func (suite *BetServiceTestSuite) TestSettleBet_NotFound() {
	_, err := suite.svc.SettleBet(suite.ctx, "missing")
	suite.Error(err)
	suite.Equal(apperrors.ErrBetNotFound, apperrors.GetCode(err))
}

// TestSettleBet_OutcomePersisted 测试开奖结果持久化
func (suite *BetServiceTestSuite) TestSettleBet_OutcomePersisted() {
	session := suite.placeBet(1000, coinflip.SideTails)
	suite.random.nextInt = 1

	result, err := suite.svc.SettleBet(suite.ctx, session.SessionID)
	suite.NoError(err)
	suite.Equal(coinflip.SideTails, result.Outcome.Side)

	stored, err := suite.bets.FindBySessionID(suite.ctx, session.SessionID)
	suite.NoError(err)
	suite.Equal("tails", stored.Outcome["side"])
	suite.Equal(int64(2000), stored.PayoutAmount)
	suite.NotNil(stored.SettledAt)
}

// TestSweepPending 测试超时扫描
func (suite *BetServiceTestSuite) TestSweepPending() {
	session := suite.placeBet(1000, coinflip.SideHeads)

	// 回拨下注时间模拟超时
	suite.NoError(suite.db.Model(&models.BetSession{}).
		Where("session_id = ?", session.SessionID).
		Update("placed_at", time.Now().Add(-2*time.Hour)).Error)

	stale, err := suite.svc.SweepPending(suite.ctx, time.Hour)
	suite.NoError(err)
	suite.Len(stale, 1)
	suite.Equal(session.SessionID, stale[0].SessionID)

	// 已结算的不再出现
	suite.random.nextInt = 0
	_, err = suite.svc.SettleBet(suite.ctx, session.SessionID)
	suite.NoError(err)

	stale, err = suite.svc.SweepPending(suite.ctx, time.Hour)
	suite.NoError(err)
	suite.Len(stale, 0)
}

// TestListBets 测试投注历史查询
func (suite *BetServiceTestSuite) TestListBets() {
	for i := 0; i < 3; i++ {
		suite.placeBet(1000, coinflip.SideHeads)
	}

	sessions, total, err := suite.svc.ListBets(suite.ctx, 1, 1, 10)
	suite.NoError(err)
	suite.Equal(int64(3), total)
	suite.Len(sessions, 3)
}

// TestBetServiceTestSuite 运行测试套件
func TestBetServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BetServiceTestSuite))
}

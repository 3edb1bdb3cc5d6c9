package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	apperrors "github.com/wfunc/wager-engine/internal/errors"
	"github.com/wfunc/wager-engine/internal/models"
	"gorm.io/gorm"
)

// BetSessionRepositoryTestSuite 投注会话仓储测试套件
type BetSessionRepositoryTestSuite struct {
	suite.Suite
	db   *gorm.DB
	repo BetSessionRepository
	ctx  context.Context
}

// SetupTest 每个测试前执行
func (suite *BetSessionRepositoryTestSuite) SetupTest() {
	suite.db = SetupTestDB()
	suite.repo = NewBetSessionRepository(suite.db)
	suite.ctx = context.Background()
}

// TearDownTest 每个测试后执行
func (suite *BetSessionRepositoryTestSuite) TearDownTest() {
	CleanupTestDB(suite.db)
}

// TestCreateAndFind 测试创建与查找
func (suite *BetSessionRepositoryTestSuite) TestCreateAndFind() {
	session := CreateTestBetSession("s-001", 1, 1, 1000)

	err := suite.repo.Create(suite.ctx, session)
	suite.NoError(err)

	found, err := suite.repo.FindBySessionID(suite.ctx, "s-001")
	suite.NoError(err)
	suite.Equal(uint(1), found.UserID)
	suite.Equal(models.BetStatusPending, found.Status)
	suite.Equal(int64(1000), found.StakeAmount)
}

// TestFindBySessionID_NotFound 测试查找不存在的会话
func (suite *BetSessionRepositoryTestSuite) TestFindBySessionID_NotFound() {
	_, err := suite.repo.FindBySessionID(suite.ctx, "missing")
	suite.Error(err)
	suite.Equal(apperrors.ErrBetNotFound, apperrors.GetCode(err))
}

// TestMarkSettled 测试结算落库
func (suite *BetSessionRepositoryTestSuite) TestMarkSettled() {
	session := CreateTestBetSession("s-002", 1, 1, 1000)
	suite.NoError(suite.repo.Create(suite.ctx, session))

	outcome := models.JSONMap{"side": "heads"}
	err := suite.repo.MarkSettled(suite.ctx, "s-002", outcome, 2000, 2.0, true)
	suite.NoError(err)

	found, err := suite.repo.FindBySessionID(suite.ctx, "s-002")
	suite.NoError(err)
	suite.Equal(models.BetStatusSettled, found.Status)
	suite.Equal(int64(2000), found.PayoutAmount)
	suite.Equal(2.0, found.Multiplier)
	suite.True(found.IsWin)
	suite.NotNil(found.SettledAt)
}

// TestMarkSettled_Twice 测试重复结算被拒绝
func (suite *BetSessionRepositoryTestSuite) TestMarkSettled_Twice() {
	session := CreateTestBetSession("s-003", 1, 1, 1000)
	suite.NoError(suite.repo.Create(suite.ctx, session))

	outcome := models.JSONMap{"side": "tails"}
	suite.NoError(suite.repo.MarkSettled(suite.ctx, "s-003", outcome, 0, 0, false))

	err := suite.repo.MarkSettled(suite.ctx, "s-003", outcome, 2000, 2.0, true)
	suite.Error(err)
	suite.Equal(apperrors.ErrAlreadySettled, apperrors.GetCode(err))

	// 第一次结算的结果不会被覆盖
	found, err := suite.repo.FindBySessionID(suite.ctx, "s-003")
	suite.NoError(err)
	suite.Equal(int64(0), found.PayoutAmount)
	suite.False(found.IsWin)
}

// TestMarkFailed 测试失败终态
func (suite *BetSessionRepositoryTestSuite) TestMarkFailed() {
	session := CreateTestBetSession("s-004", 1, 1, 1000)
	suite.NoError(suite.repo.Create(suite.ctx, session))

	err := suite.repo.MarkFailed(suite.ctx, "s-004")
	suite.NoError(err)

	found, err := suite.repo.FindBySessionID(suite.ctx, "s-004")
	suite.NoError(err)
	suite.Equal(models.BetStatusFailed, found.Status)
	suite.True(found.IsTerminal())
}

// TestMarkFailed_AfterSettled 测试终态后不可再转失败
func (suite *BetSessionRepositoryTestSuite) TestMarkFailed_AfterSettled() {
	session := CreateTestBetSession("s-005", 1, 1, 1000)
	suite.NoError(suite.repo.Create(suite.ctx, session))
	suite.NoError(suite.repo.MarkSettled(suite.ctx, "s-005", models.JSONMap{}, 0, 0, false))

	err := suite.repo.MarkFailed(suite.ctx, "s-005")
	suite.Error(err)
	suite.Equal(apperrors.ErrBetTerminal, apperrors.GetCode(err))
}

// TestSetCreditPending 测试入账挂起标记
func (suite *BetSessionRepositoryTestSuite) TestSetCreditPending() {
	session := CreateTestBetSession("s-006", 1, 1, 1000)
	suite.NoError(suite.repo.Create(suite.ctx, session))
	suite.NoError(suite.repo.MarkSettled(suite.ctx, "s-006", models.JSONMap{}, 2000, 2.0, true))

	err := suite.repo.SetCreditPending(suite.ctx, "s-006", true)
	suite.NoError(err)

	found, err := suite.repo.FindBySessionID(suite.ctx, "s-006")
	suite.NoError(err)
	suite.True(found.CreditPending)
}

// TestFindPendingBefore 测试对账扫描
func (suite *BetSessionRepositoryTestSuite) TestFindPendingBefore() {
	old := CreateTestBetSession("s-old", 1, 1, 1000)
	old.PlacedAt = time.Now().Add(-time.Hour)
	suite.NoError(suite.repo.Create(suite.ctx, old))

	recent := CreateTestBetSession("s-recent", 1, 1, 1000)
	suite.NoError(suite.repo.Create(suite.ctx, recent))

	settled := CreateTestBetSession("s-settled", 1, 1, 1000)
	settled.PlacedAt = time.Now().Add(-time.Hour)
	suite.NoError(suite.repo.Create(suite.ctx, settled))
	suite.NoError(suite.repo.MarkSettled(suite.ctx, "s-settled", models.JSONMap{}, 0, 0, false))

	sessions, err := suite.repo.FindPendingBefore(suite.ctx, time.Now().Add(-10*time.Minute))
	suite.NoError(err)
	suite.Len(sessions, 1)
	suite.Equal("s-old", sessions[0].SessionID)
}

// TestFindByUserID 测试分页查询投注历史
func (suite *BetSessionRepositoryTestSuite) TestFindByUserID() {
	for i := 0; i < 5; i++ {
		session := CreateTestBetSession("s-page-"+string(rune('a'+i)), 1, 1, 1000)
		session.PlacedAt = time.Now().Add(time.Duration(i) * time.Second)
		suite.NoError(suite.repo.Create(suite.ctx, session))
	}
	other := CreateTestBetSession("s-other", 2, 1, 1000)
	suite.NoError(suite.repo.Create(suite.ctx, other))

	sessions, total, err := suite.repo.FindByUserID(suite.ctx, 1, NewPagination(1, 3))
	suite.NoError(err)
	suite.Equal(int64(5), total)
	suite.Len(sessions, 3)
	// 按下注时间倒序
	suite.Equal("s-page-e", sessions[0].SessionID)
}

// TestBetSessionRepositoryTestSuite 运行测试套件
func TestBetSessionRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(BetSessionRepositoryTestSuite))
}

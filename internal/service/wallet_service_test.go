package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	apperrors "github.com/wfunc/wager-engine/internal/errors"
	"github.com/wfunc/wager-engine/internal/models"
	"github.com/wfunc/wager-engine/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// WalletServiceTestSuite 钱包服务测试套件
type WalletServiceTestSuite struct {
	suite.Suite
	db     *gorm.DB
	repo   repository.WalletRepository
	txRepo repository.TransactionRepository
	svc    WalletService
	ctx    context.Context
}

// SetupTest 每个测试前执行
func (suite *WalletServiceTestSuite) SetupTest() {
	suite.db = repository.SetupTestDB()
	suite.ctx = context.Background()
	suite.repo = repository.NewWalletRepository(suite.db)
	suite.txRepo = repository.NewTransactionRepository(suite.db)
	suite.svc = NewWalletService(suite.repo, suite.txRepo, 100000, zap.NewNop())
}

// TearDownTest 每个测试后执行
func (suite *WalletServiceTestSuite) TearDownTest() {
	repository.CleanupTestDB(suite.db)
}

// TestGetOrCreateWallet 首次访问创建钱包并发放初始额度
func (suite *WalletServiceTestSuite) TestGetOrCreateWallet() {
	wallet, err := suite.svc.GetOrCreateWallet(suite.ctx, 1)
	suite.NoError(err)
	suite.Equal(int64(100000), wallet.Balance)
	suite.Equal(int64(100000), wallet.TotalDeposit)

	// 初始额度记了一条充值流水
	transactions, total, err := suite.svc.ListTransactions(suite.ctx, 1, 1, 10)
	suite.NoError(err)
	suite.Equal(int64(1), total)
	suite.Equal(models.TransactionTypeDeposit, transactions[0].Type)
	suite.Equal(int64(100000), transactions[0].Amount)
}

// TestGetOrCreateWallet_Existing 已有钱包不重复发放
func (suite *WalletServiceTestSuite) TestGetOrCreateWallet_Existing() {
	suite.NoError(suite.repo.Create(suite.ctx, &models.Wallet{UserID: 1, Balance: 5000}))

	wallet, err := suite.svc.GetOrCreateWallet(suite.ctx, 1)
	suite.NoError(err)
	suite.Equal(int64(5000), wallet.Balance)

	_, total, err := suite.svc.ListTransactions(suite.ctx, 1, 1, 10)
	suite.NoError(err)
	suite.Equal(int64(0), total)
}

// TestGetBalance 查询余额
func (suite *WalletServiceTestSuite) TestGetBalance() {
	suite.NoError(suite.repo.Create(suite.ctx, &models.Wallet{UserID: 1, Balance: 7500}))

	balance, err := suite.svc.GetBalance(suite.ctx, 1)
	suite.NoError(err)
	suite.Equal(int64(7500), balance)

	_, err = suite.svc.GetBalance(suite.ctx, 99)
	suite.Error(err)
	suite.Equal(apperrors.ErrNotFound, apperrors.GetCode(err))
}

// TestDeposit 充值入账并记流水
func (suite *WalletServiceTestSuite) TestDeposit() {
	suite.NoError(suite.repo.Create(suite.ctx, &models.Wallet{UserID: 1, Balance: 1000}))

	wallet, err := suite.svc.Deposit(suite.ctx, 1, 2000)
	suite.NoError(err)
	suite.Equal(int64(3000), wallet.Balance)

	transactions, total, err := suite.svc.ListTransactions(suite.ctx, 1, 1, 10)
	suite.NoError(err)
	suite.Equal(int64(1), total)
	suite.Equal(int64(2000), transactions[0].Amount)
}

// TestDeposit_InvalidAmount 非正金额拒绝
func (suite *WalletServiceTestSuite) TestDeposit_InvalidAmount() {
	_, err := suite.svc.Deposit(suite.ctx, 1, 0)
	suite.Error(err)
	suite.Equal(apperrors.ErrInvalidParam, apperrors.GetCode(err))

	_, err = suite.svc.Deposit(suite.ctx, 1, -100)
	suite.Error(err)
}

// TestWalletServiceTestSuite 运行测试套件
func TestWalletServiceTestSuite(t *testing.T) {
	suite.Run(t, new(WalletServiceTestSuite))
}

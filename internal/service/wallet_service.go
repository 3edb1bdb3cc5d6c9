package service

import (
	"context"

	apperrors "github.com/wfunc/wager-engine/internal/errors"
	"github.com/wfunc/wager-engine/internal/models"
	"github.com/wfunc/wager-engine/internal/repository"
	"go.uber.org/zap"
)

// walletService 钱包服务实现
type walletService struct {
	walletRepo     repository.WalletRepository
	txRepo         repository.TransactionRepository
	initialBalance int64 // 新钱包初始额度（分）
	logger         *zap.Logger
}

// NewWalletService 创建钱包服务
func NewWalletService(
	walletRepo repository.WalletRepository,
	txRepo repository.TransactionRepository,
	initialBalance int64,
	log *zap.Logger,
) WalletService {
	return &walletService{
		walletRepo:     walletRepo,
		txRepo:         txRepo,
		initialBalance: initialBalance,
		logger:         log,
	}
}

// GetOrCreateWallet 查询钱包，首次访问时创建并发放初始额度
func (s *walletService) GetOrCreateWallet(ctx context.Context, userID uint) (*models.Wallet, error) {
	wallet, err := s.walletRepo.FindByUserID(ctx, userID)
	if err == nil {
		return wallet, nil
	}
	if !apperrors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	wallet = &models.Wallet{
		UserID:       userID,
		Balance:      s.initialBalance,
		TotalDeposit: s.initialBalance,
	}
	if err := s.walletRepo.Create(ctx, wallet); err != nil {
		// 并发创建时让出，回读已存在的钱包
		if existing, findErr := s.walletRepo.FindByUserID(ctx, userID); findErr == nil {
			return existing, nil
		}
		return nil, err
	}

	if s.initialBalance > 0 {
		grant := &models.Transaction{
			UserID:       userID,
			OrderNo:      newOrderNo("DEP"),
			Type:         models.TransactionTypeDeposit,
			Amount:       s.initialBalance,
			AfterBalance: s.initialBalance,
			Status:       "success",
			Description:  "初始额度发放",
		}
		if err := s.txRepo.Create(ctx, grant); err != nil {
			s.logger.Warn("初始额度流水写入失败",
				zap.Uint("user_id", userID),
				zap.Error(err))
		}
	}

	s.logger.Info("创建新钱包",
		zap.Uint("user_id", userID),
		zap.Int64("initial_balance", s.initialBalance))

	return wallet, nil
}

// GetBalance 查询余额
func (s *walletService) GetBalance(ctx context.Context, userID uint) (int64, error) {
	wallet, err := s.walletRepo.FindByUserID(ctx, userID)
	if err != nil {
		return 0, err
	}
	return wallet.Balance, nil
}

// Deposit 充值入账
func (s *walletService) Deposit(ctx context.Context, userID uint, amount int64) (*models.Wallet, error) {
	if amount <= 0 {
		return nil, apperrors.New(apperrors.ErrInvalidParam, "充值金额必须大于0")
	}

	wallet, err := s.GetOrCreateWallet(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.walletRepo.AddBalance(ctx, userID, amount); err != nil {
		return nil, err
	}

	deposit := &models.Transaction{
		UserID:        userID,
		OrderNo:       newOrderNo("DEP"),
		Type:          models.TransactionTypeDeposit,
		Amount:        amount,
		BeforeBalance: wallet.Balance,
		AfterBalance:  wallet.Balance + amount,
		Status:        "success",
		Description:   "充值",
	}
	if err := s.txRepo.Create(ctx, deposit); err != nil {
		s.logger.Warn("充值流水写入失败",
			zap.Uint("user_id", userID),
			zap.Error(err))
	}

	return s.walletRepo.FindByUserID(ctx, userID)
}

// ListTransactions 分页查询资金流水
func (s *walletService) ListTransactions(ctx context.Context, userID uint, page, pageSize int) ([]*models.Transaction, int64, error) {
	return s.txRepo.FindByUserID(ctx, userID, repository.NewPagination(page, pageSize))
}

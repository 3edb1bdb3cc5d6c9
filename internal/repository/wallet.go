package repository

import (
	"context"
	"errors"
	"time"

	apperrors "github.com/wfunc/wager-engine/internal/errors"
	"github.com/wfunc/wager-engine/internal/models"
	"gorm.io/gorm"
)

// WalletRepository 账务仓储接口。
//
// DeductBalance / AddBalance 就是引擎的总账边界：
// 扣款是带余额守卫的单条条件更新，对同一账户的并发扣入账
// 在这一行上串行化；入账是无条件累加，允许金额为0（输局）。
type WalletRepository interface {
	BaseRepository
	Create(ctx context.Context, wallet *models.Wallet) error
	FindByUserID(ctx context.Context, userID uint) (*models.Wallet, error)
	AddBalance(ctx context.Context, userID uint, amount int64) error
	DeductBalance(ctx context.Context, userID uint, amount int64) error
	UpdateBetStats(ctx context.Context, userID uint, betAmount, winAmount int64) error
	CreateTransaction(ctx context.Context, transaction *models.Transaction) error
}

// walletRepo 账务仓储实现
type walletRepo struct {
	*BaseRepo
}

// NewWalletRepository 创建账务仓储
func NewWalletRepository(db *gorm.DB) WalletRepository {
	return &walletRepo{
		BaseRepo: &BaseRepo{db: db},
	}
}

// Create 创建钱包
func (r *walletRepo) Create(ctx context.Context, wallet *models.Wallet) error {
	return r.db.WithContext(ctx).Create(wallet).Error
}

// FindByUserID 根据用户ID查找钱包
func (r *walletRepo) FindByUserID(ctx context.Context, userID uint) (*models.Wallet, error) {
	var wallet models.Wallet
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&wallet).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.ErrNotFound, "钱包不存在")
		}
		return nil, err
	}
	return &wallet, nil
}

// AddBalance 入账。金额可以为0（输局派彩），写入后对同账户的
// 后续读取立即可见。
func (r *walletRepo) AddBalance(ctx context.Context, userID uint, amount int64) error {
	result := r.db.WithContext(ctx).
		Model(&models.Wallet{}).
		Where("user_id = ?", userID).
		Update("balance", gorm.Expr("balance + ?", amount))

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.New(apperrors.ErrNotFound, "钱包不存在")
	}
	return nil
}

// DeductBalance 扣款。余额守卫写进同一条UPDATE里，
// 与读取原子；余额不足时零副作用返回失败。
func (r *walletRepo) DeductBalance(ctx context.Context, userID uint, amount int64) error {
	result := r.db.WithContext(ctx).
		Model(&models.Wallet{}).
		Where("user_id = ? AND balance >= ?", userID, amount).
		Update("balance", gorm.Expr("balance - ?", amount))

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.New(apperrors.ErrInsufficientFunds)
	}
	return nil
}

// UpdateBetStats 更新投注统计
func (r *walletRepo) UpdateBetStats(ctx context.Context, userID uint, betAmount, winAmount int64) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&models.Wallet{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"total_bet":   gorm.Expr("total_bet + ?", betAmount),
			"total_win":   gorm.Expr("total_win + ?", winAmount),
			"last_bet_at": now,
		}).Error
}

// CreateTransaction 创建资金流水
func (r *walletRepo) CreateTransaction(ctx context.Context, transaction *models.Transaction) error {
	return r.db.WithContext(ctx).Create(transaction).Error
}

// WithTx 使用事务
func (r *walletRepo) WithTx(tx *gorm.DB) BaseRepository {
	return &walletRepo{
		BaseRepo: &BaseRepo{db: tx},
	}
}

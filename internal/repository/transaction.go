package repository

import (
	"context"
	"errors"

	apperrors "github.com/wfunc/wager-engine/internal/errors"
	"github.com/wfunc/wager-engine/internal/models"
	"gorm.io/gorm"
)

// TransactionRepository 资金流水仓储接口
type TransactionRepository interface {
	BaseRepository
	Create(ctx context.Context, transaction *models.Transaction) error
	FindByOrderNo(ctx context.Context, orderNo string) (*models.Transaction, error)
	FindByUserID(ctx context.Context, userID uint, page *Pagination) ([]*models.Transaction, int64, error)
}

// transactionRepo 资金流水仓储实现
type transactionRepo struct {
	*BaseRepo
}

// NewTransactionRepository 创建资金流水仓储
func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepo{
		BaseRepo: &BaseRepo{db: db},
	}
}

// Create 创建流水
func (r *transactionRepo) Create(ctx context.Context, transaction *models.Transaction) error {
	return r.db.WithContext(ctx).Create(transaction).Error
}

// FindByOrderNo 根据订单号查找流水
func (r *transactionRepo) FindByOrderNo(ctx context.Context, orderNo string) (*models.Transaction, error) {
	var transaction models.Transaction
	err := r.db.WithContext(ctx).Where("order_no = ?", orderNo).First(&transaction).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.ErrNotFound, "流水不存在")
		}
		return nil, err
	}
	return &transaction, nil
}

// FindByUserID 分页查询用户流水，按创建时间倒序
func (r *transactionRepo) FindByUserID(ctx context.Context, userID uint, page *Pagination) ([]*models.Transaction, int64, error) {
	var transactions []*models.Transaction
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Transaction{}).Where("user_id = ?", userID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").
		Offset(page.Offset()).
		Limit(page.PageSize).
		Find(&transactions).Error
	if err != nil {
		return nil, 0, err
	}
	return transactions, total, nil
}

// WithTx 使用事务
func (r *transactionRepo) WithTx(tx *gorm.DB) BaseRepository {
	return &transactionRepo{
		BaseRepo: &BaseRepo{db: tx},
	}
}

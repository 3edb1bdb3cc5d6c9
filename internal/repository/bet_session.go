package repository

import (
	"context"
	"errors"
	"time"

	apperrors "github.com/wfunc/wager-engine/internal/errors"
	"github.com/wfunc/wager-engine/internal/models"
	"gorm.io/gorm"
)

// BetSessionRepository 投注会话仓储接口。
//
// MarkSettled / MarkFailed 用带状态守卫的条件更新落终态：
// 只有还处于pending的行会被改写，重复结算在这一行上被拒绝。
type BetSessionRepository interface {
	BaseRepository
	Create(ctx context.Context, session *models.BetSession) error
	FindBySessionID(ctx context.Context, sessionID string) (*models.BetSession, error)
	FindByUserID(ctx context.Context, userID uint, page *Pagination) ([]*models.BetSession, int64, error)
	MarkSettled(ctx context.Context, sessionID string, outcome models.JSONMap, payout int64, multiplier float64, isWin bool) error
	MarkFailed(ctx context.Context, sessionID string) error
	SetCreditPending(ctx context.Context, sessionID string, pending bool) error
	FindPendingBefore(ctx context.Context, cutoff time.Time) ([]*models.BetSession, error)
}

// betSessionRepo 投注会话仓储实现
type betSessionRepo struct {
	*BaseRepo
}

// NewBetSessionRepository 创建投注会话仓储
func NewBetSessionRepository(db *gorm.DB) BetSessionRepository {
	return &betSessionRepo{
		BaseRepo: &BaseRepo{db: db},
	}
}

// Create 创建投注会话
func (r *betSessionRepo) Create(ctx context.Context, session *models.BetSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

// FindBySessionID 根据会话ID查找
func (r *betSessionRepo) FindBySessionID(ctx context.Context, sessionID string) (*models.BetSession, error) {
	var session models.BetSession
	err := r.db.WithContext(ctx).Where("session_id = ?", sessionID).First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.ErrBetNotFound)
		}
		return nil, err
	}
	return &session, nil
}

// FindByUserID 分页查询用户的投注历史，按下注时间倒序
func (r *betSessionRepo) FindByUserID(ctx context.Context, userID uint, page *Pagination) ([]*models.BetSession, int64, error) {
	var sessions []*models.BetSession
	var total int64

	query := r.db.WithContext(ctx).Model(&models.BetSession{}).Where("user_id = ?", userID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("placed_at DESC").
		Offset(page.Offset()).
		Limit(page.PageSize).
		Find(&sessions).Error
	if err != nil {
		return nil, 0, err
	}
	return sessions, total, nil
}

// MarkSettled 落结算终态。状态守卫写在UPDATE条件里，
// 已经到终态的会话零行命中，返回已结算错误。
func (r *betSessionRepo) MarkSettled(ctx context.Context, sessionID string, outcome models.JSONMap, payout int64, multiplier float64, isWin bool) error {
	now := time.Now()
	result := r.db.WithContext(ctx).
		Model(&models.BetSession{}).
		Where("session_id = ? AND status = ?", sessionID, models.BetStatusPending).
		Updates(map[string]interface{}{
			"status":        models.BetStatusSettled,
			"outcome":       outcome,
			"payout_amount": payout,
			"multiplier":    multiplier,
			"is_win":        isWin,
			"settled_at":    now,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.New(apperrors.ErrAlreadySettled)
	}
	return nil
}

// MarkFailed 落失败终态，同样只接受pending状态的会话
func (r *betSessionRepo) MarkFailed(ctx context.Context, sessionID string) error {
	now := time.Now()
	result := r.db.WithContext(ctx).
		Model(&models.BetSession{}).
		Where("session_id = ? AND status = ?", sessionID, models.BetStatusPending).
		Updates(map[string]interface{}{
			"status":     models.BetStatusFailed,
			"settled_at": now,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.New(apperrors.ErrBetTerminal)
	}
	return nil
}

// SetCreditPending 标记入账挂起。结算已落库但派彩入账失败时
// 置位，由对账任务兜底补账。
func (r *betSessionRepo) SetCreditPending(ctx context.Context, sessionID string, pending bool) error {
	return r.db.WithContext(ctx).
		Model(&models.BetSession{}).
		Where("session_id = ?", sessionID).
		Update("credit_pending", pending).Error
}

// FindPendingBefore 查询在截止时间前下注且仍未结算的会话，
// 供对账扫描使用
func (r *betSessionRepo) FindPendingBefore(ctx context.Context, cutoff time.Time) ([]*models.BetSession, error) {
	var sessions []*models.BetSession
	err := r.db.WithContext(ctx).
		Where("status = ? AND placed_at < ?", models.BetStatusPending, cutoff).
		Order("placed_at ASC").
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

// WithTx 使用事务
func (r *betSessionRepo) WithTx(tx *gorm.DB) BaseRepository {
	return &betSessionRepo{
		BaseRepo: &BaseRepo{db: tx},
	}
}

package repository

import (
	"context"
	"errors"

	apperrors "github.com/wfunc/wager-engine/internal/errors"
	"github.com/wfunc/wager-engine/internal/models"
	"gorm.io/gorm"
)

// GameRepository 游戏配置仓储接口
type GameRepository interface {
	BaseRepository
	Create(ctx context.Context, game *models.Game) error
	FindByID(ctx context.Context, id uint) (*models.Game, error)
	FindByType(ctx context.Context, gameType string) (*models.Game, error)
	ListActive(ctx context.Context) ([]*models.Game, error)
}

// gameRepo 游戏配置仓储实现
type gameRepo struct {
	*BaseRepo
}

// NewGameRepository 创建游戏配置仓储
func NewGameRepository(db *gorm.DB) GameRepository {
	return &gameRepo{
		BaseRepo: &BaseRepo{db: db},
	}
}

// Create 创建游戏
func (r *gameRepo) Create(ctx context.Context, game *models.Game) error {
	return r.db.WithContext(ctx).Create(game).Error
}

// FindByID 根据ID查找游戏
func (r *gameRepo) FindByID(ctx context.Context, id uint) (*models.Game, error) {
	var game models.Game
	err := r.db.WithContext(ctx).First(&game, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.ErrGameNotFound)
		}
		return nil, err
	}
	return &game, nil
}

// FindByType 根据类型查找游戏
func (r *gameRepo) FindByType(ctx context.Context, gameType string) (*models.Game, error) {
	var game models.Game
	err := r.db.WithContext(ctx).Where("type = ?", gameType).First(&game).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.ErrGameNotFound)
		}
		return nil, err
	}
	return &game, nil
}

// ListActive 列出所有启用的游戏
func (r *gameRepo) ListActive(ctx context.Context) ([]*models.Game, error) {
	var games []*models.Game
	err := r.db.WithContext(ctx).
		Where("status = ?", models.GameStatusActive).
		Order("id ASC").
		Find(&games).Error
	if err != nil {
		return nil, err
	}
	return games, nil
}

// WithTx 使用事务
func (r *gameRepo) WithTx(tx *gorm.DB) BaseRepository {
	return &gameRepo{
		BaseRepo: &BaseRepo{db: tx},
	}
}

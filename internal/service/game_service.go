package service

import (
	"context"

	"github.com/wfunc/wager-engine/internal/models"
	"github.com/wfunc/wager-engine/internal/repository"
)

// gameService 游戏配置服务实现
type gameService struct {
	gameRepo repository.GameRepository
}

// NewGameService 创建游戏配置服务
func NewGameService(gameRepo repository.GameRepository) GameService {
	return &gameService{gameRepo: gameRepo}
}

// ListGames 列出开放中的游戏
func (s *gameService) ListGames(ctx context.Context) ([]*models.Game, error) {
	return s.gameRepo.ListActive(ctx)
}

// GetGame 查询单个游戏
func (s *gameService) GetGame(ctx context.Context, gameID uint) (*models.Game, error) {
	return s.gameRepo.FindByID(ctx, gameID)
}

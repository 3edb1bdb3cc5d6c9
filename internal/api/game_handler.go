package api

import (
	"strconv"

	"github.com/gin-gonic/gin"
	apperrors "github.com/wfunc/wager-engine/internal/errors"
	"github.com/wfunc/wager-engine/internal/service"
)

// GameHandler 游戏配置处理器
type GameHandler struct {
	gameService service.GameService
}

// NewGameHandler 创建游戏配置处理器
func NewGameHandler(gameService service.GameService) *GameHandler {
	return &GameHandler{gameService: gameService}
}

// ListGames 列出开放中的游戏
func (h *GameHandler) ListGames(c *gin.Context) {
	games, err := h.gameService.ListGames(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, gin.H{"games": games})
}

// GetGame 查询单个游戏
func (h *GameHandler) GetGame(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, apperrors.New(apperrors.ErrInvalidParam, "游戏ID必须是数字"))
		return
	}

	game, err := h.gameService.GetGame(c.Request.Context(), uint(id))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, game)
}

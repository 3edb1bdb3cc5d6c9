package api

import (
	"github.com/gin-gonic/gin"
	apperrors "github.com/wfunc/wager-engine/internal/errors"
	"github.com/wfunc/wager-engine/internal/game"
	"github.com/wfunc/wager-engine/internal/service"
	"go.uber.org/zap"
)

// BetHandler 投注处理器
type BetHandler struct {
	betService service.BetService
	logger     *zap.Logger
}

// NewBetHandler 创建投注处理器
func NewBetHandler(betService service.BetService, logger *zap.Logger) *BetHandler {
	return &BetHandler{
		betService: betService,
		logger:     logger,
	}
}

// PlaceBetRequest 下注请求体
type PlaceBetRequest struct {
	GameID    uint            `json:"game_id" binding:"required"`
	Stake     int64           `json:"stake" binding:"required,min=1"`
	Selection *game.Selection `json:"selection,omitempty"`
}

// PlaceBet 下注
func (h *BetHandler) PlaceBet(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		c.JSON(401, gin.H{"error": "缺少用户身份"})
		return
	}

	var req PlaceBetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	session, err := h.betService.PlaceBet(c.Request.Context(), &service.PlaceBetRequest{
		UserID:    userID,
		GameID:    req.GameID,
		Stake:     req.Stake,
		Selection: req.Selection,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(201, gin.H{
		"session_id": session.SessionID,
		"status":     session.Status,
		"stake":      session.StakeAmount,
		"game_type":  session.GameType,
		"placed_at":  session.PlacedAt,
	})
}

// SettleBet 结算
func (h *BetHandler) SettleBet(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		c.JSON(401, gin.H{"error": "缺少用户身份"})
		return
	}

	sessionID := c.Param("session_id")
	if sessionID == "" {
		c.JSON(400, gin.H{"error": "缺少会话ID"})
		return
	}

	// 只允许结算自己的投注
	session, err := h.betService.GetBet(c.Request.Context(), sessionID)
	if err != nil {
		respondError(c, err)
		return
	}
	if session.UserID != userID {
		respondError(c, apperrors.New(apperrors.ErrBetNotFound))
		return
	}

	result, err := h.betService.SettleBet(c.Request.Context(), sessionID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(200, result)
}

// GetBet 查询单个投注会话
func (h *BetHandler) GetBet(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		c.JSON(401, gin.H{"error": "缺少用户身份"})
		return
	}

	session, err := h.betService.GetBet(c.Request.Context(), c.Param("session_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if session.UserID != userID {
		respondError(c, apperrors.New(apperrors.ErrBetNotFound))
		return
	}

	c.JSON(200, session)
}

// ListBets 查询投注历史
func (h *BetHandler) ListBets(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		c.JSON(401, gin.H{"error": "缺少用户身份"})
		return
	}

	page, pageSize := pageParams(c)
	sessions, total, err := h.betService.ListBets(c.Request.Context(), userID, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(200, gin.H{
		"bets":      sessions,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

package api

import (
	"github.com/gin-gonic/gin"
	"github.com/wfunc/wager-engine/internal/service"
	"go.uber.org/zap"
)

// WalletHandler 钱包处理器
type WalletHandler struct {
	walletService service.WalletService
	logger        *zap.Logger
}

// NewWalletHandler 创建钱包处理器
func NewWalletHandler(walletService service.WalletService, logger *zap.Logger) *WalletHandler {
	return &WalletHandler{
		walletService: walletService,
		logger:        logger,
	}
}

// DepositRequest 充值请求
type DepositRequest struct {
	Amount int64 `json:"amount" binding:"required,min=100"`
}

// GetBalance 获取余额，首次访问时创建钱包并发放初始额度
func (h *WalletHandler) GetBalance(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		c.JSON(401, gin.H{"error": "缺少用户身份"})
		return
	}

	wallet, err := h.walletService.GetOrCreateWallet(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("获取钱包失败", zap.Uint("user_id", userID), zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(200, gin.H{
		"balance":       wallet.Balance,
		"total_deposit": wallet.TotalDeposit,
		"total_bet":     wallet.TotalBet,
		"total_win":     wallet.TotalWin,
	})
}

// Deposit 充值（测试用）
func (h *WalletHandler) Deposit(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		c.JSON(401, gin.H{"error": "缺少用户身份"})
		return
	}

	var req DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	wallet, err := h.walletService.Deposit(c.Request.Context(), userID, req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(200, gin.H{
		"balance": wallet.Balance,
		"amount":  req.Amount,
		"status":  "success",
	})
}

// ListTransactions 查询资金流水
func (h *WalletHandler) ListTransactions(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		c.JSON(401, gin.H{"error": "缺少用户身份"})
		return
	}

	page, pageSize := pageParams(c)
	transactions, total, err := h.walletService.ListTransactions(c.Request.Context(), userID, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(200, gin.H{
		"transactions": transactions,
		"total":        total,
		"page":         page,
		"page_size":    pageSize,
	})
}

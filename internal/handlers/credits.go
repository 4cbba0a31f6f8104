package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/edudraft/edudraft-backend/internal/services"
	"github.com/edudraft/edudraft-backend/internal/types"
)

type CreditsHandler struct {
	ledger services.LedgerService
}

func NewCreditsHandler(ledger services.LedgerService) *CreditsHandler {
	return &CreditsHandler{ledger: ledger}
}

func (ch *CreditsHandler) Balance(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	balance, err := ch.ledger.Balance(c.Request.Context(), userID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, http.StatusOK, gin.H{"balance": balance})
}

func (ch *CreditsHandler) History(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 500 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "limit must be between 1 and 500"})
			return
		}
		limit = parsed
	}
	history, err := ch.ledger.History(c.Request.Context(), userID, limit)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, http.StatusOK, gin.H{"transactions": history})
}

// Purchase credits the account directly. Payment capture happens upstream;
// this endpoint records the grant against the ledger.
func (ch *CreditsHandler) Purchase(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	var req struct {
		Amount      int    `json:"amount"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Amount <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "amount must be a positive integer"})
		return
	}
	description := req.Description
	if description == "" {
		description = "credit purchase"
	}
	txn, err := ch.ledger.Credit(c.Request.Context(), userID, req.Amount, types.CreditKindPurchase, description, nil)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, http.StatusOK, gin.H{"transaction": txn, "balance": txn.BalanceAfter})
}

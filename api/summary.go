package api

import (
	"net/http"

	"fintrack/config"
	"fintrack/database"
	"fintrack/models"

	"github.com/gin-gonic/gin"
)

// CategoryTotal is one slice of the expense breakdown.
type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

// SummaryResponse aggregates a user's records. Balance is always recomputed
// from the rows, never persisted.
type SummaryResponse struct {
	TotalIncome  float64         `json:"total_income" example:"5000.00"`
	TotalExpense float64         `json:"total_expense" example:"1234.50"`
	Balance      float64         `json:"balance" example:"3765.50"`
	ByCategory   []CategoryTotal `json:"by_category"`
}

// Summary returns totals and the per-category expense breakdown
// @Summary Transaction summary
// @Description Sums a user's incomes and expenses and groups expense totals by category.
// @Tags transactions
// @Produce json
// @Param userId path string true "user id"
// @Success 200 {object} SummaryResponse "aggregated totals"
// @Failure 500 {object} ErrorResponse "store error"
// @Router /api/transactions/{userId}/summary [get]
func (h *TransactionHandler) Summary(c *gin.Context) {
	userID := c.Param("userId")

	var totalIncome float64
	if err := database.DB.Model(&models.Income{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&totalIncome).Error; err != nil {
		InternalError(c, config.SafeErrorMessage(err, "failed to compute summary"))
		return
	}

	var totalExpense float64
	if err := database.DB.Model(&models.Expense{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&totalExpense).Error; err != nil {
		InternalError(c, config.SafeErrorMessage(err, "failed to compute summary"))
		return
	}

	byCategory := []CategoryTotal{}
	if err := database.DB.Model(&models.Expense{}).
		Where("user_id = ?", userID).
		Select("category, COALESCE(SUM(amount), 0) AS total").
		Group("category").
		Order("total DESC").
		Scan(&byCategory).Error; err != nil {
		InternalError(c, config.SafeErrorMessage(err, "failed to compute summary"))
		return
	}

	c.JSON(http.StatusOK, SummaryResponse{
		TotalIncome:  totalIncome,
		TotalExpense: totalExpense,
		Balance:      totalIncome - totalExpense,
		ByCategory:   byCategory,
	})
}

package api

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"fintrack/database"
	"fintrack/models"

	"github.com/gin-gonic/gin"
)

// TransactionHandler owns the income/expense record routes. The user id is
// taken verbatim from the request body or path with no session check; that
// trust boundary is inherited from the API contract and deliberately not
// hardened here.
type TransactionHandler struct{}

// NewTransactionHandler creates a transaction handler.
func NewTransactionHandler() *TransactionHandler {
	return &TransactionHandler{}
}

// AddIncomeRequest is the income creation payload.
type AddIncomeRequest struct {
	UserID      string  `json:"userId" example:"5f1c8d1e-2b24-4b0f-9a37-18d0a1f5c9e2"`
	Description string  `json:"description" example:"salary"`
	Amount      float64 `json:"amount" example:"1000"`
}

// AddExpenseRequest is the expense creation payload.
type AddExpenseRequest struct {
	UserID      string  `json:"userId" example:"5f1c8d1e-2b24-4b0f-9a37-18d0a1f5c9e2"`
	Description string  `json:"description" example:"groceries"`
	Amount      float64 `json:"amount" example:"200"`
	Category    string  `json:"category" example:"food"`
	Date        string  `json:"date" example:"2024-01-15"`
}

// AddIncome creates an income record
// @Summary Add income
// @Description Inserts one income row for the given user and returns it.
// @Tags transactions
// @Accept json
// @Produce json
// @Param request body AddIncomeRequest true "income fields"
// @Success 200 {object} map[string]interface{} "message and inserted income"
// @Failure 400 {object} ErrorResponse "missing fields"
// @Failure 401 {object} ErrorResponse "missing userId"
// @Failure 500 {object} ErrorResponse "store error"
// @Router /api/transactions/income [post]
func (h *TransactionHandler) AddIncome(c *gin.Context) {
	var req AddIncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body")
		return
	}
	if req.UserID == "" {
		log.Printf("user not authenticated: missing userId in request body")
		Unauthorized(c, "User not authenticated")
		return
	}
	// Amount only has to be non-zero here; positivity is enforced client-side.
	if req.Description == "" || req.Amount == 0 {
		BadRequest(c, "Invalid input: description and amount are required")
		return
	}

	income := models.Income{
		UserID:      req.UserID,
		Description: req.Description,
		Amount:      req.Amount,
	}
	if err := database.DB.Create(&income).Error; err != nil {
		log.Printf("error adding income: %v", err)
		InternalError(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Income added", "income": income})
}

// AddExpense creates an expense record
// @Summary Add expense
// @Description Inserts one expense row for the given user and returns it.
// @Tags transactions
// @Accept json
// @Produce json
// @Param request body AddExpenseRequest true "expense fields"
// @Success 200 {object} map[string]interface{} "message and inserted expense"
// @Failure 400 {object} ErrorResponse "missing fields or bad date"
// @Failure 401 {object} ErrorResponse "missing userId"
// @Failure 500 {object} ErrorResponse "store error"
// @Router /api/transactions/expense [post]
func (h *TransactionHandler) AddExpense(c *gin.Context) {
	var req AddExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body")
		return
	}
	if req.UserID == "" {
		log.Printf("user not authenticated: missing userId in request body")
		Unauthorized(c, "User not authenticated")
		return
	}
	if req.Description == "" || req.Amount == 0 || req.Category == "" || req.Date == "" {
		BadRequest(c, "Invalid input: description, amount, category, and date are required")
		return
	}

	date, err := time.ParseInLocation("2006-01-02", req.Date, time.Local)
	if err != nil {
		BadRequest(c, "Invalid date format, expected YYYY-MM-DD")
		return
	}

	expense := models.Expense{
		UserID:      req.UserID,
		Description: req.Description,
		Amount:      req.Amount,
		Category:    req.Category,
		Date:        date,
	}
	if err := database.DB.Create(&expense).Error; err != nil {
		log.Printf("error adding expense: %v", err)
		InternalError(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Expense added", "expense": expense})
}

// List returns all transactions of a user
// @Summary List transactions
// @Description Returns the user's incomes (newest insert first) and expenses (latest date first). Fails as a whole if either query fails.
// @Tags transactions
// @Produce json
// @Param userId path string true "user id"
// @Success 200 {object} map[string]interface{} "incomes and expenses arrays"
// @Failure 400 {object} ErrorResponse "missing userId"
// @Failure 500 {object} ErrorResponse "store error"
// @Router /api/transactions/{userId} [get]
func (h *TransactionHandler) List(c *gin.Context) {
	userID := c.Param("userId")
	if userID == "" {
		BadRequest(c, "Missing userId")
		return
	}

	// Incomes order by insertion time, expenses by the user-supplied date.
	// The difference is intentional and part of the contract.
	incomes := []models.Income{}
	if err := database.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&incomes).Error; err != nil {
		log.Printf("error fetching transactions: %v", err)
		InternalError(c, err.Error())
		return
	}

	expenses := []models.Expense{}
	if err := database.DB.Where("user_id = ?", userID).
		Order("date DESC").
		Find(&expenses).Error; err != nil {
		log.Printf("error fetching transactions: %v", err)
		InternalError(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"incomes": incomes, "expenses": expenses})
}

// Delete removes a single transaction
// @Summary Delete transaction
// @Description Deletes the income or expense with the given id and returns the deleted row.
// @Tags transactions
// @Produce json
// @Param type path string true "income or expense"
// @Param id path int true "transaction id"
// @Success 200 {object} map[string]interface{} "message and deleted transaction"
// @Failure 400 {object} ErrorResponse "bad type or id"
// @Failure 404 {object} ErrorResponse "transaction not found"
// @Failure 500 {object} ErrorResponse "store error"
// @Router /api/transactions/{type}/{id} [delete]
func (h *TransactionHandler) Delete(c *gin.Context) {
	txType := c.Param("type")
	if txType != "income" && txType != "expense" {
		BadRequest(c, "Type must be 'income' or 'expense'")
		return
	}

	idStr := c.Param("id")
	if idStr == "" {
		BadRequest(c, "Missing transaction ID")
		return
	}
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		BadRequest(c, "Invalid transaction ID")
		return
	}

	if txType == "income" {
		var income models.Income
		if err := database.DB.First(&income, uint(id)).Error; err != nil {
			NotFound(c, "Transaction not found")
			return
		}
		if err := database.DB.Delete(&income).Error; err != nil {
			log.Printf("error deleting transaction: %v", err)
			InternalError(c, err.Error())
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "income deleted", "transaction": income})
		return
	}

	var expense models.Expense
	if err := database.DB.First(&expense, uint(id)).Error; err != nil {
		NotFound(c, "Transaction not found")
		return
	}
	if err := database.DB.Delete(&expense).Error; err != nil {
		log.Printf("error deleting transaction: %v", err)
		InternalError(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "expense deleted", "transaction": expense})
}

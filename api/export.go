package api

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"log"
	"net/http"

	"fintrack/config"
	"fintrack/database"
	"fintrack/models"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// ExportHandler renders a user's transactions as downloadable files.
type ExportHandler struct{}

// NewExportHandler creates an export handler.
func NewExportHandler() *ExportHandler {
	return &ExportHandler{}
}

func fetchUserTransactions(userID string) ([]models.Income, []models.Expense, error) {
	var incomes []models.Income
	if err := database.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&incomes).Error; err != nil {
		return nil, nil, err
	}
	var expenses []models.Expense
	if err := database.DB.Where("user_id = ?", userID).
		Order("date DESC").
		Find(&expenses).Error; err != nil {
		return nil, nil, err
	}
	return incomes, expenses, nil
}

// ExportCSV exports a user's transactions as CSV
// @Summary Export transactions as CSV
// @Description Streams all incomes and expenses of the user as a single CSV attachment.
// @Tags export
// @Produce text/csv
// @Param userId path string true "user id"
// @Success 200 {file} file "CSV file"
// @Failure 500 {object} ErrorResponse "store error"
// @Router /api/transactions/{userId}/export/csv [get]
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	userID := c.Param("userId")

	incomes, expenses, err := fetchUserTransactions(userID)
	if err != nil {
		log.Printf("error exporting transactions: %v", err)
		InternalError(c, config.SafeErrorMessage(err, "failed to export transactions"))
		return
	}

	buf := new(bytes.Buffer)
	// BOM so spreadsheet apps detect UTF-8
	buf.WriteString("\xEF\xBB\xBF")

	writer := csv.NewWriter(buf)

	headers := []string{"Type", "ID", "Description", "Amount", "Category", "Date", "Created At"}
	if err := writer.Write(headers); err != nil {
		InternalError(c, "failed to generate CSV")
		return
	}

	for _, income := range incomes {
		row := []string{
			"income",
			fmt.Sprintf("%d", income.ID),
			income.Description,
			fmt.Sprintf("%.2f", income.Amount),
			"",
			"",
			income.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if err := writer.Write(row); err != nil {
			InternalError(c, "failed to generate CSV")
			return
		}
	}
	for _, expense := range expenses {
		row := []string{
			"expense",
			fmt.Sprintf("%d", expense.ID),
			expense.Description,
			fmt.Sprintf("%.2f", expense.Amount),
			expense.Category,
			expense.Date.Format("2006-01-02"),
			expense.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if err := writer.Write(row); err != nil {
			InternalError(c, "failed to generate CSV")
			return
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		InternalError(c, "failed to generate CSV")
		return
	}

	filename := fmt.Sprintf("transactions_%s.csv", userID)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Header("Content-Length", fmt.Sprintf("%d", buf.Len()))

	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// ExportExcel exports a user's transactions as an Excel workbook
// @Summary Export transactions as Excel
// @Description Builds an XLSX workbook with one sheet for incomes and one for expenses.
// @Tags export
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param userId path string true "user id"
// @Success 200 {file} file "XLSX file"
// @Failure 500 {object} ErrorResponse "store error"
// @Router /api/transactions/{userId}/export/excel [get]
func (h *ExportHandler) ExportExcel(c *gin.Context) {
	userID := c.Param("userId")

	incomes, expenses, err := fetchUserTransactions(userID)
	if err != nil {
		log.Printf("error exporting transactions: %v", err)
		InternalError(c, config.SafeErrorMessage(err, "failed to export transactions"))
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	incomeSheet := "Incomes"
	f.SetSheetName("Sheet1", incomeSheet)
	f.SetSheetRow(incomeSheet, "A1", &[]interface{}{"ID", "Description", "Amount", "Created At"})
	for i, income := range incomes {
		cell := fmt.Sprintf("A%d", i+2)
		f.SetSheetRow(incomeSheet, cell, &[]interface{}{
			income.ID,
			income.Description,
			income.Amount,
			income.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}

	expenseSheet := "Expenses"
	f.NewSheet(expenseSheet)
	f.SetSheetRow(expenseSheet, "A1", &[]interface{}{"ID", "Description", "Amount", "Category", "Date", "Created At"})
	for i, expense := range expenses {
		cell := fmt.Sprintf("A%d", i+2)
		f.SetSheetRow(expenseSheet, cell, &[]interface{}{
			expense.ID,
			expense.Description,
			expense.Amount,
			expense.Category,
			expense.Date.Format("2006-01-02"),
			expense.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		InternalError(c, "failed to generate Excel file")
		return
	}

	filename := fmt.Sprintf("transactions_%s.xlsx", userID)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Header("Content-Length", fmt.Sprintf("%d", buf.Len()))

	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

package controllers

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"
	"github.com/tealeg/xlsx"

	"github.com/herventures/HerVentures/config"
	"github.com/herventures/HerVentures/models"
	"github.com/herventures/HerVentures/utils"
)

// reportPeriodRange resolves the report period query into a date range
func reportPeriodRange(period string) (time.Time, time.Time, error) {
	now := time.Now()
	switch period {
	case "day":
		start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		end := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 999999999, now.Location())
		return start, end, nil
	case "week":
		end := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 999999999, now.Location())
		start := end.AddDate(0, 0, -6)
		start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
		return start, end, nil
	case "month":
		start := now.AddDate(0, 0, -30).Truncate(24 * time.Hour)
		end := now.Add(24 * time.Hour)
		return start, end, nil
	}
	return time.Time{}, time.Time{}, fmt.Errorf("invalid period %q", period)
}

// commissionReportSummary aggregates a batch of commissions
type commissionReportSummary struct {
	TotalCommissions int
	TotalSales       float64
	TotalAccrued     float64
	TotalPending     float64
	TotalPaid        float64
	Ambassadors      int
}

func summarizeCommissions(commissions []models.Commission) commissionReportSummary {
	var summary commissionReportSummary
	ambassadorSet := make(map[uint]bool)
	for _, commission := range commissions {
		summary.TotalCommissions++
		summary.TotalSales += commission.SaleAmount
		summary.TotalAccrued += commission.Amount
		if commission.Status == models.CommissionStatusPaid {
			summary.TotalPaid += commission.Amount
		} else {
			summary.TotalPending += commission.Amount
		}
		ambassadorSet[commission.AmbassadorID] = true
	}
	summary.Ambassadors = len(ambassadorSet)
	summary.TotalSales = math.Round(summary.TotalSales*100) / 100
	summary.TotalAccrued = math.Round(summary.TotalAccrued*100) / 100
	summary.TotalPending = math.Round(summary.TotalPending*100) / 100
	summary.TotalPaid = math.Round(summary.TotalPaid*100) / 100
	return summary
}

func fetchCommissionsForReport(startDate, endDate time.Time) ([]models.Commission, error) {
	var commissions []models.Commission
	err := config.DB.Where("created_at >= ? AND created_at <= ?", startDate, endDate).
		Preload("Ambassador.User").
		Order("created_at DESC").
		Find(&commissions).Error
	return commissions, err
}

// Admin: Download commission report as Excel
func DownloadCommissionReportExcel(c *gin.Context) {
	utils.LogInfo("DownloadCommissionReportExcel called")

	period := c.DefaultQuery("period", "day")
	startDate, endDate, err := reportPeriodRange(period)
	if err != nil {
		utils.LogError("Invalid period specified: %s", period)
		utils.BadRequest(c, "Invalid period", "Period must be day, week, or month")
		return
	}

	commissions, err := fetchCommissionsForReport(startDate, endDate)
	if err != nil {
		utils.LogError("Failed to fetch commissions: %v", err)
		utils.InternalServerError(c, "Failed to fetch commissions", err.Error())
		return
	}
	utils.LogDebug("Retrieved %d commissions for Excel report", len(commissions))

	summary := summarizeCommissions(commissions)

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Commission Report")
	if err != nil {
		utils.LogError("Failed to create Excel sheet: %v", err)
		utils.InternalServerError(c, "Failed to create Excel sheet", err.Error())
		return
	}

	// Company details
	companyRow := sheet.AddRow()
	companyRow.AddCell().SetString("HERVENTURES - Ambassador Commission Report")
	companyRow = sheet.AddRow()
	companyRow.AddCell().SetString("Community portal for women entrepreneurs")
	companyRow = sheet.AddRow()
	companyRow.AddCell().SetString("Email: ambassadors@herventures.com")
	companyRow = sheet.AddRow()
	companyRow.AddCell().SetString("Period: " + strings.ToUpper(period) + " | " + startDate.Format("2006-01-02") + " to " + endDate.Format("2006-01-02"))
	sheet.AddRow() // spacing

	// Table headers
	headers := []string{"Commission ID", "Ambassador", "Referral Code", "Subscription ID", "Date", "Sale Amount", "Rate %", "Commission", "Status"}
	headerRow := sheet.AddRow()
	for _, h := range headers {
		cell := headerRow.AddCell()
		cell.SetString(h)
	}

	// Table rows
	for _, commission := range commissions {
		row := sheet.AddRow()
		row.AddCell().SetString(fmt.Sprintf("%d", commission.ID))
		row.AddCell().SetString(commission.Ambassador.User.Username)
		row.AddCell().SetString(commission.Ambassador.ReferralCode)
		row.AddCell().SetString(fmt.Sprintf("%d", commission.SubscriptionID))
		row.AddCell().SetString(commission.CreatedAt.Format("2006-01-02 15:04"))
		row.AddCell().SetString(fmt.Sprintf("%.2f", commission.SaleAmount))
		row.AddCell().SetString(fmt.Sprintf("%.2f", commission.Rate))
		row.AddCell().SetString(fmt.Sprintf("%.2f", commission.Amount))
		row.AddCell().SetString(commission.Status)
	}

	// Summary section
	sheet.AddRow()
	summaryRow := sheet.AddRow()
	summaryRow.AddCell().SetString("Summary")

	summaryData := [][]string{
		{"Total Commissions", fmt.Sprintf("%d", summary.TotalCommissions)},
		{"Attributed Sales", fmt.Sprintf("%.2f", summary.TotalSales)},
		{"Total Accrued", fmt.Sprintf("%.2f", summary.TotalAccrued)},
		{"Pending Payout", fmt.Sprintf("%.2f", summary.TotalPending)},
		{"Paid Out", fmt.Sprintf("%.2f", summary.TotalPaid)},
		{"Active Ambassadors", fmt.Sprintf("%d", summary.Ambassadors)},
	}
	for _, data := range summaryData {
		row := sheet.AddRow()
		row.AddCell().SetString(data[0])
		row.AddCell().SetString(data[1])
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=commission_report_%s.xlsx", period))
	if err := file.Write(c.Writer); err != nil {
		utils.LogError("Failed to write Excel file: %v", err)
		utils.InternalServerError(c, "Failed to write Excel file", err.Error())
		return
	}
	utils.LogInfo("Successfully generated Excel commission report for period %s", period)
}

// Admin: Download commission report as PDF
func DownloadCommissionReportPDF(c *gin.Context) {
	utils.LogInfo("DownloadCommissionReportPDF called")

	period := c.DefaultQuery("period", "day")
	startDate, endDate, err := reportPeriodRange(period)
	if err != nil {
		utils.LogError("Invalid period specified: %s", period)
		utils.BadRequest(c, "Invalid period", "Period must be day, week, or month")
		return
	}

	commissions, err := fetchCommissionsForReport(startDate, endDate)
	if err != nil {
		utils.LogError("Failed to fetch commissions: %v", err)
		utils.InternalServerError(c, "Failed to fetch commissions", err.Error())
		return
	}
	utils.LogDebug("Retrieved %d commissions for PDF report", len(commissions))

	summary := summarizeCommissions(commissions)

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()

	// Title
	pdf.SetFont("Arial", "B", 20)
	pdf.Cell(0, 12, "HERVENTURES - Ambassador Commission Report")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 8, "Community portal for women entrepreneurs")
	pdf.Ln(6)
	pdf.Cell(0, 8, "Period: "+strings.ToUpper(period)+" | "+startDate.Format("2006-01-02")+" to "+endDate.Format("2006-01-02"))
	pdf.Ln(10)

	// Table headers
	headers := []string{"ID", "Ambassador", "Code", "Sub ID", "Date", "Sale", "Rate %", "Commission", "Status"}
	colWidths := []float64{18, 45, 28, 20, 35, 28, 22, 30, 28}
	pdf.SetFont("Arial", "B", 11)
	for i, h := range headers {
		pdf.SetFillColor(200, 200, 200)
		pdf.CellFormat(colWidths[i], 9, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	// Table rows
	pdf.SetFont("Arial", "", 10)
	fill := false
	for _, commission := range commissions {
		pdf.SetFillColor(245, 245, 245)
		if fill {
			pdf.SetFillColor(230, 240, 255)
		}
		fill = !fill
		pdf.CellFormat(colWidths[0], 8, fmt.Sprintf("%d", commission.ID), "1", 0, "C", fill, 0, "")
		pdf.CellFormat(colWidths[1], 8, commission.Ambassador.User.Username, "1", 0, "L", fill, 0, "")
		pdf.CellFormat(colWidths[2], 8, commission.Ambassador.ReferralCode, "1", 0, "C", fill, 0, "")
		pdf.CellFormat(colWidths[3], 8, fmt.Sprintf("%d", commission.SubscriptionID), "1", 0, "C", fill, 0, "")
		pdf.CellFormat(colWidths[4], 8, commission.CreatedAt.Format("2006-01-02 15:04"), "1", 0, "C", fill, 0, "")
		pdf.CellFormat(colWidths[5], 8, fmt.Sprintf("%.2f", commission.SaleAmount), "1", 0, "R", fill, 0, "")
		pdf.CellFormat(colWidths[6], 8, fmt.Sprintf("%.2f", commission.Rate), "1", 0, "R", fill, 0, "")
		pdf.CellFormat(colWidths[7], 8, fmt.Sprintf("%.2f", commission.Amount), "1", 0, "R", fill, 0, "")
		pdf.CellFormat(colWidths[8], 8, commission.Status, "1", 0, "C", fill, 0, "")
		pdf.Ln(-1)
	}

	// Summary section
	pdf.Ln(8)
	pdf.SetFont("Arial", "B", 13)
	pdf.SetFillColor(220, 230, 250)
	pdf.CellFormat(70, 10, "Summary", "1", 0, "C", true, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 11)
	pdf.SetFillColor(255, 255, 255)
	summaryData := [][]string{
		{"Total Commissions", fmt.Sprintf("%d", summary.TotalCommissions)},
		{"Attributed Sales", fmt.Sprintf("%.2f", summary.TotalSales)},
		{"Total Accrued", fmt.Sprintf("%.2f", summary.TotalAccrued)},
		{"Pending Payout", fmt.Sprintf("%.2f", summary.TotalPending)},
		{"Paid Out", fmt.Sprintf("%.2f", summary.TotalPaid)},
		{"Active Ambassadors", fmt.Sprintf("%d", summary.Ambassadors)},
	}
	for _, data := range summaryData {
		pdf.CellFormat(50, 8, data[0], "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 8, data[1], "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=commission_report_%s.pdf", period))
	if err := pdf.Output(c.Writer); err != nil {
		utils.LogError("Failed to write PDF file: %v", err)
		utils.InternalServerError(c, "Failed to write PDF file", err.Error())
		return
	}
	utils.LogInfo("Successfully generated PDF commission report for period %s", period)
}

package Controllers

import (
	"fmt"
	"time"

	"Mydailylogs/Models"
	"Mydailylogs/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ReportController is the admin surface over submitted reports.
type ReportController struct {
	DB *gorm.DB
}

func NewReportController(db *gorm.DB) *ReportController {
	return &ReportController{DB: db}
}

// GetReports lists the organization's submitted reports, optionally filtered
// by ?start_date and ?end_date (YYYY-MM-DD).
func (r *ReportController) GetReports(ctx *fiber.Ctx) error {
	user, _ := middleware.CurrentUser(ctx)
	query := r.DB.Where("organization_id = ?", user.OrganizationID)

	if start := ctx.Query("start_date"); start != "" {
		from, err := time.Parse(Models.DateLayout, start)
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "start_date must be YYYY-MM-DD"})
		}
		query = query.Where("submitted_at >= ?", from)
	}
	if end := ctx.Query("end_date"); end != "" {
		to, err := time.Parse(Models.DateLayout, end)
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "end_date must be YYYY-MM-DD"})
		}
		// Inclusive through the whole end day.
		query = query.Where("submitted_at < ?", to.AddDate(0, 0, 1))
	}

	var reports []Models.SubmittedReport
	if err := query.Order("submitted_at DESC").Find(&reports).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve reports"})
	}
	return ctx.JSON(reports)
}

// GetReportByToken serves one report through its public share token.
func (r *ReportController) GetReportByToken(ctx *fiber.Ctx) error {
	token := ctx.Params("token")
	var report Models.SubmittedReport
	if err := r.DB.Where("share_token = ?", token).First(&report).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Report not found"})
	}
	return ctx.JSON(report)
}

// ExportReports streams the organization's reports as an XLSX workbook.
func (r *ReportController) ExportReports(ctx *fiber.Ctx) error {
	user, _ := middleware.CurrentUser(ctx)

	type exportRow struct {
		ID            uint
		TemplateTitle string
		SubmittedAt   time.Time
		Status        string
		SubmitterName string
	}
	var rows []exportRow
	err := r.DB.Table("submitted_reports").
		Select("submitted_reports.id, submitted_reports.template_title, submitted_reports.submitted_at, submitted_reports.status, users.name AS submitter_name").
		Joins("LEFT JOIN users ON users.id = submitted_reports.submitted_by").
		Where("submitted_reports.organization_id = ? AND submitted_reports.deleted_at IS NULL", user.OrganizationID).
		Order("submitted_reports.submitted_at DESC").
		Scan(&rows).Error
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve reports"})
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := "Reports"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to build export"})
	}

	headers := []string{"ID", "Checklist", "Submitted By", "Submitted At", "Status"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, header)
	}
	for i, row := range rows {
		values := []interface{}{
			row.ID,
			row.TemplateTitle,
			row.SubmitterName,
			row.SubmittedAt.Format("2006-01-02 15:04"),
			row.Status,
		}
		for j, value := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			f.SetCellValue(sheet, cell, value)
		}
	}

	buffer, err := f.WriteToBuffer()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to build export"})
	}
	filename := fmt.Sprintf("reports_%s.xlsx", time.Now().Format("2006-01-02"))
	ctx.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	return ctx.Send(buffer.Bytes())
}

package controllers

import (
	"fmt"
	"net/http"
	"time"

	"gearguard/internal/dto"
	"gearguard/internal/services"
	"gearguard/pkg/utils"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const requestsSheet = "Requests"

var requestExportHeaders = []interface{}{
	"ID", "Type", "Subject", "Description", "Equipment ID", "Equipment category",
	"Team ID", "Scheduled date", "Duration (h)", "Assigned to", "Created by", "Stage",
	"Created at", "Updated at",
}

type ReportController struct {
	baseController
	reportService services.ReportServiceInterface
}

func NewReportController(reportService services.ReportServiceInterface, logger *zap.Logger, timeout time.Duration) *ReportController {
	return &ReportController{
		baseController: newBaseController(logger, timeout),
		reportService:  reportService,
	}
}

func (c *ReportController) GetSummary(ctx echo.Context) error {
	reqCtx, cancel := c.requestContext(ctx)
	defer cancel()

	summary, err := c.reportService.Summary(reqCtx, ctx.QueryParam("range"))
	if err != nil {
		return c.fail(ctx, err)
	}
	return utils.SuccessResponse(ctx, summary, http.StatusOK)
}

// ExportRequests streams the filtered request list as an xlsx workbook.
func (c *ReportController) ExportRequests(ctx echo.Context) error {
	reqCtx, cancel := c.requestContext(ctx)
	defer cancel()

	items, err := c.reportService.ExportRequests(reqCtx, requestFilterFromQuery(ctx))
	if err != nil {
		return c.fail(ctx, err)
	}

	f, err := buildRequestsWorkbook(items)
	if err != nil {
		return c.fail(ctx, err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			c.logger.Warn("close workbook", zap.Error(err))
		}
	}()

	fileName := fmt.Sprintf("requests_%s.xlsx", time.Now().UTC().Format("20060102_150405"))
	ctx.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, fileName))
	ctx.Response().WriteHeader(http.StatusOK)
	return f.Write(ctx.Response().Writer)
}

func buildRequestsWorkbook(items []dto.RequestOutDTO) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", requestsSheet); err != nil {
		return nil, err
	}

	if err := f.SetSheetRow(requestsSheet, "A1", &requestExportHeaders); err != nil {
		return nil, err
	}
	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	lastCol, err := excelize.ColumnNumberToName(len(requestExportHeaders))
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(requestsSheet, "A1", lastCol+"1", headerStyle); err != nil {
		return nil, err
	}

	for i, r := range items {
		row := []interface{}{
			r.ID, r.Type, r.Subject, r.Description, r.EquipmentID, r.EquipmentCategory,
			r.MaintenanceTeamID, utils.SafeDeref(r.ScheduledDate), "", utils.SafeDeref(r.AssignedToID), r.CreatedByID, r.Stage,
			r.CreatedAt, r.UpdatedAt,
		}
		if r.DurationHours != nil {
			row[8] = *r.DurationHours
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(requestsSheet, cell, &row); err != nil {
			return nil, err
		}
	}
	return f, nil
}

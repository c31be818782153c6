package handler

import (
	"bytes"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"claimflow/internal/model"
	"claimflow/internal/report"
	"claimflow/internal/service"
)

type reportResponse struct {
	Data        []model.ClaimReportRow `json:"data"`
	Count       int                    `json:"count"`
	TotalHours  decimal.Decimal        `json:"total_hours"`
	TotalAmount decimal.Decimal        `json:"total_amount"`
}

func reportFilter(c *fiber.Ctx) service.ReportFilter {
	return service.ReportFilter{MonthKey: c.Query("month"), Status: c.Query("status")}
}

// Report godoc
// @Summary  HR payment report. Status defaults to ApprovedByManager; "all" disables the filter
// @Tags     hr
// @Produce  json
// @Param    month  query string false "YYYY-MM"
// @Param    status query string false "claim status or all"
// @Success  200 {object} reportResponse
// @Router   /api/v1/hr/report [get]
func Report(svc service.ClaimService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := principal(c)
		if err != nil {
			return err
		}
		rows, err := svc.Report(c.UserContext(), p, reportFilter(c))
		if err != nil {
			return respondError(c, err)
		}
		res := reportResponse{Data: rows, Count: len(rows), TotalHours: decimal.Zero, TotalAmount: decimal.Zero}
		for i := range rows {
			res.TotalHours = res.TotalHours.Add(rows[i].Claim.Hours)
			res.TotalAmount = res.TotalAmount.Add(rows[i].Claim.Amount())
		}
		return c.JSON(res)
	}
}

// ReportXLSX godoc
// @Summary  HR payment report as a spreadsheet
// @Tags     hr
// @Produce  application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param    month  query string false "YYYY-MM"
// @Param    status query string false "claim status or all"
// @Success  200 {file} file
// @Router   /api/v1/hr/report.xlsx [get]
func ReportXLSX(svc service.ClaimService, loc *time.Location) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := principal(c)
		if err != nil {
			return err
		}
		f := reportFilter(c)
		rows, err := svc.Report(c.UserContext(), p, f)
		if err != nil {
			return respondError(c, err)
		}

		var buf bytes.Buffer
		if err := report.WriteXLSX(&buf, rows, loc); err != nil {
			return err
		}
		c.Set(fiber.HeaderContentType, report.ContentType)
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", report.FileName(f.MonthKey)))
		return c.Send(buf.Bytes())
	}
}

// ReportMonths godoc
// @Summary  Months that have claims, latest first
// @Tags     hr
// @Produce  json
// @Success  200 {object} map[string]interface{}
// @Router   /api/v1/hr/report/months [get]
func ReportMonths(svc service.ClaimService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := principal(c)
		if err != nil {
			return err
		}
		months, err := svc.ReportMonths(c.UserContext(), p)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"data": months})
	}
}

// ListUsers godoc
// @Summary  List accounts
// @Tags     hr
// @Produce  json
// @Param    limit  query int false "page size" default(50)
// @Param    offset query int false "offset"    default(0)
// @Success  200 {object} service.UserListResult
// @Router   /api/v1/hr/users [get]
func ListUsers(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := principal(c)
		if err != nil {
			return err
		}
		limit, offset, ok, err := pageParams(c, 50)
		if !ok {
			return err
		}
		res, err := svc.List(c.UserContext(), p, limit, offset)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(res)
	}
}

// CreateUser godoc
// @Summary  Create an account
// @Tags     hr
// @Accept   json
// @Produce  json
// @Param    body body userRequest true "user"
// @Success  201 {object} model.User
// @Failure  409 {object} errorPayload
// @Router   /api/v1/hr/users [post]
func CreateUser(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := principal(c)
		if err != nil {
			return err
		}
		var req userRequest
		if ok, err := bind(c, &req); !ok {
			return err
		}
		u, err := svc.Create(c.UserContext(), p, service.NewUser{
			UserName:   req.UserName,
			Email:      req.Email,
			FirstName:  req.FirstName,
			LastName:   req.LastName,
			Role:       req.Role,
			HourlyRate: req.HourlyRate,
		})
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(u)
	}
}

// SetRate godoc
// @Summary  Change a lecturer's hourly rate
// @Tags     hr
// @Accept   json
// @Param    id   path string      true "user id"
// @Param    body body rateRequest true "rate"
// @Success  204
// @Router   /api/v1/hr/users/{id}/rate [put]
func SetRate(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := principal(c)
		if err != nil {
			return err
		}
		var req rateRequest
		if ok, err := bind(c, &req); !ok {
			return err
		}
		if err := svc.SetRate(c.UserContext(), p, c.Params("id"), req.HourlyRate); err != nil {
			return respondError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

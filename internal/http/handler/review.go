package handler

import (
	"github.com/gofiber/fiber/v2"

	"claimflow/internal/model"
	"claimflow/internal/repository"
	"claimflow/internal/service"
)

// ReviewQueue godoc
// @Summary  Claims waiting on the caller's review stage, oldest first
// @Tags     workflow
// @Produce  json
// @Success  200 {object} map[string]interface{}
// @Failure  403 {object} errorPayload
// @Router   /api/v1/review/queue [get]
func ReviewQueue(svc service.ClaimService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := principal(c)
		if err != nil {
			return err
		}
		claims, err := svc.Queue(c.UserContext(), p)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"data": claims})
	}
}

// ListClaims godoc
// @Summary  All claims, filterable by status and month
// @Tags     workflow
// @Produce  json
// @Param    status query string false "claim status"
// @Param    month  query string false "YYYY-MM"
// @Param    limit  query int    false "page size" default(20)
// @Param    offset query int    false "offset"    default(0)
// @Success  200 {object} service.ClaimListResult
// @Router   /api/v1/review/claims [get]
func ListClaims(svc service.ClaimService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := principal(c)
		if err != nil {
			return err
		}
		limit, offset, ok, err := pageParams(c, 20)
		if !ok {
			return err
		}
		f := repository.ClaimFilter{MonthKey: c.Query("month")}
		if s := c.Query("status"); s != "" {
			st, err := model.ParseClaimStatus(s)
			if err != nil {
				return writeError(c, fiber.StatusBadRequest, "INVALID_STATUS", err.Error())
			}
			f.Status = st
		}

		res, err := svc.Overview(c.UserContext(), p, f, limit, offset)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(res)
	}
}

package handler

import (
	"github.com/gofiber/fiber/v2"

	"claimflow/internal/claim"
	"claimflow/internal/service"
)

// Me godoc
// @Summary  Current principal
// @Tags     session
// @Produce  json
// @Success  200 {object} map[string]interface{}
// @Router   /api/v1/me [get]
func Me() fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := principal(c)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{
			"user_id":     p.UserID,
			"name":        p.Name,
			"role":        p.Role,
			"hourly_rate": p.HourlyRate,
		})
	}
}

// ListMyClaims godoc
// @Summary  List the caller's claims
// @Tags     claims
// @Produce  json
// @Success  200 {object} map[string]interface{}
// @Router   /api/v1/claims [get]
func ListMyClaims(svc service.ClaimService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := principal(c)
		if err != nil {
			return err
		}
		claims, err := svc.ListMine(c.UserContext(), p)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"data": claims})
	}
}

// CreateClaim godoc
// @Summary  Create a claim as Draft, or submit it directly with "submit": true
// @Tags     claims
// @Accept   json
// @Produce  json
// @Param    body body claimRequest true "claim"
// @Success  201 {object} model.Claim
// @Failure  409 {object} errorPayload
// @Failure  422 {object} errorPayload
// @Router   /api/v1/claims [post]
func CreateClaim(svc service.ClaimService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := principal(c)
		if err != nil {
			return err
		}
		var req claimRequest
		if ok, err := bind(c, &req); !ok {
			return err
		}

		create := svc.Create
		if req.Submit {
			create = svc.SubmitNew
		}
		cl, err := create(c.UserContext(), p, req.input())
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(cl)
	}
}

// QuoteClaim godoc
// @Summary  Price a claim without saving it
// @Tags     claims
// @Accept   json
// @Produce  json
// @Param    body body claimRequest true "claim"
// @Success  200 {object} service.Quote
// @Router   /api/v1/claims/quote [post]
func QuoteClaim(svc service.ClaimService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := principal(c)
		if err != nil {
			return err
		}
		var req claimRequest
		if ok, err := bind(c, &req); !ok {
			return err
		}
		q, err := svc.Quote(c.UserContext(), p, req.input())
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(q)
	}
}

// GetClaim godoc
// @Summary  Get a claim with its attachments
// @Tags     claims
// @Produce  json
// @Param    id path string true "claim id"
// @Success  200 {object} model.Claim
// @Failure  404 {object} errorPayload
// @Router   /api/v1/claims/{id} [get]
func GetClaim(svc service.ClaimService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := principal(c)
		if err != nil {
			return err
		}
		id, ok, err := idParam(c)
		if !ok {
			return err
		}
		cl, err := svc.Get(c.UserContext(), p, id)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(cl)
	}
}

// EditClaim godoc
// @Summary  Edit a Draft or Rejected claim
// @Tags     claims
// @Accept   json
// @Produce  json
// @Param    id   path string       true "claim id"
// @Param    body body claimRequest true "claim"
// @Success  200 {object} model.Claim
// @Failure  409 {object} errorPayload
// @Router   /api/v1/claims/{id} [put]
func EditClaim(svc service.ClaimService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := principal(c)
		if err != nil {
			return err
		}
		id, ok, err := idParam(c)
		if !ok {
			return err
		}
		var req claimRequest
		if ok, err := bind(c, &req); !ok {
			return err
		}
		cl, err := svc.Edit(c.UserContext(), p, id, req.input())
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(cl)
	}
}

// TransitionClaim applies a fixed workflow action to the claim in :id.
// The optional body carries a reviewer remark.
//
// @Summary  Apply a workflow action (submit, verify, approve, finalise)
// @Tags     workflow
// @Accept   json
// @Produce  json
// @Param    id   path string        true  "claim id"
// @Param    body body remarkRequest false "remark"
// @Success  200 {object} model.Claim
// @Failure  403 {object} errorPayload
// @Failure  409 {object} errorPayload
// @Router   /api/v1/claims/{id}/submit [post]
// @Router   /api/v1/claims/{id}/verify [post]
// @Router   /api/v1/claims/{id}/approve [post]
// @Router   /api/v1/claims/{id}/finalise [post]
func TransitionClaim(svc service.ClaimService, action claim.Action) fiber.Handler {
	return transition(svc, action)
}

// RejectClaim rejects the claim at the caller's review stage.
//
// @Summary  Reject a claim back to the lecturer
// @Tags     workflow
// @Accept   json
// @Produce  json
// @Param    id   path string        true  "claim id"
// @Param    body body remarkRequest false "remark"
// @Success  200 {object} model.Claim
// @Router   /api/v1/claims/{id}/reject [post]
func RejectClaim(svc service.ClaimService) fiber.Handler {
	return transition(svc, "")
}

// transition runs action on :id. An empty action resolves to the reject action of the caller's role.
func transition(svc service.ClaimService, action claim.Action) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := principal(c)
		if err != nil {
			return err
		}
		id, ok, err := idParam(c)
		if !ok {
			return err
		}
		var req remarkRequest
		if ok, err := bind(c, &req); !ok {
			return err
		}

		act := action
		if act == "" {
			if act, ok = claim.RejectActionFor(p.Role); !ok {
				return respondError(c, claim.ErrForbidden)
			}
		}

		cl, err := svc.Transition(c.UserContext(), p, id, act, req.Remark)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(cl)
	}
}

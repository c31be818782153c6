package middleware

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"claimflow/internal/config"
	"claimflow/internal/model"
	"claimflow/internal/service"
)

const (
	// PrincipalLocalKey stores the acting model.Principal in Fiber locals.
	PrincipalLocalKey = "principal"
	// DevUserHeader names the user directly when the development bypass is on.
	DevUserHeader = "X-User-ID"
)

// Auth resolves the acting principal from a bearer token (HS256, subject = user id),
// or from X-User-ID when cfg.DevBypass is set. Failures end the request with 401.
func Auth(cfg config.AuthConfig, users service.PrincipalResolver, log logrus.FieldLogger) fiber.Handler {
	key := []byte(cfg.JWTSecret)
	log = log.WithField("component", "auth")

	return func(c *fiber.Ctx) error {
		userID, err := subject(c, cfg.DevBypass, key)
		if err != nil {
			log.WithField("event", "auth_rejected").WithError(err).Debug("unauthenticated request")
			return fiber.NewError(fiber.StatusUnauthorized, "authentication required")
		}

		p, err := users.Resolve(c.UserContext(), userID)
		if err != nil {
			if errors.Is(err, service.ErrUnknownUser) {
				return fiber.NewError(fiber.StatusUnauthorized, "unknown user")
			}
			return err
		}

		c.Locals(PrincipalLocalKey, p)
		return c.Next()
	}
}

// subject returns the canonical user id the request claims to act as.
func subject(c *fiber.Ctx, devBypass bool, key []byte) (string, error) {
	if devBypass {
		if id := strings.TrimSpace(c.Get(DevUserHeader)); id != "" {
			return userID(id)
		}
	}

	header := c.Get(fiber.HeaderAuthorization)
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "bearer") || token == "" {
		return "", errors.New("missing bearer token")
	}
	if len(key) == 0 {
		return "", errors.New("token auth not configured")
	}

	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", err
	}
	if claims.Subject == "" {
		return "", errors.New("token has no subject")
	}
	return userID(claims.Subject)
}

// userID rejects subjects that cannot name a user row.
func userID(s string) (string, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return "", fmt.Errorf("subject is not a user id: %w", err)
	}
	return id.String(), nil
}

// PrincipalFrom returns the principal stored by Auth.
func PrincipalFrom(c *fiber.Ctx) (model.Principal, bool) {
	p, ok := c.Locals(PrincipalLocalKey).(model.Principal)
	return p, ok
}

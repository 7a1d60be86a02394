package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/sefazor/groupslot-backend/internal/apperror"
	"github.com/sefazor/groupslot-backend/pkg/captcha"
)

const CaptchaHeader = "X-Turnstile-Token"

// CaptchaMiddleware rejects requests whose Turnstile token does not verify.
// A disabled verifier lets everything through.
func CaptchaMiddleware(verifier *captcha.Turnstile) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !verifier.Enabled() {
			return c.Next()
		}

		ok, err := verifier.Verify(c.UserContext(), c.Get(CaptchaHeader), c.IP())
		if err != nil {
			if errors.Is(err, captcha.ErrMissingToken) {
				return apperror.NewMissingFields("missing captcha token")
			}
			return apperror.NewInternal("captcha verification failed", err)
		}
		if !ok {
			return apperror.NewForbidden("captcha verification failed")
		}
		return c.Next()
	}
}

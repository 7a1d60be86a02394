package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/sefazor/groupslot-backend/internal/apperror"
	"github.com/sefazor/groupslot-backend/pkg/captcha"
)

func newCaptchaApp(verifier *captcha.Turnstile) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if appErr, ok := apperror.FromError(err); ok {
				return c.SendStatus(appErr.StatusCode())
			}
			return c.SendStatus(fiber.StatusInternalServerError)
		},
	})
	app.Post("/", CaptchaMiddleware(verifier), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})
	return app
}

func TestCaptchaMiddleware(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		json.NewEncoder(w).Encode(captcha.TurnstileResponse{Success: r.PostForm.Get("response") == "human"})
	}))
	defer srv.Close()

	tests := []struct {
		name     string
		verifier *captcha.Turnstile
		token    string
		want     int
	}{
		{"disabled", captcha.NewTurnstile("", ""), "", fiber.StatusNoContent},
		{"valid token", captcha.NewTurnstile("secret", srv.URL), "human", fiber.StatusNoContent},
		{"rejected token", captcha.NewTurnstile("secret", srv.URL), "bot", fiber.StatusForbidden},
		{"missing token", captcha.NewTurnstile("secret", srv.URL), "", fiber.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", nil)
			if tt.token != "" {
				req.Header.Set(CaptchaHeader, tt.token)
			}
			resp, err := newCaptchaApp(tt.verifier).Test(req)
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			if resp.StatusCode != tt.want {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.want)
			}
		})
	}
}

package captcha

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestTurnstile_Disabled(t *testing.T) {
	ok, err := NewTurnstile("", "").Verify(context.Background(), "", "")
	if err != nil || !ok {
		t.Fatalf("disabled verifier: ok=%v err=%v", ok, err)
	}
}

func TestTurnstile_Verify(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		if r.PostForm.Get("secret") != "s3cret" {
			t.Errorf("secret = %q", r.PostForm.Get("secret"))
		}
		json.NewEncoder(w).Encode(TurnstileResponse{Success: r.PostForm.Get("response") == "good"})
	}))
	defer srv.Close()

	v := NewTurnstile("s3cret", srv.URL)
	tests := []struct {
		token string
		want  bool
	}{
		{"good", true},
		{"bad", false},
	}
	for _, tt := range tests {
		ok, err := v.Verify(context.Background(), tt.token, "127.0.0.1")
		if err != nil {
			t.Fatalf("verify %q: %v", tt.token, err)
		}
		if ok != tt.want {
			t.Errorf("verify %q = %v, want %v", tt.token, ok, tt.want)
		}
	}

	if _, err := v.Verify(context.Background(), "", ""); !errors.Is(err, ErrMissingToken) {
		t.Errorf("empty token: expected ErrMissingToken, got %v", err)
	}
}

func TestTurnstile_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	if _, err := NewTurnstile("s3cret", srv.URL).Verify(context.Background(), "tok", ""); err == nil {
		t.Fatal("expected error")
	}
}

package service

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/sefazor/groupslot-backend/internal/config"
	"github.com/sefazor/groupslot-backend/internal/models"
	"github.com/sefazor/groupslot-backend/internal/testutil"
	"github.com/sefazor/groupslot-backend/pkg/bcrypt"
	"github.com/sefazor/groupslot-backend/pkg/jwt"
	"github.com/sefazor/groupslot-backend/pkg/qrcode"
)

const testSecret = "test-secret"

type testEnv struct {
	store   *testutil.Store
	mailer  *testutil.Mailer
	tokens  *jwt.Issuer
	cascade *CascadeService
	auth    *AuthService
	users   *UserService
	events  *EventService
	avails  *AvailabilityService
}

func newTestEnv(t *testing.T, followMode string) *testEnv {
	t.Helper()

	logger := zap.NewNop()
	store := testutil.NewStore()
	mailer := &testutil.Mailer{}
	tx := testutil.Tx{}
	users, events, avails := store.Users(), store.Events(), store.Availabilities()

	hasher := bcrypt.NewHasher(4)
	tokens := jwt.NewIssuer(testSecret, 24*time.Hour, 30*24*time.Hour)
	cascade := NewCascadeService(tx, users, events, avails, logger)

	return &testEnv{
		store:   store,
		mailer:  mailer,
		tokens:  tokens,
		cascade: cascade,
		auth: NewAuthService(users, cascade, hasher, tokens, mailer, NewCodeGenerator(8, 10), AuthSettings{
			UnconfirmedUserTTL:  24 * time.Hour,
			ConfirmationBaseURL: "http://localhost:3000",
		}, logger),
		users:  NewUserService(tx, users, events, avails, cascade, hasher, NewCodeGenerator(8, 10), qrcode.NewQRService("http://localhost:3000/friends/", 128), followMode, logger),
		events: NewEventService(tx, events, cascade, NewCodeGenerator(6, 10), qrcode.NewQRService("http://localhost:3000/join/", 128), logger),
		avails: NewAvailabilityService(tx, avails),
	}
}

func newMirrorEnv(t *testing.T) *testEnv {
	return newTestEnv(t, config.FollowModeMirror)
}

// confirmedUser registers and confirms an account and returns it.
func (e *testEnv) confirmedUser(t *testing.T, name string) *models.User {
	t.Helper()
	ctx := context.Background()

	user, err := e.auth.Register(ctx, models.RegisterRequest{
		Username:        name,
		Email:           name + "@example.com",
		Password:        "pass",
		ConfirmPassword: "pass",
	})
	if err != nil {
		t.Fatalf("register %s: %v", name, err)
	}
	confirmed, err := e.auth.Confirm(ctx, user.UserCode)
	if err != nil {
		t.Fatalf("confirm %s: %v", name, err)
	}
	return confirmed
}

func (e *testEnv) createEvent(t *testing.T, userID string, restricted bool) *models.Event {
	t.Helper()
	start := time.Now().Add(24 * time.Hour)
	event, err := e.events.CreateEvent(context.Background(), userID, models.EventRequest{
		Name:       "Board game night",
		StartDate:  start,
		EndDate:    start.Add(3 * time.Hour),
		Restricted: restricted,
	})
	if err != nil {
		t.Fatalf("create event: %v", err)
	}
	return event
}

func (e *testEnv) user(t *testing.T, id string) *models.User {
	t.Helper()
	user, err := e.store.Users().GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("get user %s: %v", id, err)
	}
	return user
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

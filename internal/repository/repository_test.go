package repository_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/sefazor/groupslot-backend/internal/models"
	"github.com/sefazor/groupslot-backend/internal/repository"
	"github.com/sefazor/groupslot-backend/pkg/database"
)

func setup(t *testing.T) *gorm.DB {
	t.Helper()
	_ = godotenv.Load("../../.env")
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("DATABASE_URL not set")
	}
	db, err := database.NewDatabase(dbURL, "error")
	if err != nil {
		t.Fatalf("db: %v", err)
	}
	if err := database.RunMigrations(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func newUser(t *testing.T, repo *repository.UserRepository) *models.User {
	t.Helper()
	id := uuid.New().String()
	expires := time.Now().Add(time.Hour)
	user := &models.User{
		ID:               id,
		Username:         "test",
		Email:            fmt.Sprintf("test-%s@test.com", id[:8]),
		Password:         "hash",
		UserCode:         id[:8],
		RegistrationDate: time.Now(),
		ExpirationDate:   &expires,
	}
	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	t.Cleanup(func() { repo.Delete(context.Background(), id) })
	return user
}

func TestUserRepository_UniqueIndexes(t *testing.T) {
	db := setup(t)
	repo := repository.NewUserRepository(db)
	ctx := context.Background()
	user := newUser(t, repo)

	dupEmail := *user
	dupEmail.ID = uuid.New().String()
	dupEmail.UserCode = dupEmail.ID[:8]
	if err := repo.Create(ctx, &dupEmail); !errors.Is(err, repository.ErrDuplicateKey) {
		t.Errorf("duplicate email: expected ErrDuplicateKey, got %v", err)
	}

	dupCode := *user
	dupCode.ID = uuid.New().String()
	dupCode.Email = "other-" + user.Email
	if err := repo.Create(ctx, &dupCode); !errors.Is(err, repository.ErrDuplicateKey) {
		t.Errorf("duplicate code: expected ErrDuplicateKey, got %v", err)
	}

	if _, err := repo.GetByID(ctx, uuid.New().String()); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("missing user: expected ErrNotFound, got %v", err)
	}
}

func TestUserRepository_FollowEdges(t *testing.T) {
	db := setup(t)
	repo := repository.NewUserRepository(db)
	ctx := context.Background()
	a, b := newUser(t, repo), newUser(t, repo)

	for i := 0; i < 2; i++ {
		if err := repo.AddFollowing(ctx, a.ID, b.ID); err != nil {
			t.Fatalf("add following: %v", err)
		}
	}
	if err := repo.AddFollower(ctx, b.ID, a.ID); err != nil {
		t.Fatalf("add follower: %v", err)
	}

	got, err := repo.GetByID(ctx, a.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.FollowingIDs) != 1 || got.FollowingIDs[0] != b.ID {
		t.Errorf("following = %v", got.FollowingIDs)
	}

	if err := repo.RemoveFollowEdges(ctx, b.ID); err != nil {
		t.Fatalf("remove edges: %v", err)
	}
	got, _ = repo.GetByID(ctx, a.ID)
	if len(got.FollowingIDs) != 0 {
		t.Errorf("following after removal = %v", got.FollowingIDs)
	}
}

func TestUserRepository_FindExpiredUnconfirmed(t *testing.T) {
	db := setup(t)
	repo := repository.NewUserRepository(db)
	user := newUser(t, repo)

	ids, err := repo.FindExpiredUnconfirmed(context.Background(), time.Now().Add(2*time.Hour), 1000)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	found := false
	for _, id := range ids {
		found = found || id == user.ID
	}
	if !found {
		t.Error("expired user not returned")
	}
}

func TestEventRepository_Membership(t *testing.T) {
	db := setup(t)
	users := repository.NewUserRepository(db)
	events := repository.NewEventRepository(db)
	ctx := context.Background()
	user := newUser(t, users)

	event := &models.Event{
		ID:        uuid.New().String(),
		Name:      "test",
		StartDate: time.Now(),
		EndDate:   time.Now().Add(time.Hour),
		EventCode: uuid.New().String()[:6],
	}
	if err := events.Create(ctx, event); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := events.AddParticipant(ctx, event.ID, user.ID); err != nil {
		t.Fatalf("add participant: %v", err)
	}
	if err := events.AddAdmin(ctx, event.ID, user.ID); err != nil {
		t.Fatalf("add admin: %v", err)
	}

	hydrated, err := users.GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if len(hydrated.EventIDs) != 1 || hydrated.EventIDs[0] != event.ID {
		t.Errorf("user events = %v", hydrated.EventIDs)
	}

	if err := events.RemoveParticipant(ctx, event.ID, user.ID); err != nil {
		t.Fatalf("remove participant: %v", err)
	}
	got, err := events.GetByID(ctx, event.ID)
	if err != nil {
		t.Fatalf("get event: %v", err)
	}
	if len(got.ParticipantIDs) != 0 || len(got.AdminIDs) != 0 {
		t.Errorf("membership left: %v %v", got.ParticipantIDs, got.AdminIDs)
	}

	if err := events.Delete(ctx, event.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := events.Delete(ctx, event.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("second delete: expected ErrNotFound, got %v", err)
	}
}

func TestAvailabilityRepository_Upsert(t *testing.T) {
	db := setup(t)
	users := repository.NewUserRepository(db)
	repo := repository.NewAvailabilityRepository(db)
	ctx := context.Background()
	user := newUser(t, users)
	t.Cleanup(func() { repo.DeleteByUser(ctx, user.ID) })

	record := &models.Availability{
		UserID: user.ID, ID: "slot", Description: "a", Status: "free",
		StartDate: time.Now(), EndDate: time.Now().Add(time.Hour),
	}
	if err := repo.Upsert(ctx, record); err != nil {
		t.Fatalf("insert: %v", err)
	}
	record.Status = "busy"
	if err := repo.Upsert(ctx, record); err != nil {
		t.Fatalf("update: %v", err)
	}

	list, err := repo.ListByUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].Status != "busy" {
		t.Errorf("list = %+v", list)
	}
}

// A failed insert inside a savepoint leaves the outer transaction usable, so
// a code collision can be retried within it.
func TestTransactor_NestedRetry(t *testing.T) {
	db := setup(t)
	tx := repository.NewTransactor(db)
	repo := repository.NewUserRepository(db)
	ctx := context.Background()
	existing := newUser(t, repo)

	id := uuid.New().String()
	err := tx.WithinTransaction(ctx, func(ctx context.Context) error {
		user := &models.User{
			ID: id, Username: "retry", Email: fmt.Sprintf("retry-%s@test.com", id[:8]),
			Password: "hash", UserCode: existing.UserCode, RegistrationDate: time.Now(),
		}
		err := tx.WithinTransaction(ctx, func(ctx context.Context) error { return repo.Create(ctx, user) })
		if !errors.Is(err, repository.ErrDuplicateKey) {
			return fmt.Errorf("expected duplicate, got %v", err)
		}
		user.UserCode = id[:8]
		return tx.WithinTransaction(ctx, func(ctx context.Context) error { return repo.Create(ctx, user) })
	})
	if err != nil {
		t.Fatalf("transaction: %v", err)
	}
	t.Cleanup(func() { repo.Delete(context.Background(), id) })
}

func TestUserRepository_ConcurrentCodes(t *testing.T) {
	db := setup(t)
	repo := repository.NewUserRepository(db)
	ctx := context.Background()
	code := uuid.New().String()[:8]

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		success int
	)
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := uuid.New().String()
			err := repo.Create(ctx, &models.User{
				ID: id, Username: "c", Email: fmt.Sprintf("c-%s@test.com", id[:8]),
				Password: "hash", UserCode: code, RegistrationDate: time.Now(),
			})
			if err == nil {
				mu.Lock()
				success++
				mu.Unlock()
				t.Cleanup(func() { repo.Delete(context.Background(), id) })
			}
		}()
	}
	wg.Wait()

	if success != 1 {
		t.Errorf("%d inserts won the same code, want 1", success)
	}
}

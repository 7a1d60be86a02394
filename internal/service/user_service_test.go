package service

import (
	"context"
	"testing"

	"github.com/sefazor/groupslot-backend/internal/apperror"
	"github.com/sefazor/groupslot-backend/internal/config"
	"github.com/sefazor/groupslot-backend/internal/models"
)

func TestFollow_Modes(t *testing.T) {
	tests := []struct {
		mode              string
		targetFollowing   bool
		targetFollowers   bool
		followerFollowers bool
	}{
		{mode: config.FollowModeMirror, targetFollowing: true},
		{mode: config.FollowModeDirected, targetFollowers: true},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			ctx := context.Background()
			env := newTestEnv(t, tt.mode)
			alice := env.confirmedUser(t, "alice")
			bob := env.confirmedUser(t, "bob")

			for i := 0; i < 2; i++ {
				if _, err := env.users.Follow(ctx, alice.ID, bob.ID); err != nil {
					t.Fatalf("follow: %v", err)
				}
			}

			a, b := env.user(t, alice.ID), env.user(t, bob.ID)
			if len(a.FollowingIDs) != 1 || a.FollowingIDs[0] != bob.ID {
				t.Errorf("follower following = %v", a.FollowingIDs)
			}
			if got := containsID(b.FollowingIDs, alice.ID); got != tt.targetFollowing {
				t.Errorf("target following has follower = %v, want %v", got, tt.targetFollowing)
			}
			if got := containsID(b.FollowerIDs, alice.ID); got != tt.targetFollowers {
				t.Errorf("target followers has follower = %v, want %v", got, tt.targetFollowers)
			}
			if got := len(a.FollowerIDs) > 0; got != tt.followerFollowers {
				t.Errorf("follower followers = %v", a.FollowerIDs)
			}

			if _, err := env.users.Unfollow(ctx, alice.ID, bob.ID); err != nil {
				t.Fatalf("unfollow: %v", err)
			}
			a, b = env.user(t, alice.ID), env.user(t, bob.ID)
			if len(a.FollowingIDs)+len(b.FollowingIDs)+len(b.FollowerIDs) != 0 {
				t.Errorf("edges left after unfollow: %v %v %v", a.FollowingIDs, b.FollowingIDs, b.FollowerIDs)
			}
		})
	}
}

func TestFollow_Errors(t *testing.T) {
	ctx := context.Background()
	env := newMirrorEnv(t)
	alice := env.confirmedUser(t, "alice")

	if _, err := env.users.Follow(ctx, alice.ID, alice.ID); !apperror.Is(err, apperror.Validation) {
		t.Errorf("self follow: expected Validation, got %v", err)
	}
	if _, err := env.users.Follow(ctx, alice.ID, "missing"); !apperror.Is(err, apperror.UserNotFound) {
		t.Errorf("unknown target: expected UserNotFound, got %v", err)
	}
}

func TestFollow_DeletedFollowerWritesNothing(t *testing.T) {
	ctx := context.Background()
	env := newMirrorEnv(t)
	alice := env.confirmedUser(t, "alice")
	bob := env.confirmedUser(t, "bob")

	if err := env.users.DeleteAccount(ctx, alice.ID); err != nil {
		t.Fatalf("delete account: %v", err)
	}

	_, err := env.users.Follow(ctx, alice.ID, bob.ID)
	if !apperror.Is(err, apperror.Unauthorized) {
		t.Fatalf("expected Unauthorized, got %v", err)
	}

	b := env.user(t, bob.ID)
	if containsID(b.FollowingIDs, alice.ID) || containsID(b.FollowerIDs, alice.ID) {
		t.Errorf("deleted user left in bob's lists: following=%v followers=%v", b.FollowingIDs, b.FollowerIDs)
	}
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()
	env := newMirrorEnv(t)
	alice := env.confirmedUser(t, "alice")
	name := "Alice"

	updated, err := env.users.UpdateProfile(ctx, alice.ID, models.UpdateProfileRequest{Username: &name})
	if err != nil {
		t.Fatalf("rename: %v", err)
	}
	if updated.Username != name {
		t.Errorf("username = %q", updated.Username)
	}

	_, err = env.users.UpdateProfile(ctx, alice.ID, models.UpdateProfileRequest{OldPassword: "wrong", NewPassword: "secret"})
	if !apperror.Is(err, apperror.InvalidCredentials) {
		t.Fatalf("wrong old password: expected InvalidCredentials, got %v", err)
	}

	if _, err := env.users.UpdateProfile(ctx, alice.ID, models.UpdateProfileRequest{OldPassword: "pass", NewPassword: "secret"}); err != nil {
		t.Fatalf("change password: %v", err)
	}
	if _, err := env.auth.Login(ctx, models.LoginRequest{Email: "alice@example.com", Password: "secret"}); err != nil {
		t.Errorf("login with new password: %v", err)
	}
}

func TestRegenerateUserCode(t *testing.T) {
	ctx := context.Background()
	env := newMirrorEnv(t)
	alice := env.confirmedUser(t, "alice")

	updated, err := env.users.RegenerateUserCode(ctx, alice.ID)
	if err != nil {
		t.Fatalf("regenerate: %v", err)
	}
	if updated.UserCode == alice.UserCode {
		t.Error("code unchanged")
	}
	if _, err := env.users.GetByUserCode(ctx, alice.UserCode); !apperror.Is(err, apperror.UserNotFound) {
		t.Errorf("old code: expected UserNotFound, got %v", err)
	}
	public, err := env.users.GetByUserCode(ctx, updated.UserCode)
	if err != nil {
		t.Fatalf("lookup new code: %v", err)
	}
	if public.ID != alice.ID {
		t.Errorf("resolved %s, want %s", public.ID, alice.ID)
	}
}

func TestGetByUserCode_Unconfirmed(t *testing.T) {
	ctx := context.Background()
	env := newMirrorEnv(t)

	user, err := env.auth.Register(ctx, registerRequest("a@x.com"))
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := env.users.GetByUserCode(ctx, user.UserCode); !apperror.Is(err, apperror.UserNotFound) {
		t.Errorf("expected UserNotFound, got %v", err)
	}
}

func TestFriendQRCode(t *testing.T) {
	env := newMirrorEnv(t)
	alice := env.confirmedUser(t, "alice")

	png, err := env.users.FriendQRCode(context.Background(), alice.ID)
	if err != nil {
		t.Fatalf("qr: %v", err)
	}
	if len(png) == 0 {
		t.Error("empty png")
	}
}

package onboarding

import (
	"context"
	"errors"
	"math/rand"
	"testing"
)

type fakeAccountPort struct {
	updateErr error
	calls     []profileCall
}

type profileCall struct {
	userID      string
	username    string
	displayName string
}

func (f *fakeAccountPort) UpdateProfile(ctx context.Context, userID, username, displayName string) error {
	f.calls = append(f.calls, profileCall{userID: userID, username: username, displayName: displayName})
	return f.updateErr
}

func TestOnboardNewUser_SetsGeneratedName(t *testing.T) {
	accounts := &fakeAccountPort{}
	service := NewService(accounts, rand.New(rand.NewSource(1)))

	result, err := service.OnboardNewUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("OnboardNewUser returned error: %v", err)
	}
	if result.DisplayName == "" {
		t.Fatal("Expected a generated display name")
	}

	if len(accounts.calls) != 1 {
		t.Fatalf("Expected 1 profile update, got %d", len(accounts.calls))
	}
	if accounts.calls[0].userID != "user-1" {
		t.Fatalf("Expected update for user-1, got %s", accounts.calls[0].userID)
	}
	if accounts.calls[0].displayName != result.DisplayName {
		t.Fatalf("Expected display name %s, got %s", result.DisplayName, accounts.calls[0].displayName)
	}
}

func TestOnboardNewUser_SurfacesUpdateFailure(t *testing.T) {
	accounts := &fakeAccountPort{updateErr: errors.New("update failed")}
	service := NewService(accounts, rand.New(rand.NewSource(1)))

	if _, err := service.OnboardNewUser(context.Background(), "user-1"); err == nil {
		t.Fatal("Expected error when profile update fails")
	}
}

func TestOnboardNewUser_RequiresAccounts(t *testing.T) {
	service := NewService(nil, rand.New(rand.NewSource(1)))
	if _, err := service.OnboardNewUser(context.Background(), "user-1"); err == nil {
		t.Fatal("Expected error when accounts port is missing")
	}
}

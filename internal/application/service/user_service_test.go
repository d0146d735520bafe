package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/barberoil/fuelpos/internal/domain/entity"
	"github.com/barberoil/fuelpos/internal/domain/enum"
	"github.com/barberoil/fuelpos/pkg/apperror"
	"github.com/barberoil/fuelpos/pkg/utils"
)

func seedUsers(t *testing.T, d *testDeps) {
	t.Helper()
	users := []entity.User{
		{ID: "admin", Name: "Admin", PIN: "1234", Role: enum.UserRoleAdmin},
		{ID: "driver1", Name: "Driver 1", PIN: "1111", Role: enum.UserRoleDriver},
	}
	for i := range users {
		if err := d.users.Save(context.Background(), &users[i]); err != nil {
			t.Fatal(err)
		}
	}
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	d := newTestDeps(t)
	seedUsers(t, d)
	jwtManager := utils.NewJWTManager("test-secret", time.Hour)
	svc := NewAuthService(d.users, jwtManager)

	out, err := svc.Login(ctx, &LoginInput{UserID: "driver1", PIN: "1111"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if out.User.ID != "driver1" || out.ExpiresIn != 3600 {
		t.Errorf("Login() = %+v", out)
	}
	claims, err := jwtManager.ValidateSessionToken(out.AccessToken)
	if err != nil {
		t.Fatal(err)
	}
	if claims.UserID != "driver1" || claims.Role != "driver" {
		t.Errorf("claims = %+v", claims)
	}

	tests := []struct {
		name   string
		userID string
		pin    string
	}{
		{"wrong pin", "driver1", "1234"},
		{"pin of another user", "admin", "1111"},
		{"unknown user", "nobody", "1111"},
		{"pin prefix", "admin", "123"},
		{"empty pin", "admin", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(ctx, &LoginInput{UserID: tt.userID, PIN: tt.pin})
			if !errors.Is(err, apperror.ErrInvalidCredentials) {
				t.Errorf("Login() error = %v, want invalid credentials", err)
			}
		})
	}

	users, err := svc.ListLoginUsers(ctx)
	if err != nil {
		t.Fatal(err)
	}
	raw, _ := json.Marshal(users)
	if len(users) != 2 || strings.Contains(string(raw), `"pin"`) {
		t.Errorf("ListLoginUsers() = %s", raw)
	}
}

func TestUserManagement(t *testing.T) {
	ctx := context.Background()
	d := newTestDeps(t)
	seedUsers(t, d)
	svc := NewUserService(d.users)

	u, err := svc.CreateUser(ctx, &UserInput{Name: "Driver Two", PIN: "2222"})
	if err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}
	if u.ID != "driver-two" || u.Role != enum.UserRoleDriver {
		t.Errorf("CreateUser() = %+v", u)
	}
	if _, err := svc.CreateUser(ctx, &UserInput{ID: "driver-two", Name: "Again", PIN: "3"}); !errors.Is(err, apperror.ErrConflict) {
		t.Errorf("CreateUser(duplicate) error = %v, want Conflict", err)
	}
	if _, err := svc.CreateUser(ctx, &UserInput{ID: "x", Name: "X", PIN: "1", Role: "owner"}); !errors.Is(err, apperror.ErrValidationFailed) {
		t.Errorf("CreateUser(bad role) error = %v, want ValidationFailed", err)
	}

	drivers, err := svc.ListDrivers(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(drivers) != 2 {
		t.Errorf("ListDrivers() = %d, want 2", len(drivers))
	}

	if err := svc.DeleteUser(ctx, "admin"); !errors.Is(err, apperror.ErrConflict) {
		t.Errorf("DeleteUser(last admin) error = %v, want Conflict", err)
	}
	if _, err := svc.UpdateUser(ctx, "admin", &UserInput{Name: "Admin", PIN: "1234", Role: "driver"}); !errors.Is(err, apperror.ErrConflict) {
		t.Errorf("demoting last admin error = %v, want Conflict", err)
	}
	if _, err := svc.UpdateUser(ctx, "driver1", &UserInput{Name: "Driver 1", PIN: "1111", Role: "Admin"}); err != nil {
		t.Fatal(err)
	}
	if err := svc.DeleteUser(ctx, "admin"); err != nil {
		t.Errorf("DeleteUser(admin) with another admin error = %v", err)
	}
	if _, err := svc.GetUser(ctx, "admin"); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetUser(deleted) error = %v, want NotFound", err)
	}
}

func TestBusinessProfile(t *testing.T) {
	ctx := context.Background()
	d := newTestDeps(t)
	svc := NewSettingsService(d.settings, entity.BusinessProfile{Name: "Barber Oil", Location: "Hohenwald, Tennessee"})

	profile, err := svc.GetBusinessProfile(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if profile.Name != "Barber Oil" {
		t.Errorf("default profile = %+v", profile)
	}

	if _, err := svc.UpdateBusinessProfile(ctx, &entity.BusinessProfile{Name: " "}); !errors.Is(err, apperror.ErrValidationFailed) {
		t.Errorf("UpdateBusinessProfile(blank) error = %v, want ValidationFailed", err)
	}
	if _, err := svc.PutSetting(ctx, entity.SettingBusiness, json.RawMessage(`{"name":"Barber Oil Co","phone":"931-555-0199"}`)); err != nil {
		t.Fatal(err)
	}
	profile, _ = svc.GetBusinessProfile(ctx)
	if profile.Name != "Barber Oil Co" || profile.Phone != "931-555-0199" {
		t.Errorf("saved profile = %+v", profile)
	}

	if _, err := svc.PutSetting(ctx, "theme", json.RawMessage(`{"dark":true}`)); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.PutSetting(ctx, "broken", json.RawMessage(`{`)); !errors.Is(err, apperror.ErrValidationFailed) {
		t.Errorf("PutSetting(invalid json) error = %v, want ValidationFailed", err)
	}
	settings, err := svc.ListSettings(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(settings) != 2 {
		t.Errorf("ListSettings() = %d, want 2", len(settings))
	}
	if _, err := svc.GetSetting(ctx, "missing"); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetSetting(missing) error = %v, want NotFound", err)
	}
}

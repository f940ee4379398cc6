package service_test

import (
	"context"
	"testing"

	"github.com/tokosakti/pos-api/internal/application/service"
	"github.com/tokosakti/pos-api/internal/domain/enum"
	"github.com/tokosakti/pos-api/pkg/apperror"
	"golang.org/x/crypto/bcrypt"
)

func TestCreateUserHashesPassword(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := service.NewUserService(userRepo)

	user, err := svc.CreateUser(context.Background(), &service.CreateUserInput{
		Name:     "Siti",
		Email:    "siti@example.com",
		Role:     enum.RoleCashier,
		Password: "secret-password",
	})
	if err != nil {
		t.Fatal(err)
	}

	if user.Password == "secret-password" {
		t.Fatal("password stored in plain text")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("secret-password")); err != nil {
		t.Errorf("stored hash does not match password: %v", err)
	}
}

func TestCreateUserRejectsDuplicateEmail(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := service.NewUserService(userRepo)

	input := &service.CreateUserInput{
		Name:     "Siti",
		Email:    "siti@example.com",
		Role:     enum.RoleCashier,
		Password: "secret-password",
	}
	if _, err := svc.CreateUser(context.Background(), input); err != nil {
		t.Fatal(err)
	}

	_, err := svc.CreateUser(context.Background(), input)
	if err == nil {
		t.Fatal("expected conflict")
	}
	if got := apperror.GetAppError(err).Code; got != 409 {
		t.Errorf("code = %d, want 409", got)
	}
}

func TestCreateUserRejectsUnknownRole(t *testing.T) {
	svc := service.NewUserService(newFakeUserRepo())

	_, err := svc.CreateUser(context.Background(), &service.CreateUserInput{
		Name:     "Siti",
		Email:    "siti@example.com",
		Role:     enum.UserRole("owner"),
		Password: "secret-password",
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if got := apperror.GetAppError(err).Code; got != 400 {
		t.Errorf("code = %d, want 400", got)
	}
}

func TestDeleteUserGuardsOwnAccount(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := service.NewUserService(userRepo)

	admin, err := svc.CreateUser(context.Background(), &service.CreateUserInput{
		Name:     "Admin",
		Email:    "admin@example.com",
		Role:     enum.RoleAdmin,
		Password: "secret-password",
	})
	if err != nil {
		t.Fatal(err)
	}
	cashier, err := svc.CreateUser(context.Background(), &service.CreateUserInput{
		Name:     "Siti",
		Email:    "siti@example.com",
		Role:     enum.RoleCashier,
		Password: "secret-password",
	})
	if err != nil {
		t.Fatal(err)
	}

	err = svc.DeleteUser(context.Background(), admin.ID, admin.ID)
	if err == nil {
		t.Fatal("expected error deleting own account")
	}
	if got := apperror.GetAppError(err).Code; got != 400 {
		t.Errorf("code = %d, want 400", got)
	}

	if err := svc.DeleteUser(context.Background(), admin.ID, cashier.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.GetUser(context.Background(), cashier.ID); err == nil {
		t.Error("expected not found after delete")
	}
}

func TestUpdateUserEmailUniqueness(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := service.NewUserService(userRepo)

	first, err := svc.CreateUser(context.Background(), &service.CreateUserInput{
		Name: "Siti", Email: "siti@example.com", Role: enum.RoleCashier, Password: "secret-password",
	})
	if err != nil {
		t.Fatal(err)
	}
	_, err = svc.CreateUser(context.Background(), &service.CreateUserInput{
		Name: "Budi", Email: "budi@example.com", Role: enum.RoleCashier, Password: "secret-password",
	})
	if err != nil {
		t.Fatal(err)
	}

	taken := "budi@example.com"
	_, err = svc.UpdateUser(context.Background(), first.ID, &service.UpdateUserInput{Email: &taken})
	if err == nil {
		t.Fatal("expected conflict")
	}
	if got := apperror.GetAppError(err).Code; got != 409 {
		t.Errorf("code = %d, want 409", got)
	}
}

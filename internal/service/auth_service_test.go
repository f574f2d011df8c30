package service

import (
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"memneo-backend/internal/model"
)

func TestRegisterAndLogin(t *testing.T) {
	users := &fakeUserRepo{users: make(map[uint]*model.User)}
	svc := NewAuthService(users)

	user := &model.User{ID: 1, Name: "Ana", Email: "ana@example.com", Password: "supersecret"}
	if err := svc.Register(user); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Password == "supersecret" {
		t.Fatal("password stored in plain text")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("supersecret")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}

	logged, err := svc.Login("ana@example.com", "supersecret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if logged.ID != 1 {
		t.Errorf("logged user = %d, want 1", logged.ID)
	}
	if logged.LastLogin.IsZero() {
		t.Error("last login not recorded")
	}

	if _, err := svc.Login("ana@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password err = %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Login("nobody@example.com", "supersecret"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown email err = %v, want ErrInvalidCredentials", err)
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	users := &fakeUserRepo{users: map[uint]*model.User{
		1: {ID: 1, Email: "ana@example.com"},
	}}
	svc := NewAuthService(users)

	err := svc.Register(&model.User{ID: 2, Email: "ana@example.com", Password: "supersecret"})
	if !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("err = %v, want ErrDuplicateEmail", err)
	}
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	users := &fakeUserRepo{users: make(map[uint]*model.User)}
	svc := NewAuthService(users)

	if err := svc.Register(&model.User{ID: 1, Email: "ana@example.com", Password: "short"}); err == nil {
		t.Fatal("short password accepted")
	}
	if len(users.users) != 0 {
		t.Error("user stored despite rejected password")
	}
}

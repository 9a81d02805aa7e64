package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"electroshop/internal/middleware"
	"electroshop/internal/model"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

func hashPassword(t *testing.T, plain string) string {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return string(hashed)
}

func newAuthFixture(t *testing.T) (*fakeUserRepo, *fakeSender, AuthService) {
	t.Helper()
	userRepo := newFakeUserRepo()
	sender := &fakeSender{}
	return userRepo, sender, NewAuthService(userRepo, &fakeTxManager{}, sender)
}

func TestLoginWrongPassword(t *testing.T) {
	userRepo, _, svc := newAuthFixture(t)
	userRepo.add(&model.User{Email: "admin@shop.test", Password: hashPassword(t, "secret1")})

	_, err := svc.Login(context.Background(), LoginRequest{Email: "admin@shop.test", Password: "wrong"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	_, err = svc.Login(context.Background(), LoginRequest{Email: "nobody@shop.test", Password: "secret1"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestLoginIssuesToken(t *testing.T) {
	userRepo, _, svc := newAuthFixture(t)
	userRepo.add(&model.User{Email: "admin@shop.test", Password: hashPassword(t, "secret1"), IsAdmin: true})

	res, err := svc.Login(context.Background(), LoginRequest{Email: "admin@shop.test", Password: "secret1"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if res.Token == "" {
		t.Fatal("expected a signed token")
	}
	if !res.User.IsAdmin {
		t.Fatal("expected user payload to carry the admin flag")
	}

	// The token must verify against the middleware's secret source
	userID, err := middleware.ParseToken(res.Token)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if userID != res.User.ID {
		t.Fatalf("token subject %s does not match user %s", userID, res.User.ID)
	}
}

func TestRegisterForcesActorLocation(t *testing.T) {
	userRepo, _, svc := newAuthFixture(t)

	homeLocation := uuid.New()
	otherLocation := uuid.New()
	actor := &model.User{ID: uuid.New(), IsAdmin: true, LocationID: &homeLocation}

	created, err := svc.Register(context.Background(), actor, RegisterRequest{
		Email:        "new@shop.test",
		Password:     "secret1",
		LocationID:   otherLocation.String(),
		IsSuperAdmin: true,
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if created.LocationID == nil || *created.LocationID != homeLocation {
		t.Fatalf("expected location forced to %s, got %v", homeLocation, created.LocationID)
	}
	if created.IsSuperAdmin {
		t.Fatal("non-super-admin actor must not be able to grant super-admin")
	}

	stored, err := userRepo.FindByEmail(context.Background(), "new@shop.test")
	if err != nil {
		t.Fatalf("created user not persisted: %v", err)
	}
	if !stored.IsAdmin {
		t.Fatal("registered users are admins")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	userRepo, _, svc := newAuthFixture(t)
	userRepo.add(&model.User{Email: "taken@shop.test", Password: "x"})

	actor := &model.User{ID: uuid.New(), IsAdmin: true, IsSuperAdmin: true}
	_, err := svc.Register(context.Background(), actor, RegisterRequest{Email: "taken@shop.test", Password: "secret1"})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestUpdateProfileRehashOnlyOnPasswordChange(t *testing.T) {
	userRepo, _, svc := newAuthFixture(t)
	originalHash := hashPassword(t, "secret1")
	user := userRepo.add(&model.User{Email: "admin@shop.test", Password: originalHash})

	if _, err := svc.UpdateProfile(context.Background(), user.ID, UpdateProfileRequest{Name: "New Name"}); err != nil {
		t.Fatalf("profile update failed: %v", err)
	}
	if user.Password != originalHash {
		t.Fatal("password must not be rehashed on unrelated updates")
	}

	if _, err := svc.UpdateProfile(context.Background(), user.ID, UpdateProfileRequest{Password: "secret2"}); err != nil {
		t.Fatalf("password update failed: %v", err)
	}
	if user.Password == originalHash {
		t.Fatal("password change must rehash")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("secret2")); err != nil {
		t.Fatal("new password does not verify against stored hash")
	}
}

func TestForgotPasswordIssuesCode(t *testing.T) {
	userRepo, sender, svc := newAuthFixture(t)
	user := userRepo.add(&model.User{Email: "admin@shop.test", WhatsappNumber: "+22890112233"})

	before := time.Now()
	if err := svc.ForgotPassword(context.Background(), ForgotPasswordRequest{WhatsappNumber: "+22890112233"}); err != nil {
		t.Fatalf("forgot password failed: %v", err)
	}

	if user.ResetPasswordCode == nil || len(*user.ResetPasswordCode) != 6 {
		t.Fatalf("expected a 6-digit code, got %v", user.ResetPasswordCode)
	}
	for _, r := range *user.ResetPasswordCode {
		if r < '0' || r > '9' {
			t.Fatalf("code %q is not numeric", *user.ResetPasswordCode)
		}
	}
	if user.ResetPasswordExpires == nil {
		t.Fatal("expected an expiry timestamp")
	}
	ttl := user.ResetPasswordExpires.Sub(before)
	if ttl < 9*time.Minute || ttl > 11*time.Minute {
		t.Fatalf("expected ~10 minute expiry, got %s", ttl)
	}

	if len(sender.codes) != 1 || sender.codes[0] != *user.ResetPasswordCode {
		t.Fatal("code must be handed to the delivery channel")
	}
}

func TestForgotPasswordUnknownNumberIsSilent(t *testing.T) {
	_, sender, svc := newAuthFixture(t)

	if err := svc.ForgotPassword(context.Background(), ForgotPasswordRequest{WhatsappNumber: "+22800000000"}); err != nil {
		t.Fatalf("unknown number must get a generic ack, got %v", err)
	}
	if len(sender.codes) != 0 {
		t.Fatal("nothing should be delivered for an unknown number")
	}
}

func TestVerifyResetCode(t *testing.T) {
	userRepo, _, svc := newAuthFixture(t)
	code := "123456"
	expires := time.Now().Add(5 * time.Minute)
	user := userRepo.add(&model.User{
		WhatsappNumber:       "+22890112233",
		ResetPasswordCode:    &code,
		ResetPasswordExpires: &expires,
	})

	ok := svc.VerifyResetCode(context.Background(), VerifyResetCodeRequest{WhatsappNumber: "+22890112233", Code: "123456"})
	if ok != nil {
		t.Fatalf("valid code rejected: %v", ok)
	}

	err := svc.VerifyResetCode(context.Background(), VerifyResetCodeRequest{WhatsappNumber: "+22890112233", Code: "654321"})
	if !errors.Is(err, ErrInvalidOrExpiredCode) {
		t.Fatalf("expected ErrInvalidOrExpiredCode for mismatch, got %v", err)
	}

	// A rejected attempt leaves the stored code untouched
	if user.ResetPasswordCode == nil || *user.ResetPasswordCode != code {
		t.Fatal("stored code must survive a failed attempt")
	}

	expired := time.Now().Add(-time.Second)
	user.ResetPasswordExpires = &expired
	err = svc.VerifyResetCode(context.Background(), VerifyResetCodeRequest{WhatsappNumber: "+22890112233", Code: "123456"})
	if !errors.Is(err, ErrInvalidOrExpiredCode) {
		t.Fatalf("expected ErrInvalidOrExpiredCode after expiry, got %v", err)
	}
}

func TestResetPasswordConsumesCode(t *testing.T) {
	userRepo, _, svc := newAuthFixture(t)
	code := "123456"
	expires := time.Now().Add(5 * time.Minute)
	user := userRepo.add(&model.User{
		WhatsappNumber:       "+22890112233",
		Password:             hashPassword(t, "old-pass"),
		ResetPasswordCode:    &code,
		ResetPasswordExpires: &expires,
	})

	err := svc.ResetPassword(context.Background(), ResetPasswordRequest{
		WhatsappNumber: "+22890112233",
		Code:           "123456",
		NewPassword:    "new-pass",
	})
	if err != nil {
		t.Fatalf("reset failed: %v", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("new-pass")); err != nil {
		t.Fatal("new password does not verify")
	}
	if user.ResetPasswordCode != nil || user.ResetPasswordExpires != nil {
		t.Fatal("code and expiry must be cleared after a successful reset")
	}

	// The cleared code cannot be replayed
	err = svc.ResetPassword(context.Background(), ResetPasswordRequest{
		WhatsappNumber: "+22890112233",
		Code:           "123456",
		NewPassword:    "another",
	})
	if !errors.Is(err, ErrInvalidOrExpiredCode) {
		t.Fatalf("expected replay to fail with ErrInvalidOrExpiredCode, got %v", err)
	}
}

func TestResetPasswordExpiredCode(t *testing.T) {
	userRepo, _, svc := newAuthFixture(t)
	code := "123456"
	expires := time.Now().Add(-time.Minute)
	user := userRepo.add(&model.User{
		WhatsappNumber:       "+22890112233",
		Password:             hashPassword(t, "old-pass"),
		ResetPasswordCode:    &code,
		ResetPasswordExpires: &expires,
	})

	err := svc.ResetPassword(context.Background(), ResetPasswordRequest{
		WhatsappNumber: "+22890112233",
		Code:           "123456",
		NewPassword:    "new-pass",
	})
	if !errors.Is(err, ErrInvalidOrExpiredCode) {
		t.Fatalf("expected ErrInvalidOrExpiredCode, got %v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("old-pass")); err != nil {
		t.Fatal("password must be unchanged after a rejected reset")
	}
}

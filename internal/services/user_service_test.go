package services

import (
	"testing"

	"golang.org/x/crypto/bcrypt"

	"cryptofolio/internal/models"
	"cryptofolio/internal/testutil"
)

func TestCreateUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewUserService(db)

	t.Run("creates a user with a hashed password", func(t *testing.T) {
		user, err := svc.CreateUser("alice", "Alice@Example.com", "s3cretpass")
		testutil.AssertNoError(t, err)

		if user.ID == "" {
			t.Error("expected a generated ID")
		}
		if user.Email != "alice@example.com" {
			t.Errorf("expected lowercased email, got %q", user.Email)
		}
		if user.Password == "s3cretpass" {
			t.Error("password stored in plaintext")
		}
		if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("s3cretpass")) != nil {
			t.Error("stored hash does not verify against the password")
		}
		if !user.IsActive {
			t.Error("expected new user to be active")
		}
	})

	t.Run("rejects duplicate username", func(t *testing.T) {
		_, err := svc.CreateUser("alice", "other@example.com", "s3cretpass")
		testutil.AssertAppError(t, err, "DUPLICATE_USERNAME")
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		_, err := svc.CreateUser("alice2", "alice@example.com", "s3cretpass")
		testutil.AssertAppError(t, err, "DUPLICATE_EMAIL")
	})

	t.Run("rejects empty fields", func(t *testing.T) {
		_, err := svc.CreateUser("", "x@example.com", "pass")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestAttemptLogin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewUserService(db)
	user := testutil.CreateTestUser(t, db)

	t.Run("valid credentials record the login time", func(t *testing.T) {
		got, err := svc.AttemptLogin(user.Username, "password123")
		testutil.AssertNoError(t, err)

		if got.ID != user.ID {
			t.Error("logged in as wrong user")
		}
		if got.LastLoginAt == nil {
			t.Error("expected last_login_at to be set")
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.AttemptLogin(user.Username, "wrongpass")
		testutil.AssertAppError(t, err, "INVALID_CREDENTIALS")
	})

	t.Run("unknown username gets the same error", func(t *testing.T) {
		_, err := svc.AttemptLogin("nobody", "password123")
		testutil.AssertAppError(t, err, "INVALID_CREDENTIALS")
	})

	t.Run("inactive user cannot log in", func(t *testing.T) {
		inactive := testutil.CreateTestUser(t, db)
		db.Model(inactive).Update("is_active", false)

		_, err := svc.AttemptLogin(inactive.Username, "password123")
		testutil.AssertAppError(t, err, "INVALID_CREDENTIALS")
	})
}

func TestGetUserByID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewUserService(db)
	user := testutil.CreateTestUser(t, db)

	t.Run("found", func(t *testing.T) {
		got, err := svc.GetUserByID(user.ID)
		testutil.AssertNoError(t, err)
		if got.Username != user.Username {
			t.Errorf("got username %q, want %q", got.Username, user.Username)
		}
	})

	t.Run("missing", func(t *testing.T) {
		_, err := svc.GetUserByID("00000000-0000-0000-0000-000000000000")
		testutil.AssertAppError(t, err, "USER_NOT_FOUND")
	})
}

func TestDeleteUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewUserService(db)

	t.Run("deletes the user and their holdings", func(t *testing.T) {
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestHolding(t, db, user.ID, "BTC", 1, 40000)
		testutil.CreateTestHolding(t, db, user.ID, "ETH", 2, 3000)

		testutil.AssertNoError(t, svc.DeleteUser(user.ID))

		var users, holdings int64
		db.Model(&models.User{}).Where("id = ?", user.ID).Count(&users)
		db.Model(&models.Holding{}).Where("user_id = ?", user.ID).Count(&holdings)
		if users != 0 || holdings != 0 {
			t.Errorf("expected user and holdings gone, got users=%d holdings=%d", users, holdings)
		}
	})

	t.Run("missing user", func(t *testing.T) {
		err := svc.DeleteUser("00000000-0000-0000-0000-000000000000")
		testutil.AssertAppError(t, err, "USER_NOT_FOUND")
	})
}

package services

import (
	"testing"

	"moneta/internal/models"
	"moneta/internal/testutil"
	"moneta/internal/uuid"
)

func TestRegisterDeviceToken(t *testing.T) {
	t.Run("new_device", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDeviceTokenService(db)
		user := testutil.CreateTestUser(t, db)

		token, err := svc.RegisterDeviceToken(user.ID, DeviceTokenRegister{
			DeviceToken: "fcm-token-1",
			DeviceID:    "device-abc",
			DeviceName:  "iPhone 13",
			DeviceType:  "ios",
		})
		testutil.AssertNoError(t, err)

		if !uuid.IsValid(token.ID) {
			t.Errorf("expected UUID identifier, got %q", token.ID)
		}
		if !token.IsActive {
			t.Error("expected new registration to be active")
		}
		if token.LastUsedAt.IsZero() {
			t.Error("expected last_used_at to be set")
		}
	})

	t.Run("same_device_updates_in_place", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDeviceTokenService(db)
		user := testutil.CreateTestUser(t, db)

		first, err := svc.RegisterDeviceToken(user.ID, DeviceTokenRegister{
			DeviceToken: "fcm-token-1",
			DeviceID:    "device-abc",
			DeviceType:  "ios",
		})
		testutil.AssertNoError(t, err)

		second, err := svc.RegisterDeviceToken(user.ID, DeviceTokenRegister{
			DeviceToken: "fcm-token-2",
			DeviceID:    "device-abc",
			DeviceType:  "ios",
		})
		testutil.AssertNoError(t, err)

		if second.ID != first.ID {
			t.Errorf("expected the same registration reused, got %s and %s", first.ID, second.ID)
		}
		if second.DeviceToken != "fcm-token-2" {
			t.Errorf("expected token refreshed, got %s", second.DeviceToken)
		}

		var count int64
		testutil.AssertNoError(t, db.Model(&models.UserDeviceToken{}).
			Where("user_id = ?", user.ID).Count(&count).Error)
		if count != 1 {
			t.Errorf("expected a single row, got %d", count)
		}
	})

	t.Run("reactivates_deactivated_device", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDeviceTokenService(db)
		user := testutil.CreateTestUser(t, db)

		first, err := svc.RegisterDeviceToken(user.ID, DeviceTokenRegister{
			DeviceToken: "fcm-token-1",
			DeviceID:    "device-abc",
			DeviceType:  "android",
		})
		testutil.AssertNoError(t, err)

		_, err = svc.DeactivateDeviceToken(user.ID, first.ID)
		testutil.AssertNoError(t, err)

		again, err := svc.RegisterDeviceToken(user.ID, DeviceTokenRegister{
			DeviceToken: "fcm-token-1",
			DeviceID:    "device-abc",
			DeviceType:  "android",
		})
		testutil.AssertNoError(t, err)
		if !again.IsActive {
			t.Error("expected re-registration to reactivate the token")
		}
	})

	t.Run("same_device_different_users", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDeviceTokenService(db)
		user := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)

		a, err := svc.RegisterDeviceToken(user.ID, DeviceTokenRegister{
			DeviceToken: "t1", DeviceID: "shared-tablet", DeviceType: "android",
		})
		testutil.AssertNoError(t, err)
		b, err := svc.RegisterDeviceToken(other.ID, DeviceTokenRegister{
			DeviceToken: "t2", DeviceID: "shared-tablet", DeviceType: "android",
		})
		testutil.AssertNoError(t, err)
		if a.ID == b.ID {
			t.Error("expected separate registrations per user")
		}
	})

	t.Run("missing_fields", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDeviceTokenService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.RegisterDeviceToken(user.ID, DeviceTokenRegister{DeviceID: "d"})
		testutil.AssertAppError(t, err, "INVALID_INPUT")

		_, err = svc.RegisterDeviceToken(user.ID, DeviceTokenRegister{DeviceToken: "t"})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestListDeviceTokens(t *testing.T) {
	t.Run("active_only_filter", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDeviceTokenService(db)
		user := testutil.CreateTestUser(t, db)

		active := testutil.CreateTestDeviceToken(t, db, user.ID)
		inactive := testutil.CreateTestDeviceToken(t, db, user.ID)
		_, err := svc.DeactivateDeviceToken(user.ID, inactive.ID)
		testutil.AssertNoError(t, err)

		all, err := svc.ListDeviceTokens(user.ID, false)
		testutil.AssertNoError(t, err)
		if len(all) != 2 {
			t.Errorf("expected 2 tokens, got %d", len(all))
		}

		onlyActive, err := svc.ListDeviceTokens(user.ID, true)
		testutil.AssertNoError(t, err)
		if len(onlyActive) != 1 || onlyActive[0].ID != active.ID {
			t.Errorf("expected only the active token, got %d", len(onlyActive))
		}
	})

	t.Run("scoped_to_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDeviceTokenService(db)
		user := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)
		testutil.CreateTestDeviceToken(t, db, other.ID)

		tokens, err := svc.ListDeviceTokens(user.ID, false)
		testutil.AssertNoError(t, err)
		if len(tokens) != 0 {
			t.Errorf("expected no tokens for this user, got %d", len(tokens))
		}
	})
}

func TestUpdateDeviceToken(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewDeviceTokenService(db)
	user := testutil.CreateTestUser(t, db)
	token := testutil.CreateTestDeviceToken(t, db, user.ID)

	newName := "Pixel 9"
	updated, err := svc.UpdateDeviceToken(user.ID, token.ID, DeviceTokenUpdate{DeviceName: &newName})
	testutil.AssertNoError(t, err)
	if updated.DeviceName != "Pixel 9" {
		t.Errorf("expected renamed device, got %s", updated.DeviceName)
	}
	if updated.DeviceToken != token.DeviceToken {
		t.Error("expected untouched fields preserved")
	}

	_, err = svc.UpdateDeviceToken(user.ID, uuid.New(), DeviceTokenUpdate{DeviceName: &newName})
	testutil.AssertAppError(t, err, "DEVICE_TOKEN_NOT_FOUND")
}

func TestDeactivateDeviceToken(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewDeviceTokenService(db)
	user := testutil.CreateTestUser(t, db)
	token := testutil.CreateTestDeviceToken(t, db, user.ID)

	updated, err := svc.DeactivateDeviceToken(user.ID, token.ID)
	testutil.AssertNoError(t, err)
	if updated.IsActive {
		t.Error("expected token deactivated")
	}
}

func TestDeleteDeviceToken(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewDeviceTokenService(db)
	user := testutil.CreateTestUser(t, db)
	other := testutil.CreateTestUser(t, db)
	token := testutil.CreateTestDeviceToken(t, db, user.ID)

	testutil.AssertAppError(t, svc.DeleteDeviceToken(other.ID, token.ID), "DEVICE_TOKEN_NOT_FOUND")

	testutil.AssertNoError(t, svc.DeleteDeviceToken(user.ID, token.ID))

	_, err := svc.GetDeviceTokenByID(user.ID, token.ID)
	testutil.AssertAppError(t, err, "DEVICE_TOKEN_NOT_FOUND")
}

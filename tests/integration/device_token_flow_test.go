package integration

import (
	"net/http"
	"testing"
)

func TestDeviceTokenFlow_RegisterAndList(t *testing.T) {
	app := setupApp(t)
	access, _, _ := app.registerUser(t, "devices@test.com", "devices", "password123")

	rec := app.request("POST", "/api/v1/device-tokens",
		`{"device_token":"fcm-token-abc","device_id":"phone-1","device_name":"Pixel 9","device_type":"android"}`, access)
	if rec.Code != http.StatusCreated {
		t.Fatalf("register failed: %d %s", rec.Code, rec.Body.String())
	}
	first := parseJSON(t, rec)["device_token"].(map[string]interface{})
	tokenID := first["id"].(string)

	// Re-registering the same device updates in place instead of duplicating.
	rec = app.request("POST", "/api/v1/device-tokens",
		`{"device_token":"fcm-token-def","device_id":"phone-1"}`, access)
	if rec.Code != http.StatusCreated {
		t.Fatalf("re-register failed: %d %s", rec.Code, rec.Body.String())
	}
	second := parseJSON(t, rec)["device_token"].(map[string]interface{})
	if second["id"] != tokenID {
		t.Errorf("expected same row on re-register, got new id %v", second["id"])
	}
	if second["device_token"] != "fcm-token-def" {
		t.Errorf("expected refreshed token, got %v", second["device_token"])
	}

	rec = app.request("GET", "/api/v1/device-tokens", "", access)
	if rec.Code != http.StatusOK {
		t.Fatalf("list failed: %d %s", rec.Code, rec.Body.String())
	}
	items := parseJSON(t, rec)["device_tokens"].([]interface{})
	if len(items) != 1 {
		t.Errorf("expected a single device row, got %d", len(items))
	}
}

func TestDeviceTokenFlow_DeactivateAndFilter(t *testing.T) {
	app := setupApp(t)
	access, _, _ := app.registerUser(t, "devfilter@test.com", "devfilter", "password123")

	ids := make([]string, 0, 2)
	for _, body := range []string{
		`{"device_token":"tok-1","device_id":"tablet-1"}`,
		`{"device_token":"tok-2","device_id":"tablet-2"}`,
	} {
		rec := app.request("POST", "/api/v1/device-tokens", body, access)
		if rec.Code != http.StatusCreated {
			t.Fatalf("register failed: %d %s", rec.Code, rec.Body.String())
		}
		row := parseJSON(t, rec)["device_token"].(map[string]interface{})
		ids = append(ids, row["id"].(string))
	}

	rec := app.request("POST", "/api/v1/device-tokens/"+ids[0]+"/deactivate", "", access)
	if rec.Code != http.StatusOK {
		t.Fatalf("deactivate failed: %d %s", rec.Code, rec.Body.String())
	}

	rec = app.request("GET", "/api/v1/device-tokens?active_only=true", "", access)
	if rec.Code != http.StatusOK {
		t.Fatalf("list failed: %d %s", rec.Code, rec.Body.String())
	}
	items := parseJSON(t, rec)["device_tokens"].([]interface{})
	if len(items) != 1 {
		t.Fatalf("expected one active device, got %d", len(items))
	}
	if items[0].(map[string]interface{})["id"] != ids[1] {
		t.Errorf("wrong device survived the active filter")
	}

	// Unfiltered listing still shows both.
	rec = app.request("GET", "/api/v1/device-tokens", "", access)
	items = parseJSON(t, rec)["device_tokens"].([]interface{})
	if len(items) != 2 {
		t.Errorf("expected both devices without the filter, got %d", len(items))
	}
}

func TestDeviceTokenFlow_OwnershipAndDelete(t *testing.T) {
	app := setupApp(t)
	access, _, _ := app.registerUser(t, "devown@test.com", "devown", "password123")
	otherAccess, _, _ := app.registerUser(t, "devother@test.com", "devother", "password123")

	rec := app.request("POST", "/api/v1/device-tokens",
		`{"device_token":"tok-x","device_id":"watch-1"}`, access)
	if rec.Code != http.StatusCreated {
		t.Fatalf("register failed: %d %s", rec.Code, rec.Body.String())
	}
	tokenID := parseJSON(t, rec)["device_token"].(map[string]interface{})["id"].(string)

	rec = app.request("GET", "/api/v1/device-tokens/"+tokenID, "", otherAccess)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 for another user's device, got %d", rec.Code)
	}
	rec = app.request("DELETE", "/api/v1/device-tokens/"+tokenID, "", otherAccess)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 deleting another user's device, got %d", rec.Code)
	}

	rec = app.request("PUT", "/api/v1/device-tokens/"+tokenID, `{"device_name":"Watch"}`, access)
	if rec.Code != http.StatusOK {
		t.Fatalf("update failed: %d %s", rec.Code, rec.Body.String())
	}
	updated := parseJSON(t, rec)["device_token"].(map[string]interface{})
	if updated["device_name"] != "Watch" {
		t.Errorf("expected renamed device, got %v", updated["device_name"])
	}

	rec = app.request("DELETE", "/api/v1/device-tokens/"+tokenID, "", access)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete failed: %d %s", rec.Code, rec.Body.String())
	}
	rec = app.request("GET", "/api/v1/device-tokens/"+tokenID, "", access)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 after delete, got %d", rec.Code)
	}
}

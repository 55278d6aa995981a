package server

import (
	"net/http"
	"strings"
	"testing"

	"github.com/mherrero/mimapa-be/internal/models"
	"github.com/mherrero/mimapa-be/internal/models/dto"
)

func TestBanner(t *testing.T) {
	env := newTestEnv(t, 2)

	resp, err := http.Get(env.ts.URL + "/")
	if err != nil {
		t.Fatalf("banner request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("banner status = %d", resp.StatusCode)
	}
	out := decode[map[string]string](t, resp.Body)
	if strings.TrimSpace(out["message"]) == "" {
		t.Fatal("banner message is empty")
	}
}

func TestUsersMe(t *testing.T) {
	env := newTestEnv(t, 2)
	env.mustRegister(t, "root@example.com", "pw1234", "admin")
	token := env.obtainToken(t, "root@example.com", "pw1234")

	resp := env.do(t, http.MethodGet, "/users/me", token, nil, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("me status = %d", resp.StatusCode)
	}
	defer resp.Body.Close()
	me := decode[dto.MeResponse](t, resp.Body)
	if me.Username != "root@example.com" || me.Role != models.RoleAdmin {
		t.Fatalf("me = %+v", me)
	}
}

func TestTokenCarriesRoleClaim(t *testing.T) {
	env := newTestEnv(t, 2)
	env.mustRegister(t, "root@example.com", "pw1234", "admin")
	token := env.obtainToken(t, "root@example.com", "pw1234")

	claims, err := env.tokens.Parse(token)
	if err != nil {
		t.Fatalf("parse issued token: %v", err)
	}
	if claims.Subject != "root@example.com" {
		t.Errorf("subject = %q", claims.Subject)
	}
	if claims.Role != models.RoleAdmin {
		t.Errorf("role claim = %q, want admin", claims.Role)
	}
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	env := newTestEnv(t, 2)
	resp := env.register(t, "eve@example.com", "pw1234", "superuser")
	wantStatus(t, resp, http.StatusBadRequest)
}

func TestNonAdminWritesForbidden(t *testing.T) {
	env := newTestEnv(t, 2)
	env.mustRegister(t, "plain@example.com", "pw1234", "")
	token := env.obtainToken(t, "plain@example.com", "pw1234")

	body, contentType := itemForm(t, "Cafe", "Calle Mayor 1", true)
	resp := env.do(t, http.MethodPost, "/items", token, body, contentType)
	wantStatus(t, resp, http.StatusForbidden)

	resp = env.do(t, http.MethodDelete, "/items/any-id", token, nil, "")
	wantStatus(t, resp, http.StatusForbidden)

	// reads only need a resolved identity
	resp = env.do(t, http.MethodGet, "/items", token, nil, "")
	wantStatus(t, resp, http.StatusOK)
}

func TestAdminCreateRequiresFile(t *testing.T) {
	env := newTestEnv(t, 2)
	env.mustRegister(t, "root@example.com", "pw1234", "admin")
	token := env.obtainToken(t, "root@example.com", "pw1234")

	body, contentType := itemForm(t, "Cafe", "Calle Mayor 1", false)
	resp := env.do(t, http.MethodPost, "/items", token, body, contentType)
	wantStatus(t, resp, http.StatusBadRequest)
}

func TestAdminCreateAndDelete(t *testing.T) {
	env := newTestEnv(t, 2)
	env.mustRegister(t, "root@example.com", "pw1234", "admin")
	token := env.obtainToken(t, "root@example.com", "pw1234")

	body, contentType := itemForm(t, "Museo", "Paseo del Prado", true)
	resp := env.do(t, http.MethodPost, "/items", token, body, contentType)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("create status = %d", resp.StatusCode)
	}
	item := decode[models.Item](t, resp.Body)
	resp.Body.Close()
	if item.ID == "" {
		t.Fatal("created item has empty id")
	}
	if item.ImageURL != "https://cdn.example.com/photo.jpg" {
		t.Errorf("image_url = %q", item.ImageURL)
	}

	resp = env.do(t, http.MethodDelete, "/items/"+item.ID, token, nil, "")
	wantStatus(t, resp, http.StatusOK)

	// second delete finds nothing
	resp = env.do(t, http.MethodDelete, "/items/"+item.ID, token, nil, "")
	wantStatus(t, resp, http.StatusNotFound)
}

func TestDeleteUnknownID(t *testing.T) {
	env := newTestEnv(t, 2)
	env.mustRegister(t, "root@example.com", "pw1234", "admin")
	token := env.obtainToken(t, "root@example.com", "pw1234")

	resp := env.do(t, http.MethodDelete, "/items/0f0f0f0f-0000-0000-0000-000000000000", token, nil, "")
	wantStatus(t, resp, http.StatusNotFound)
}

func TestListReturnsAllOwnersWithoutVisits(t *testing.T) {
	env := newTestEnv(t, 2)
	env.mustRegister(t, "root@example.com", "pw1234", "admin")
	env.mustRegister(t, "second@example.com", "pw1234", "admin")
	env.mustRegister(t, "viewer@example.com", "pw1234", "")

	for _, owner := range []string{"root@example.com", "second@example.com"} {
		token := env.obtainToken(t, owner, "pw1234")
		body, contentType := itemForm(t, "Place of "+owner, "Somewhere", true)
		resp := env.do(t, http.MethodPost, "/items", token, body, contentType)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("create for %s: status = %d", owner, resp.StatusCode)
		}
		resp.Body.Close()
	}

	viewerToken := env.obtainToken(t, "viewer@example.com", "pw1234")
	resp := env.do(t, http.MethodGet, "/items", viewerToken, nil, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list status = %d", resp.StatusCode)
	}
	defer resp.Body.Close()
	items := decode[[]models.Item](t, resp.Body)
	if len(items) != 2 {
		t.Fatalf("items = %d, want 2", len(items))
	}

	if got := len(env.store.Visits()); got != 0 {
		t.Fatalf("visits recorded = %d, want 0", got)
	}
}

package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/planfold/planfold/internal/cache"
	"github.com/planfold/planfold/internal/model"
)

func TestLoginInstallsToken(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login":
			json.NewEncoder(w).Encode(AuthResult{Token: "fresh-token", UserID: "u1"})
		default:
			if got := r.Header.Get("Authorization"); got != "Bearer fresh-token" {
				t.Errorf("Authorization after login = %q", got)
			}
			json.NewEncoder(w).Encode(model.User{ID: "u1"})
		}
	})
	client.SetToken("")

	result, err := client.Login(context.Background(), "pat@example.com", "hunter2")
	if err != nil {
		t.Fatal(err)
	}
	if result.Token != "fresh-token" {
		t.Fatalf("result = %+v", result)
	}

	// The next request must carry the new token.
	if _, err := client.Me(context.Background()); err != nil {
		t.Fatal(err)
	}
}

func TestMeCachesProfile(t *testing.T) {
	client, store := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(model.User{ID: "u1", Name: "Pat", Email: "pat@example.com"})
	})

	user, err := client.Me(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if user.Name != "Pat" {
		t.Fatalf("user = %+v", user)
	}

	v, ok := store.Get(cache.MeQuery{})
	if !ok || v.(model.User).ID != "u1" {
		t.Error("profile should be cached under its key")
	}
}

func TestLogoutEvictsProfile(t *testing.T) {
	client, store := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})
	store.Set(cache.MeQuery{}, model.User{ID: "u1", Name: "Pat"})

	if err := client.Logout(context.Background()); err != nil {
		t.Fatal(err)
	}
	if _, ok := store.Get(cache.MeQuery{}); ok {
		t.Error("logout must evict the cached profile")
	}
}

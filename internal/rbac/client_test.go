package rbac

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestBackend(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return New(srv.URL+"/api/v1", time.Second)
}

func TestClient_AttachesBearerToken(t *testing.T) {
	var gotAuth string

	client := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"success":true,"message":"ok","data":[]}`))
	})

	if _, _, err := client.WithToken("tok-123").ListUsers(context.Background(), ListParams{}); err != nil {
		t.Fatalf("ListUsers() error = %v", err)
	}

	if gotAuth != "Bearer tok-123" {
		t.Fatalf("Authorization = %q, want Bearer tok-123", gotAuth)
	}
}

func TestClient_NoTokenMeansUnauthenticatedRequest(t *testing.T) {
	var gotAuth string

	client := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"success":true,"message":"ok"}`))
	})

	if err := client.Logout(context.Background()); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}

	if gotAuth != "" {
		t.Fatalf("Authorization = %q, want empty", gotAuth)
	}
}

func TestClient_ErrorMapping(t *testing.T) {
	testCases := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{"not found", http.StatusNotFound, `{}`, MsgNotFound},
		{"forbidden", http.StatusForbidden, `{}`, MsgForbidden},
		{"unauthenticated", http.StatusUnauthorized, `{}`, MsgUnauthenticated},
		{"server error", http.StatusInternalServerError, `{}`, MsgServerError},
		{"unknown status", http.StatusTeapot, `{}`, MsgUnexpected},
		{
			"backend message wins",
			http.StatusNotFound,
			`{"success":false,"message":"Role not found"}`,
			"Role not found",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			client := newTestBackend(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			})

			_, err := client.GetRole(context.Background(), "r1")
			if err == nil {
				t.Fatal("expected error")
			}

			if got := UserMessage(err); got != tc.wantMsg {
				t.Fatalf("UserMessage() = %q, want %q", got, tc.wantMsg)
			}
		})
	}
}

func TestClient_TransportFailureIsUnexpected(t *testing.T) {
	client := New("http://127.0.0.1:1/api/v1", 100*time.Millisecond)

	_, err := client.Profile(context.Background())
	if err == nil {
		t.Fatal("expected transport error")
	}

	if got := UserMessage(err); got != MsgUnexpected {
		t.Fatalf("UserMessage() = %q, want %q", got, MsgUnexpected)
	}

	if IsUnauthenticated(err) {
		t.Fatal("transport error must not look like a 401")
	}
}

func TestClient_Login(t *testing.T) {
	client := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/auth/login" {
			t.Errorf("path = %q", r.URL.Path)
		}

		if r.Method != http.MethodPost {
			t.Errorf("method = %q", r.Method)
		}

		_, _ = w.Write([]byte(`{
			"success": true,
			"message": "Login successful",
			"data": {
				"user": {
					"id": "u1",
					"email": "admin@rbac.com",
					"firstName": "Ada",
					"lastName": "Admin",
					"roles": [{"id":"r1","name":"admin"}],
					"permissions": ["users:create","users:read"]
				},
				"accessToken": "at",
				"refreshToken": "rt"
			}
		}`))
	})

	result, err := client.Login(context.Background(), "admin@rbac.com", "Admin@123")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	if result.AccessToken != "at" || result.RefreshToken != "rt" {
		t.Fatalf("unexpected tokens: %+v", result)
	}

	if len(result.User.Roles) != 1 || result.User.Roles[0].Name != "admin" {
		t.Fatalf("unexpected roles: %+v", result.User.Roles)
	}
}

func TestClient_LoginInvalidCredentials(t *testing.T) {
	client := newTestBackend(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"success":false,"message":"Invalid credentials"}`))
	})

	_, err := client.Login(context.Background(), "admin@rbac.com", "wrong")
	if err == nil {
		t.Fatal("expected error")
	}

	if got := UserMessage(err); got != "Invalid credentials" {
		t.Fatalf("UserMessage() = %q, want backend message", got)
	}
}

func TestClient_ListUsersMeta(t *testing.T) {
	var gotQuery string

	client := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`{
			"success": true,
			"message": "ok",
			"data": [{"id":"u1","email":"a@b.c"}],
			"meta": {"total":57,"page":2,"limit":20,"totalPages":3}
		}`))
	})

	users, meta, err := client.ListUsers(context.Background(), ListParams{
		Page:      2,
		Limit:     20,
		Search:    "ada",
		SortBy:    "email",
		SortOrder: "desc",
	})
	if err != nil {
		t.Fatalf("ListUsers() error = %v", err)
	}

	if len(users) != 1 || users[0].ID != "u1" {
		t.Fatalf("unexpected users: %+v", users)
	}

	if meta == nil || meta.Total != 57 || meta.TotalPages != 3 {
		t.Fatalf("unexpected meta: %+v", meta)
	}

	want := "limit=20&page=2&search=ada&sortBy=email&sortOrder=desc"
	if gotQuery != want {
		t.Fatalf("query = %q, want %q", gotQuery, want)
	}
}

func TestClient_AssignRolesReplacesSet(t *testing.T) {
	var gotBody string

	client := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		buf := make([]byte, r.ContentLength)
		_, _ = r.Body.Read(buf)
		gotBody = string(buf)
		_, _ = w.Write([]byte(`{"success":true,"message":"ok","data":{"id":"u1"}}`))
	})

	if _, err := client.AssignRoles(context.Background(), "u1", []string{"r1", "r2"}); err != nil {
		t.Fatalf("AssignRoles() error = %v", err)
	}

	if gotBody != `{"roleIds":["r1","r2"]}` {
		t.Fatalf("body = %q", gotBody)
	}
}

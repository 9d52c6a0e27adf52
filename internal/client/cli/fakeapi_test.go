package cli

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/dmitrijs2005/syspark/internal/client/models"
)

const apiToken = "tok-1"

// fakeAPI is an in-memory users API with the status codes of the real one.
type fakeAPI struct {
	mu       sync.Mutex
	accounts []models.Account
	nextID   int
}

func newFakeAPI(t *testing.T, n int) (*fakeAPI, string) {
	t.Helper()
	api := &fakeAPI{nextID: 1}
	for i := 0; i < n; i++ {
		api.add(models.Account{
			Username: "user" + strconv.Itoa(i+1),
			Password: "pw",
			Role:     models.RoleBasic,
			Profile:  models.Profile{Name: "User " + strconv.Itoa(i+1), Email: "u@x.com", Phone: "1", CPF: "529.982.247-25"},
		})
	}
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)
	return api, srv.URL
}

func (f *fakeAPI) add(a models.Account) models.Account {
	a.ID = models.ID(strconv.Itoa(f.nextID))
	f.nextID++
	f.accounts = append(f.accounts, a)
	return a
}

func (f *fakeAPI) find(id string) int {
	for i, a := range f.accounts {
		if string(a.ID) == id {
			return i
		}
	}
	return -1
}

func (f *fakeAPI) snapshot() []models.Account {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Account{}, f.accounts...)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func public(a models.Account) models.Account {
	a.Password = ""
	return a
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if r.URL.Path == "/api/login" {
		var creds models.Credentials
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &creds)
		if creds.Username != "admin" || creds.Password != "pw" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		writeJSON(w, models.LoginResponse{AccessToken: apiToken, Username: "admin", Role: models.RoleAdmin})
		return
	}

	if r.Header.Get("Authorization") != "Bearer "+apiToken {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	id := r.URL.Query().Get("id")
	switch {
	case r.URL.Path == "/api/users/find" && r.Method == http.MethodGet:
		i := f.find(id)
		if i < 0 {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		writeJSON(w, public(f.accounts[i]))

	case r.URL.Path != "/api/users":
		w.WriteHeader(http.StatusNotFound)

	case r.Method == http.MethodGet:
		size, _ := strconv.Atoi(r.URL.Query().Get("size"))
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		from := min(page*size, len(f.accounts))
		to := min(from+size, len(f.accounts))
		content := make([]models.Account, 0, to-from)
		for _, a := range f.accounts[from:to] {
			content = append(content, public(a))
		}
		writeJSON(w, map[string]any{
			"content":       content,
			"totalElements": len(f.accounts),
			"totalPages":    models.TotalPages(len(f.accounts), size),
			"size":          size,
			"number":        page,
		})

	case r.Method == http.MethodPost:
		var a models.Account
		_ = json.NewDecoder(r.Body).Decode(&a)
		for _, existing := range f.accounts {
			if existing.Username == a.Username {
				w.WriteHeader(http.StatusUnprocessableEntity)
				return
			}
		}
		writeJSON(w, public(f.add(a)))

	case r.Method == http.MethodPut:
		i := f.find(id)
		if i < 0 {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		var a models.Account
		_ = json.NewDecoder(r.Body).Decode(&a)
		a.ID = f.accounts[i].ID
		if a.Password == "" {
			a.Password = f.accounts[i].Password
		}
		f.accounts[i] = a
		writeJSON(w, public(a))

	case r.Method == http.MethodDelete:
		i := f.find(id)
		if i < 0 {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		f.accounts = append(f.accounts[:i], f.accounts[i+1:]...)
		w.WriteHeader(http.StatusOK)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// Package fakeapi is an in-memory implementation of the fitness REST API for
// tests. It issues HS256 tokens, keeps goals per user and records every request
// it receives.
package fakeapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/fittrack/internal/client/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// Request is what the fake saw of one incoming request.
type Request struct {
	Method        string
	Path          string
	Authorization string
}

type account struct {
	user     models.User
	password string
}

type failure struct {
	status  int
	message string
}

type userIDKey struct{}

// API is the fake server state. The zero value is not usable; call New.
type API struct {
	mu       sync.Mutex
	secret   []byte
	now      func() time.Time
	accounts map[string]account
	goals    map[string][]models.Goal
	progress map[string]float64
	requests []Request
	failures []failure

	router *mux.Router
}

func New() *API {
	a := &API{
		secret:   []byte("fakeapi-secret"),
		now:      func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
		accounts: map[string]account{},
		goals:    map[string][]models.Goal{},
		progress: map[string]float64{},
	}

	r := mux.NewRouter()
	r.HandleFunc("/api/auth/register", a.register).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/login", a.login).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/logout", a.logout).Methods(http.MethodPost)

	g := r.PathPrefix("/api/goals").Subrouter()
	g.Use(a.authenticate)
	g.HandleFunc("", a.listGoals).Methods(http.MethodGet)
	g.HandleFunc("", a.createGoal).Methods(http.MethodPost)
	g.HandleFunc("/{id}", a.updateGoal).Methods(http.MethodPut)
	g.HandleFunc("/{id}", a.deleteGoal).Methods(http.MethodDelete)
	g.HandleFunc("/{id}/progress", a.trackProgress).Methods(http.MethodPost)
	g.HandleFunc("/{id}/share", a.shareGoal).Methods(http.MethodPost)

	a.router = r
	return a
}

// Handler records each request, serves any queued failure, then routes.
func (a *API) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		a.mu.Lock()
		a.requests = append(a.requests, Request{
			Method:        r.Method,
			Path:          r.URL.EscapedPath(),
			Authorization: r.Header.Get("Authorization"),
		})
		var f *failure
		if len(a.failures) > 0 {
			f = &a.failures[0]
			a.failures = a.failures[1:]
		}
		a.mu.Unlock()

		if f != nil {
			if f.message == "" {
				w.WriteHeader(f.status)
				return
			}
			writeError(w, f.status, f.message)
			return
		}
		a.router.ServeHTTP(w, r)
	})
}

// FailNext makes the next request answer with status and a {"message"} body.
// An empty message sends no body at all.
func (a *API) FailNext(status int, message string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.failures = append(a.failures, failure{status: status, message: message})
}

// Requests returns a copy of the request log.
func (a *API) Requests() []Request {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]Request(nil), a.requests...)
}

// RequestCount is len(Requests()).
func (a *API) RequestCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.requests)
}

// Seed registers an account directly and returns its profile.
func (a *API) Seed(email, password, name string) models.User {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.addAccount(email, password, name)
}

// Token mints a bearer token for u the way login does.
func (a *API) Token(u models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":   u.ID,
		"id":    u.ID,
		"email": u.Email,
		"name":  u.Name,
		"iat":   a.now().Unix(),
		"exp":   a.now().Add(time.Hour).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

func (a *API) addAccount(email, password, name string) models.User {
	u := models.User{ID: uuid.NewString(), Email: email, Name: name}
	a.accounts[strings.ToLower(email)] = account{user: u, password: password}
	return u
}

func (a *API) register(w http.ResponseWriter, r *http.Request) {
	var in models.Credentials
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	a.mu.Lock()
	if _, ok := a.accounts[strings.ToLower(in.Email)]; ok {
		a.mu.Unlock()
		writeError(w, http.StatusConflict, "User already exists")
		return
	}
	name, _, _ := strings.Cut(in.Email, "@")
	u := a.addAccount(in.Email, in.Password, name)
	a.mu.Unlock()

	a.issue(w, http.StatusCreated, u)
}

func (a *API) login(w http.ResponseWriter, r *http.Request) {
	var in models.Credentials
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	a.mu.Lock()
	acc, ok := a.accounts[strings.ToLower(in.Email)]
	a.mu.Unlock()
	if !ok || acc.password != in.Password {
		writeError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	a.issue(w, http.StatusOK, acc.user)
}

func (a *API) issue(w http.ResponseWriter, status int, u models.User) {
	token, err := a.Token(u)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not issue token")
		return
	}
	writeJSON(w, status, models.AuthResponse{User: u, Token: token})
}

func (a *API) logout(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || raw == "" {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		claims := jwt.MapClaims{}
		_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
			return a.secret, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		sub, err := claims.GetSubject()
		if err != nil || sub == "" {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userIDKey{}, sub)))
	})
}

func userID(r *http.Request) string {
	id, _ := r.Context().Value(userIDKey{}).(string)
	return id
}

func (a *API) listGoals(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	goals := append([]models.Goal{}, a.goals[userID(r)]...)
	a.mu.Unlock()
	writeJSON(w, http.StatusOK, goals)
}

func (a *API) createGoal(w http.ResponseWriter, r *http.Request) {
	var in models.GoalInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	now := a.now()
	goal := models.Goal{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Description: in.Description,
		TargetValue: in.TargetValue,
		Unit:        in.Unit,
		DueDate:     in.DueDate,
		IsCompleted: in.IsCompleted,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	a.mu.Lock()
	uid := userID(r)
	a.goals[uid] = append(a.goals[uid], goal)
	a.mu.Unlock()

	writeJSON(w, http.StatusCreated, goal)
}

const msgGoalNotFound = "Goal not found"

// withGoal runs fn on the caller's goal named by the {id} route variable.
func (a *API) withGoal(r *http.Request, fn func(g *models.Goal)) (models.Goal, bool) {
	id := mux.Vars(r)["id"]

	a.mu.Lock()
	defer a.mu.Unlock()
	goals := a.goals[userID(r)]
	for i := range goals {
		if goals[i].ID == id {
			fn(&goals[i])
			return goals[i], true
		}
	}
	return models.Goal{}, false
}

func (a *API) updateGoal(w http.ResponseWriter, r *http.Request) {
	var upd models.GoalUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	goal, ok := a.withGoal(r, func(g *models.Goal) {
		if upd.Title != nil {
			g.Title = *upd.Title
		}
		if upd.Description != nil {
			g.Description = *upd.Description
		}
		if upd.TargetValue != nil {
			g.TargetValue = *upd.TargetValue
		}
		if upd.Unit != nil {
			g.Unit = *upd.Unit
		}
		if upd.DueDate != nil {
			g.DueDate = *upd.DueDate
		}
		if upd.IsCompleted != nil {
			g.IsCompleted = *upd.IsCompleted
		}
		g.UpdatedAt = a.now()
	})
	if !ok {
		writeError(w, http.StatusNotFound, msgGoalNotFound)
		return
	}
	writeJSON(w, http.StatusOK, goal)
}

func (a *API) deleteGoal(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	a.mu.Lock()
	uid := userID(r)
	goals := a.goals[uid]
	found := false
	for i := range goals {
		if goals[i].ID == id {
			a.goals[uid] = append(goals[:i:i], goals[i+1:]...)
			delete(a.progress, id)
			found = true
			break
		}
	}
	a.mu.Unlock()

	if !found {
		writeError(w, http.StatusNotFound, msgGoalNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// trackProgress accumulates progress and completes the goal once the running
// total reaches its target.
func (a *API) trackProgress(w http.ResponseWriter, r *http.Request) {
	var in models.ProgressInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if in.GoalID != mux.Vars(r)["id"] {
		writeError(w, http.StatusBadRequest, "Progress goal mismatch")
		return
	}

	goal, ok := a.withGoal(r, func(g *models.Goal) {
		a.progress[g.ID] += in.Value
		if a.progress[g.ID] >= g.TargetValue {
			g.IsCompleted = true
		}
		g.UpdatedAt = a.now()
	})
	if !ok {
		writeError(w, http.StatusNotFound, msgGoalNotFound)
		return
	}
	writeJSON(w, http.StatusOK, goal)
}

func (a *API) shareGoal(w http.ResponseWriter, r *http.Request) {
	if _, ok := a.withGoal(r, func(*models.Goal) {}); !ok {
		writeError(w, http.StatusNotFound, msgGoalNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

package admin

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/abhisek/pbi/internal/auth"
	"github.com/abhisek/pbi/internal/scoring"
	"github.com/abhisek/pbi/internal/store"
)

type contextKey string

const usernameKey contextKey = "username"

// defaultRecentLimit caps the results returned by /api/stats.
const defaultRecentLimit = 10

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

type statsResponse struct {
	Completions int64          `json:"completions"`
	Levels      map[string]int `json:"levels"`
	Recent      []resultView   `json:"recent"`
}

type resultView struct {
	Sequence      int64     `json:"sequence"`
	SessionID     string    `json:"sessionId"`
	CompletedAt   time.Time `json:"completedAt"`
	Exhaustion    float64   `json:"exhaustion"`
	Disengagement float64   `json:"disengagement"`
	Efficacy      float64   `json:"efficacy"`
	Level         string    `json:"level"`
	ProfileFields int       `json:"profileFields"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleLogin handles POST /api/login.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, err := s.gate.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			s.logger.Warn("admin login rejected", "username", req.Username)
			writeError(w, http.StatusUnauthorized, err.Error())
			return
		}
		s.logger.Error("issue token", "err", err)
		writeError(w, http.StatusInternalServerError, "could not issue token")
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{Token: token})
}

// handleStats handles GET /api/stats.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	s.logger.Debug("stats requested", "admin", Username(ctx))

	n, err := s.counter.Count(ctx)
	if err != nil {
		s.internalError(w, "read completion count", err)
		return
	}
	levels, err := s.results.LevelDistribution(ctx)
	if err != nil {
		s.internalError(w, "read level distribution", err)
		return
	}
	// Every level is listed, including empty ones.
	for _, l := range scoring.AllLevels() {
		if _, ok := levels[l.Name]; !ok {
			levels[l.Name] = 0
		}
	}

	recent, err := s.results.Recent(ctx, store.QueryOpts{Limit: defaultRecentLimit})
	if err != nil {
		s.internalError(w, "read recent results", err)
		return
	}

	writeJSON(w, http.StatusOK, statsResponse{
		Completions: n,
		Levels:      levels,
		Recent:      toViews(recent),
	})
}

// handleResults handles GET /api/results?limit=&level=.
func (s *Server) handleResults(w http.ResponseWriter, r *http.Request) {
	opts := store.QueryOpts{Level: r.URL.Query().Get("level")}
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		opts.Limit = n
	}
	if opts.Level != "" {
		if _, ok := scoring.LevelByName(opts.Level); !ok {
			writeError(w, http.StatusBadRequest, "unknown level")
			return
		}
	}

	results, err := s.results.Recent(r.Context(), opts)
	if err != nil {
		s.internalError(w, "read results", err)
		return
	}
	writeJSON(w, http.StatusOK, toViews(results))
}

// requireSession validates the bearer token from the Authorization header.
func (s *Server) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractBearerToken(r)
		if token == "" {
			writeError(w, http.StatusUnauthorized, "missing authorization header")
			return
		}

		claims, err := s.gate.Validate(token)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), usernameKey, claims.Username)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Username returns the authenticated admin stored by the session middleware.
func Username(ctx context.Context) string {
	if v, ok := ctx.Value(usernameKey).(string); ok {
		return v
	}
	return ""
}

func (s *Server) internalError(w http.ResponseWriter, what string, err error) {
	s.logger.Error(what, "err", err)
	writeError(w, http.StatusInternalServerError, "internal error")
}

func toViews(results []store.Result) []resultView {
	views := make([]resultView, len(results))
	for i, r := range results {
		views[i] = resultView{
			Sequence:      r.Sequence,
			SessionID:     r.SessionID,
			CompletedAt:   r.CompletedAt,
			Exhaustion:    r.Scores.Exhaustion,
			Disengagement: r.Scores.Disengagement,
			Efficacy:      r.Scores.Efficacy,
			Level:         r.Level,
			ProfileFields: r.Demographics.Provided(),
		}
	}
	return views
}

func extractBearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

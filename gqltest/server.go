package gqltest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/golang-jwt/jwt/v5"
	"github.com/graphql-go/graphql"
)

// Path is where the GraphQL endpoint is mounted.
const Path = "/graphql"

type Options struct {
	// Token, when set, must be presented as "Authorization: Bearer <Token>".
	Token string
	// JWTSecret, when set, requires a bearer HS256 JWT signed with it.
	JWTSecret []byte
}

type request struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// Server records every request it receives.
type Server struct {
	*httptest.Server

	m       sync.Mutex
	queries []string
	headers []http.Header
}

func NewServer(opts Options) *Server {
	schema, err := NewSchema()
	if err != nil {
		panic(err)
	}

	s := &Server{}
	s.Server = httptest.NewServer(s.router(schema, opts))

	return s
}

// Endpoint is the URL of the GraphQL endpoint.
func (s *Server) Endpoint() string {
	return s.Server.URL + Path
}

func (s *Server) Queries() []string {
	s.m.Lock()
	defer s.m.Unlock()

	return append([]string(nil), s.queries...)
}

func (s *Server) LastHeader() http.Header {
	s.m.Lock()
	defer s.m.Unlock()

	if len(s.headers) == 0 {
		return nil
	}
	return s.headers[len(s.headers)-1]
}

func (s *Server) router(schema graphql.Schema, opts Options) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.record)

	r.Group(func(r chi.Router) {
		r.Use(authenticate(opts))
		r.Post(Path, s.serve(schema))
	})

	return r
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.m.Lock()
		s.headers = append(s.headers, r.Header.Clone())
		s.m.Unlock()

		next.ServeHTTP(w, r)
	})
}

func (s *Server) recordQuery(q string) {
	s.m.Lock()
	s.queries = append(s.queries, q)
	s.m.Unlock()
}

func authenticate(opts Options) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if opts.Token == "" && opts.JWTSecret == nil {
				next.ServeHTTP(w, r)
				return
			}

			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok {
				unauthorized(w, "missing bearer token")
				return
			}

			if opts.Token != "" && token != opts.Token {
				unauthorized(w, "invalid token")
				return
			}

			if opts.JWTSecret != nil {
				_, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
					return opts.JWTSecret, nil
				}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
				if err != nil {
					unauthorized(w, err.Error())
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"errors": []map[string]string{{"message": message}},
	})
}

func (s *Server) serve(schema graphql.Schema) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"errors": []map[string]string{{"message": "invalid request body: " + err.Error()}},
			})
			return
		}

		s.recordQuery(req.Query)

		res := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			VariableValues: req.Variables,
			OperationName:  req.OperationName,
			Context:        r.Context(),
		})

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(res)
	}
}

// SignToken returns an HS256 JWT expiring at exp.
func SignToken(secret []byte, exp time.Time) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "gqltest",
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString(secret)
}

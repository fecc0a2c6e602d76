// Package source streams the records of a configured GraphQL query.
package source

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/infiotinc/gqlsource/client"
	"github.com/infiotinc/gqlsource/client/transport"
	"github.com/infiotinc/gqlsource/config"
	"github.com/infiotinc/gqlsource/query"
)

// Source runs the first configured query and streams its records.
type Source struct {
	cfg      config.Config
	specs    []query.Spec
	encoding query.Encoding
	path     *Path

	exec       Executor
	reporter   Reporter
	logger     *slog.Logger
	httpClient *http.Client
}

type Option func(s *Source)

// WithExecutor replaces the HTTP client built from the configuration.
func WithExecutor(e Executor) Option {
	return func(s *Source) {
		s.exec = e
	}
}

// WithReporter sets where failed runs are reported, LogReporter by default.
func WithReporter(r Reporter) Option {
	return func(s *Source) {
		s.reporter = r
	}
}

// WithHTTPClient sets the client used to reach the endpoint. Its timeout is
// left untouched.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Source) {
		s.httpClient = c
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Source) {
		s.logger = l
	}
}

// New validates cfg and prepares the source. Any error is a
// *config.ConfigurationError.
func New(cfg *config.Config, opts ...Option) (*Source, error) {
	s := &Source{cfg: *cfg}
	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.reporter == nil {
		s.reporter = LogReporter{Logger: s.logger}
	}

	s.cfg.SetDefaults()
	if err := s.cfg.Validate(); err != nil {
		return nil, err
	}

	var err error
	if s.specs, err = s.cfg.Queries(); err != nil {
		return nil, err
	}
	if s.encoding, err = s.cfg.Encoding(); err != nil {
		return nil, &config.ConfigurationError{Key: "argument_encoding", Err: err}
	}

	if s.cfg.RecordPath != "" {
		if s.path, err = CompilePath(s.cfg.RecordPath); err != nil {
			return nil, &config.ConfigurationError{Key: "record_path", Err: err}
		}
	}

	if len(s.specs) > 1 {
		s.logger.Warn("only the first configured query is executed", "query", s.specs[0].Name, "ignored", len(s.specs)-1)
	}

	if s.exec == nil {
		if s.exec, err = s.newClient(); err != nil {
			return nil, err
		}
	}

	s.checkToken()

	return s, nil
}

func (s *Source) newClient() (*client.Client, error) {
	timeout, err := s.cfg.TimeoutDuration()
	if err != nil {
		return nil, &config.ConfigurationError{Key: "timeout", Err: err}
	}

	hc := s.httpClient
	if hc == nil {
		hc = &http.Client{Timeout: timeout}
	}

	var opts []transport.HttpRequestOption
	for k, v := range s.cfg.Headers {
		opts = append(opts, transport.Header(k, v))
	}
	if auth := s.cfg.Authorization(); auth != "" {
		opts = append(opts, transport.Header("Authorization", auth))
	}

	c := client.NewHttp(s.cfg.Endpoint, hc, opts...)
	c.Logger = s.logger

	return c, nil
}

// checkToken warns about a jwt_token that is malformed or already expired.
// The signature is not verified, the endpoint does that.
func (s *Source) checkToken() {
	if s.cfg.JWTToken == "" {
		return
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(s.cfg.JWTToken, claims); err != nil {
		s.logger.Warn("jwt_token is not a JWT", "error", err)
		return
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return
	}
	if exp.Before(time.Now()) {
		s.logger.Warn("jwt_token has expired", "expired_at", exp.Time)
	}
}

// Document builds the query that Records runs.
func (s *Source) Document() *query.Document {
	return query.BuildSpec(s.specs[0], query.WithEncoding(s.encoding))
}

// Records returns a new stream. Each stream executes the query once, so a
// second pass means a second call to Records.
func (s *Source) Records(ctx context.Context) *RecordStream {
	return &RecordStream{
		ctx:      ctx,
		exec:     s.exec,
		doc:      s.Document(),
		dataKey:  s.cfg.DataKey,
		path:     s.path,
		reporter: s.reporter,
		logger:   s.logger,
	}
}

// Fields lists the fields declared by every configured query.
func (s *Source) Fields() map[string]string {
	fields := make(map[string]string)
	for _, spec := range s.specs {
		for k, v := range query.DeclaredFields(spec) {
			fields[k] = v
		}
	}

	return fields
}

// IDs declares the identity key assigned downstream.
func (s *Source) IDs() map[string]string {
	return map[string]string{"id": "string"}
}

func (s *Source) String() string {
	return s.cfg.Endpoint
}

// Package config loads and validates the configuration of a GraphQL source.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/infiotinc/gqlsource/query"
	"gopkg.in/yaml.v2"
)

const (
	DefaultDataKey = "data"
	DefaultTimeout = 30 * time.Second
)

var ErrRequired = errors.New("is required")

type Config struct {
	Endpoint string `yaml:"endpoint"`

	AuthScheme     string            `yaml:"auth_scheme,omitempty"`
	AuthParameters string            `yaml:"auth_parameters,omitempty"`
	JWTToken       string            `yaml:"jwt_token,omitempty"`
	Headers        map[string]string `yaml:"headers,omitempty"`

	// Query maps a root query field to {fields, arguments, filters}.
	// Key order is kept, it decides which query and argument come first.
	Query yaml.MapSlice `yaml:"query"`

	DataKey          string `yaml:"data_key,omitempty"`
	RecordPath       string `yaml:"record_path,omitempty"`
	ArgumentEncoding string `yaml:"argument_encoding,omitempty"`
	Timeout          string `yaml:"timeout,omitempty"`
}

// Load reads and validates the configuration file at path.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, &ConfigurationError{Err: err}
	}

	return Parse(b)
}

// Parse decodes YAML (or JSON) and validates it.
func Parse(b []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, &ConfigurationError{Err: err}
	}

	cfg.SetDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// SetDefaults fills data_key and argument_encoding when unset.
func (c *Config) SetDefaults() {
	if c.DataKey == "" {
		c.DataKey = DefaultDataKey
	}
	if c.ArgumentEncoding == "" {
		c.ArgumentEncoding = query.EncodingLegacy.String()
	}
}

// Validate checks the required keys, then the whole document against the
// configuration schema, then the values the schema cannot judge.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Endpoint) == "" {
		return &ConfigurationError{Key: "endpoint", Err: ErrRequired}
	}
	if len(c.Query) == 0 {
		return &ConfigurationError{Key: "query", Err: ErrRequired}
	}

	if err := validateSchema(c.document()); err != nil {
		return err
	}

	if _, err := c.TimeoutDuration(); err != nil {
		return &ConfigurationError{Key: "timeout", Err: err}
	}
	if _, err := c.Encoding(); err != nil {
		return &ConfigurationError{Key: "argument_encoding", Err: err}
	}
	if _, err := c.Queries(); err != nil {
		return err
	}

	return nil
}

// Queries returns the configured queries in configuration order.
func (c *Config) Queries() ([]query.Spec, error) {
	specs := make([]query.Spec, 0, len(c.Query))
	for _, item := range c.Query {
		name := fmt.Sprint(item.Key)
		key := "query." + name

		def, ok := plain(item.Value).(query.Object)
		if !ok {
			return nil, &ConfigurationError{Key: key, Err: fmt.Errorf("must be a mapping, got %T", item.Value)}
		}

		spec := query.Spec{Name: name}

		rawFields, _ := def.Get("fields")
		entries, ok := rawFields.([]interface{})
		if !ok || len(entries) == 0 {
			return nil, &ConfigurationError{Key: key + ".fields", Err: errors.New("must be a non-empty list")}
		}

		fields, err := query.ParseFields(entries)
		if err != nil {
			return nil, &ConfigurationError{Key: key, Err: err}
		}
		spec.Fields = fields

		if rawArgs, ok := def.Get("arguments"); ok && rawArgs != nil {
			args, ok := rawArgs.(query.Object)
			if !ok {
				return nil, &ConfigurationError{Key: key + ".arguments", Err: fmt.Errorf("must be a mapping, got %T", rawArgs)}
			}
			spec.Arguments = args
		}

		if filters, ok := def.Get("filters"); ok {
			spec.Filters = filters
		}

		specs = append(specs, spec)
	}

	return specs, nil
}

func (c *Config) Encoding() (query.Encoding, error) {
	return query.ParseEncoding(c.ArgumentEncoding)
}

func (c *Config) TimeoutDuration() (time.Duration, error) {
	if c.Timeout == "" {
		return DefaultTimeout, nil
	}

	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("must be positive, got %s", c.Timeout)
	}

	return d, nil
}

// Authorization returns the Authorization header value, empty when no
// credentials are configured. jwt_token wins over auth_scheme.
func (c *Config) Authorization() string {
	if c.JWTToken != "" {
		return "Bearer " + c.JWTToken
	}
	if c.AuthScheme == "" && c.AuthParameters == "" {
		return ""
	}

	return strings.TrimSpace(c.AuthScheme + " " + c.AuthParameters)
}

// document is the JSON shaped view of c that the schema validates.
func (c *Config) document() map[string]interface{} {
	doc := map[string]interface{}{
		"endpoint": c.Endpoint,
		"query":    jsonValue(c.Query),
	}

	set := func(key, value string) {
		if value != "" {
			doc[key] = value
		}
	}
	set("auth_scheme", c.AuthScheme)
	set("auth_parameters", c.AuthParameters)
	set("jwt_token", c.JWTToken)
	set("data_key", c.DataKey)
	set("record_path", c.RecordPath)
	set("argument_encoding", c.ArgumentEncoding)
	set("timeout", c.Timeout)

	if c.Headers != nil {
		headers := make(map[string]interface{}, len(c.Headers))
		for k, v := range c.Headers {
			headers[k] = v
		}
		doc["headers"] = headers
	}

	return doc
}

// plain converts decoded YAML into the ordered values the query package
// works with.
func plain(v interface{}) interface{} {
	switch v := v.(type) {
	case yaml.MapSlice:
		obj := make(query.Object, 0, len(v))
		for _, item := range v {
			obj = append(obj, query.Member{Key: fmt.Sprint(item.Key), Value: plain(item.Value)})
		}
		return obj
	case map[interface{}]interface{}:
		m := make(map[string]interface{}, len(v))
		for k, e := range v {
			m[fmt.Sprint(k)] = plain(e)
		}
		return m
	case []interface{}:
		l := make([]interface{}, len(v))
		for i, e := range v {
			l[i] = plain(e)
		}
		return l
	default:
		return v
	}
}

// jsonValue converts decoded YAML into plain JSON values.
func jsonValue(v interface{}) interface{} {
	switch v := v.(type) {
	case yaml.MapSlice:
		m := make(map[string]interface{}, len(v))
		for _, item := range v {
			m[fmt.Sprint(item.Key)] = jsonValue(item.Value)
		}
		return m
	case map[interface{}]interface{}:
		m := make(map[string]interface{}, len(v))
		for k, e := range v {
			m[fmt.Sprint(k)] = jsonValue(e)
		}
		return m
	case []interface{}:
		l := make([]interface{}, len(v))
		for i, e := range v {
			l[i] = jsonValue(e)
		}
		return l
	default:
		return v
	}
}

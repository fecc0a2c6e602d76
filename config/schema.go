package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed schema.json
var schemaJSON []byte

const schemaURL = "config.schema.json"

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

// printer renders schema violations in English.
var printer = message.NewPrinter(language.English)

func schema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
		if err != nil {
			compileErr = fmt.Errorf("parsing configuration schema: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, doc); err != nil {
			compileErr = fmt.Errorf("adding configuration schema: %w", err)
			return
		}

		compiled, compileErr = c.Compile(schemaURL)
	})

	return compiled, compileErr
}

func validateSchema(doc map[string]interface{}) error {
	sch, err := schema()
	if err != nil {
		return err
	}

	err = sch.Validate(doc)
	if err == nil {
		return nil
	}

	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return &ConfigurationError{Err: err}
	}

	violations := map[string][]string{}
	collect(verr, violations)

	keys := make([]string, 0, len(violations))
	for k := range violations {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	// The first offending key names the error, all messages are kept.
	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, strings.Join(violations[k], "; "))
	}

	key := ""
	if len(keys) > 0 {
		key = keys[0]
	}

	return &ConfigurationError{Key: key, Err: errors.New(strings.Join(msgs, "; "))}
}

// collect gathers leaf violations by dotted instance path.
func collect(err *jsonschema.ValidationError, into map[string][]string) {
	if err.ErrorKind != nil && len(err.Causes) == 0 {
		msg := err.ErrorKind.LocalizedString(printer)
		path := strings.Join(err.InstanceLocation, ".")

		if !contains(into[path], msg) {
			into[path] = append(into[path], msg)
		}
	}

	for _, cause := range err.Causes {
		collect(cause, into)
	}
}

func contains(l []string, s string) bool {
	for _, e := range l {
		if e == s {
			return true
		}
	}

	return false
}

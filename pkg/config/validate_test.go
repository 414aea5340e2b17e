package config

import (
	"errors"
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		fields []string
	}{
		{"valid defaults", func(*Config) {}, nil},
		{"empty placeholder", func(c *Config) { c.Notation.Placeholder = "" }, []string{"notation.placeholder"}},
		{"placeholder with comma", func(c *Config) { c.Notation.Placeholder = "a,b" }, []string{"notation.placeholder"}},
		{"negative line length", func(c *Config) { c.Notation.MaxLineLength = -1 }, []string{"notation.max_line_length"}},
		{"extension without dot", func(c *Config) { c.Notation.Extensions = []string{"lex"} }, []string{"notation.extensions[0]"}},
		{"bad mode", func(c *Config) { c.Validation.Mode = "some" }, []string{"validation.mode"}},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }, []string{"logging.format"}},
		{"bad namespace", func(c *Config) { c.Metrics.Namespace = "my-app" }, []string{"metrics.namespace"}},
		{"negative debounce", func(c *Config) { c.Watch.Debounce = -1 }, []string{"watch.debounce"}},
		{
			"several",
			func(c *Config) {
				c.Validation.Mode = "x"
				c.Logging.Level = "y"
			},
			[]string{"validation.mode", "logging.level"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefaultConfig()
			tt.modify(cfg)

			err := Validate(cfg)
			if len(tt.fields) == 0 {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}

			var verr ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Validate() error = %v, want ValidationError", err)
			}
			if len(verr.Errors) != len(tt.fields) {
				t.Fatalf("got %d field errors, want %d: %v", len(verr.Errors), len(tt.fields), verr)
			}
			for i, field := range tt.fields {
				if verr.Errors[i].Field != field {
					t.Errorf("Errors[%d].Field = %q, want %q", i, verr.Errors[i].Field, field)
				}
			}
		})
	}
}

func TestValidationError_Error(t *testing.T) {
	single := ValidationError{Errors: []FieldError{{Field: "a", Message: "bad"}}}
	if got := single.Error(); got != "configuration validation failed: a: bad" {
		t.Errorf("Error() = %q", got)
	}

	multi := ValidationError{Errors: []FieldError{{Field: "a", Message: "bad"}, {Field: "b", Message: "worse"}}}
	got := multi.Error()
	if !strings.Contains(got, "2 errors") || !strings.Contains(got, "  - b: worse") {
		t.Errorf("Error() = %q", got)
	}
}

package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestCreateInputValidate(t *testing.T) {
	tests := []struct {
		name       string
		input      CreateInput
		wantFields []string
	}{
		{
			name:  "valid minimal",
			input: CreateInput{Name: "Grafana", URL: "https://grafana.example.com"},
		},
		{
			name:       "missing name",
			input:      CreateInput{URL: "https://grafana.example.com"},
			wantFields: []string{"name"},
		},
		{
			name:       "name too long",
			input:      CreateInput{Name: strings.Repeat("a", MaxNameLen+1), URL: "https://a.example"},
			wantFields: []string{"name"},
		},
		{
			name:       "relative url",
			input:      CreateInput{Name: "x", URL: "/just/a/path"},
			wantFields: []string{"url"},
		},
		{
			name:       "garbage url",
			input:      CreateInput{Name: "x", URL: "not a url"},
			wantFields: []string{"url"},
		},
		{
			name: "every optional too long",
			input: CreateInput{
				Name:         "x",
				URL:          "http://localhost:3000",
				Description:  strings.Repeat("d", MaxDescriptionLen+1),
				Icon:         strings.Repeat("i", MaxIconLen+1),
				StartCommand: strings.Repeat("s", MaxStartCommandLen+1),
			},
			wantFields: []string{"description", "icon", "startCommand"},
		},
		{
			name:  "multibyte icon counts characters",
			input: CreateInput{Name: "x", URL: "https://a.example", Icon: strings.Repeat("🚀", MaxIconLen)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Validate()
			if len(tt.wantFields) == 0 {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}

			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("Validate() = %v, want *ValidationError", err)
			}
			if len(ve.Issues) != len(tt.wantFields) {
				t.Fatalf("got %d issues (%v), want %d", len(ve.Issues), ve.Issues, len(tt.wantFields))
			}
			for i, f := range tt.wantFields {
				if ve.Issues[i].Field != f {
					t.Errorf("issue[%d].Field = %q, want %q", i, ve.Issues[i].Field, f)
				}
			}
		})
	}
}

func TestUpdateInputValidateOnlyPresentFields(t *testing.T) {
	if err := (UpdateInput{}).Validate(); err != nil {
		t.Fatalf("empty update should be valid, got %v", err)
	}

	err := UpdateInput{Name: Some(""), Description: Some("fine")}.Validate()
	if !IsValidation(err) {
		t.Fatalf("Validate() = %v, want validation error", err)
	}

	if err := (UpdateInput{URL: Some("http://localhost:9000")}).Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestValidateBatchPrefixesIndex(t *testing.T) {
	err := ValidateBatch([]CreateInput{
		{Name: "ok", URL: "https://ok.example"},
		{Name: "", URL: "https://bad.example"},
	})

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("ValidateBatch() = %v, want *ValidationError", err)
	}
	if got := ve.Issues[0].Field; got != "apps[1].name" {
		t.Errorf("field = %q, want %q", got, "apps[1].name")
	}
}

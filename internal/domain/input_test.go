package domain

import (
	"encoding/json"
	"testing"
)

func TestUpdateInputUnmarshalPresence(t *testing.T) {
	var in UpdateInput
	if err := json.Unmarshal([]byte(`{"description":"","tags":null,"isPinned":true}`), &in); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if in.Name.Set || in.URL.Set || in.Icon.Set || in.StartCommand.Set {
		t.Errorf("absent fields marked present: %+v", in)
	}
	if !in.Description.Set || in.Description.Value != "" {
		t.Errorf("description should be present and cleared, got %+v", in.Description)
	}
	if !in.Tags.Set || in.Tags.Value != nil {
		t.Errorf("tags should be present and cleared, got %+v", in.Tags)
	}
	if !in.IsPinned.Set || !in.IsPinned.Value {
		t.Errorf("isPinned = %+v, want present true", in.IsPinned)
	}
	if in.Empty() {
		t.Error("Empty() = true, want false")
	}
}

func TestUpdateInputMarshalOmitsAbsent(t *testing.T) {
	data, err := json.Marshal(UpdateInput{Name: Some("Plex")})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if got, want := string(data), `{"name":"Plex"}`; got != want {
		t.Errorf("Marshal() = %s, want %s", got, want)
	}
}

func TestParseStrategy(t *testing.T) {
	tests := []struct {
		in     string
		want   Strategy
		wantOK bool
	}{
		{"", StrategySkip, true},
		{"skip", StrategySkip, true},
		{"replace", StrategyReplace, true},
		{"merge", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseStrategy(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseStrategy(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

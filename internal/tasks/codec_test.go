package tasks

import (
	"errors"
	"reflect"
	"testing"

	"github.com/Makepad-fr/tada/internal/model"
)

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		list []model.Task
	}{
		{"empty", []model.Task{}},
		{"single default", []model.Task{{}}},
		{"mixed", []model.Task{
			{Title: "Buy milk", Done: true},
			{Title: "", Done: false},
			{Title: "Call \"mum\" ✔", Done: false},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := Encode(tt.list)
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}
			got, err := Decode(raw)
			if err != nil {
				t.Fatalf("Decode(%s): %v", raw, err)
			}
			if !reflect.DeepEqual(got, tt.list) {
				t.Errorf("round trip: got %+v, want %+v", got, tt.list)
			}
		})
	}
}

func TestEncodeNil(t *testing.T) {
	raw, err := Encode(nil)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if raw != "[]" {
		t.Errorf("Encode(nil): got %q, want %q", raw, "[]")
	}
}

func TestDecodeTolerant(t *testing.T) {
	got, err := Decode(`[{"title":"A","done":true,"id":7},{"title":"B"},{}]`)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	want := []model.Task{{Title: "A", Done: true}, {Title: "B"}, {}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Decode: got %+v, want %+v", got, want)
	}
}

func TestDecodeMalformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", "{oops"},
		{"empty string", ""},
		{"null", "null"},
		{"object", `{"title":"A"}`},
		{"array of strings", `["A","B"]`},
		{"title wrong type", `[{"title":1,"done":false}]`},
		{"done wrong type", `[{"title":"A","done":"yes"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.raw)
			if !errors.Is(err, ErrMalformed) {
				t.Errorf("Decode(%q): got %v, want ErrMalformed", tt.raw, err)
			}
		})
	}
}

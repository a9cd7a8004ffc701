package tokenize

import (
	"reflect"
	"testing"
)

func fieldStrings(fields [][]byte) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = string(f)
	}
	return out
}

func TestFields(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", []string{""}},
		{"simple", "a,b,c", []string{"a", "b", "c"}},
		{"trailing empty field", "a,b,", []string{"a", "b", ""}},
		{"quoted comma", `"a,b",c`, []string{`"a,b"`, "c"}},
		{"doubled quote retains state", `"a""b",c`, []string{`"a""b"`, "c"}},
		{"unbalanced quote is total", `"a,b`, []string{`"a,b`}},
		{"quote mid field", `a"b",c`, []string{`a"b"`, "c"}},
	}

	var buf [][]byte
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf = Fields([]byte(tt.input), buf)
			got := fieldStrings(buf)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Fields(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFieldsReusesBuffer(t *testing.T) {
	buf := make([][]byte, 0, 8)
	buf = Fields([]byte("a,b,c"), buf)
	if len(buf) != 3 {
		t.Fatalf("len = %d, want 3", len(buf))
	}
	buf = Fields([]byte("x,y"), buf)
	if len(buf) != 2 {
		t.Fatalf("len = %d, want 2", len(buf))
	}
	if string(buf[0]) != "x" || string(buf[1]) != "y" {
		t.Fatalf("buf = %q", fieldStrings(buf))
	}
}

func TestToggleQuote(t *testing.T) {
	state := false
	for _, c := range []byte(`a""b`) {
		state = ToggleQuote(c, state)
	}
	if state {
		t.Fatalf("expected balanced doubled quote to leave state false, got true")
	}
}

package ingredients

import (
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want []string
	}{
		{name: "commas", in: "계란, 김치, 양파", want: []string{"계란", "김치", "양파"}},
		{name: "newlines", in: "계란\n김치\n양파", want: []string{"계란", "김치", "양파"}},
		{name: "mixed separators and noise", in: " a, b \n c ,,", want: []string{"a", "b", "c"}},
		{name: "duplicates pass through", in: "계란, 계란", want: []string{"계란", "계란"}},
		{name: "empty", in: "", want: []string{}},
		{name: "only separators", in: ",\n, \n ,", want: []string{}},
	}

	for _, tc := range tests {
		if got := Parse(tc.in); !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("%s: Parse(%q) = %v, want %v", tc.name, tc.in, got, tc.want)
		}
	}
}

func TestToggleToolConcrete(t *testing.T) {
	t.Parallel()

	got := ToggleTool([]string{"프라이팬"}, "냄비")
	if !reflect.DeepEqual(got, []string{"프라이팬", "냄비"}) {
		t.Fatalf("expected multi-select append, got %v", got)
	}

	got = ToggleTool(got, "프라이팬")
	if !reflect.DeepEqual(got, []string{"냄비"}) {
		t.Fatalf("expected deselect to remove, got %v", got)
	}
}

func TestToggleToolSentinel(t *testing.T) {
	t.Parallel()

	// Selecting the sentinel clears every concrete tool.
	got := ToggleTool([]string{"프라이팬", "오븐"}, ToolAny)
	if !reflect.DeepEqual(got, []string{ToolAny}) {
		t.Fatalf("expected sentinel-only selection, got %v", got)
	}

	// Toggling the sentinel off leaves nothing selected.
	got = ToggleTool(got, ToolAny)
	if len(got) != 0 {
		t.Fatalf("expected empty selection, got %v", got)
	}

	// Selecting a concrete tool drops the sentinel.
	got = ToggleTool([]string{ToolAny}, "전자레인지")
	if !reflect.DeepEqual(got, []string{"전자레인지"}) {
		t.Fatalf("expected sentinel replaced by tool, got %v", got)
	}
}

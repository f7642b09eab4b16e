package strings

import (
	"reflect"
	"testing"
)

func TestIfEmpty(t *testing.T) {
	def := []string{"a"}
	if got := IfEmpty(nil, def); !reflect.DeepEqual(got, def) {
		t.Fatalf("got %v", got)
	}
	in := []string{"b"}
	if got := IfEmpty(in, def); !reflect.DeepEqual(got, in) {
		t.Fatalf("got %v", got)
	}
}

func TestMustString(t *testing.T) {
	if MustString("x", "name") != "x" {
		t.Fatal("expected passthrough")
	}
	defer func() {
		r := recover()
		if r == nil || r.(string) != "name is required" {
			t.Fatalf("unexpected panic value %v", r)
		}
	}()
	MustString("  ", "name")
}

func TestBasePath(t *testing.T) {
	cases := map[string]string{
		"":        "/",
		"/":       "/",
		"scan":    "/scan",
		"/scan/":  "/scan",
		" /a/b/ ": "/a/b",
	}
	for in, want := range cases {
		if got := BasePath(in); got != want {
			t.Fatalf("BasePath(%q) = %q, want %q", in, got, want)
		}
	}
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	kit "scanweb/internal/platform/testkit"
)

func TestPrefixAndKey(t *testing.T) {
	root := New()
	scan := root.Prefix("SCAN_")
	if got := scan.key("SCRIPT"); got != "SCAN_SCRIPT" {
		t.Fatalf("key() = %q, want %q", got, "SCAN_SCRIPT")
	}
	nested := scan.Prefix("PROBE_")
	if got := nested.key("CMD"); got != "SCAN_PROBE_CMD" {
		t.Fatalf("nested key() = %q, want %q", got, "SCAN_PROBE_CMD")
	}
}

func TestMustString(t *testing.T) {
	c := New().Prefix("APP_")
	t.Setenv("APP_NAME", "  scanweb ")
	if got := c.MustString("NAME"); got != "scanweb" {
		t.Fatalf("MustString = %q, want %q", got, "scanweb")
	}
	kit.MustPanic(t, func() { _ = c.MustString("MISSING") })
}

func TestMustInt(t *testing.T) {
	c := New().Prefix("SVC_")
	t.Setenv("SVC_WORKERS", "  8 ")
	if got := c.MustInt("WORKERS"); got != 8 {
		t.Fatalf("MustInt = %d, want %d", got, 8)
	}
	t.Setenv("SVC_BAD", "x")
	kit.MustPanic(t, func() { _ = c.MustInt("BAD") })
}

func TestHas(t *testing.T) {
	c := New().Prefix("H_")
	t.Setenv("H_SET", "1")
	t.Setenv("H_BLANK", "   ")
	if !c.Has("SET") || c.Has("BLANK") || c.Has("MISSING") {
		t.Fatalf("Has mismatch")
	}
}

func TestMayString(t *testing.T) {
	c := New().Prefix("S_")
	if got := c.MayString("MISSING", "def"); got != "def" {
		t.Fatalf("MayString default = %q, want %q", got, "def")
	}
	t.Setenv("S_NAME", " scanweb ")
	if got := c.MayString("NAME", "x"); got != "scanweb" {
		t.Fatalf("MayString value = %q, want %q", got, "scanweb")
	}
}

func TestMayRawKeepsWhitespace(t *testing.T) {
	c := New()
	t.Setenv("RAW_FMT", "%Y %m ")
	if got := c.MayRaw("RAW_FMT", "x"); got != "%Y %m " {
		t.Fatalf("MayRaw = %q", got)
	}
	if got := c.MayRaw("RAW_MISSING", "def"); got != "def" {
		t.Fatalf("MayRaw default = %q", got)
	}
}

func TestMayInt(t *testing.T) {
	c := New().Prefix("I_")
	if got := c.MayInt("MISSING", 9); got != 9 {
		t.Fatalf("MayInt default = %d, want %d", got, 9)
	}
	t.Setenv("I_OK", " 7 ")
	if got := c.MayInt("OK", 0); got != 7 {
		t.Fatalf("MayInt ok = %d, want %d", got, 7)
	}
	t.Setenv("I_BAD", "x")
	if got := c.MayInt("BAD", 3); got != 3 {
		t.Fatalf("MayInt bad -> default = %d, want %d", got, 3)
	}
}

func TestMayBool(t *testing.T) {
	c := New().Prefix("B_")
	cases := []struct {
		env  string
		def  bool
		want bool
	}{
		{"", true, true},
		{"true", false, true},
		{"1", false, true},
		{"on", false, true},
		{"YES", false, true},
		{"off", true, false},
		{"0", true, false},
		{"nope", false, false},
	}
	for _, tc := range cases {
		t.Setenv("B_V", tc.env)
		if got := c.MayBool("V", tc.def); got != tc.want {
			t.Fatalf("MayBool(%q, %v) = %v, want %v", tc.env, tc.def, got, tc.want)
		}
	}
}

func TestMayDuration(t *testing.T) {
	c := New().Prefix("DUR_")
	if got := c.MayDuration("MISS", 5*time.Second); got != 5*time.Second {
		t.Fatalf("MayDuration default expected")
	}
	t.Setenv("DUR_OK", "150ms")
	if got := c.MayDuration("OK", time.Second); got != 150*time.Millisecond {
		t.Fatalf("MayDuration ok = %v, want %v", got, 150*time.Millisecond)
	}
	t.Setenv("DUR_BAD", "nope")
	if got := c.MayDuration("BAD", time.Minute); got != time.Minute {
		t.Fatalf("MayDuration bad -> default expected")
	}
}

func TestMayCSV(t *testing.T) {
	c := New()
	def := []string{"ADF Front", "ADF Back"}
	if got := c.MayCSV("SOURCES_MISSING", def); len(got) != 2 || got[0] != "ADF Front" {
		t.Fatalf("MayCSV default mismatch: %#v", got)
	}
	t.Setenv("CSV_SOURCES", " ADF Front, Flatbed , ,ADF Duplex ,, ")
	got := c.MayCSV("CSV_SOURCES", nil)
	want := []string{"ADF Front", "Flatbed", "ADF Duplex"}
	if len(got) != len(want) {
		t.Fatalf("MayCSV len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("MayCSV[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	t.Setenv("CSV_EMPTY", " , ,  ,")
	if got := c.MayCSV("CSV_EMPTY", []string{"fallback"}); len(got) != 1 || got[0] != "fallback" {
		t.Fatalf("MayCSV all-empty -> default mismatch: %#v", got)
	}
}

func TestMustCSV(t *testing.T) {
	c := New()
	def := []string{"Lineart", "Gray", "Color"}
	t.Setenv("CSV_MODES", "")
	if got := c.MustCSV("CSV_MODES", def); len(got) != 3 {
		t.Fatalf("unset should use default: %#v", got)
	}
	t.Setenv("CSV_MODES", " Color ,")
	if got := c.MustCSV("CSV_MODES", def); len(got) != 1 || got[0] != "Color" {
		t.Fatalf("MustCSV = %#v", got)
	}
	for _, v := range []string{",", " , ,"} {
		t.Setenv("CSV_MODES", v)
		kit.MustPanic(t, func() { _ = c.MustCSV("CSV_MODES", def) })
	}
}

func TestMustCSVInts(t *testing.T) {
	c := New()
	if got := c.MustCSVInts("RES_MISSING", []int{150}); len(got) != 1 || got[0] != 150 {
		t.Fatalf("MustCSVInts default mismatch: %#v", got)
	}
	t.Setenv("RES_OK", "150, 300,600")
	got := c.MustCSVInts("RES_OK", nil)
	if len(got) != 3 || got[0] != 150 || got[1] != 300 || got[2] != 600 {
		t.Fatalf("MustCSVInts = %#v", got)
	}
	t.Setenv("RES_BAD", "150,high")
	kit.MustPanic(t, func() { _ = c.MustCSVInts("RES_BAD", nil) })
	t.Setenv("RES_ZERO", "0")
	kit.MustPanic(t, func() { _ = c.MustCSVInts("RES_ZERO", nil) })
}

func TestMayEnum(t *testing.T) {
	c := New().Prefix("E_")
	if got := c.MayEnum("MISS", "production", "development", "production"); got != "production" {
		t.Fatalf("MayEnum default = %q", got)
	}
	t.Setenv("E_ENV", "Development")
	if got := c.MayEnum("ENV", "production", "development", "production"); got != "development" {
		t.Fatalf("MayEnum canonical = %q, want development", got)
	}
	t.Setenv("E_BAD", "staging")
	kit.MustPanic(t, func() { _ = c.MayEnum("BAD", "production", "development", "production") })
	if got := c.MayEnum("MISSING", "", "a"); got != "" {
		t.Fatalf("MayEnum empty def = %q", got)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "test.env")
	if err := os.WriteFile(p, []byte("DOTENV_ONLY=from-file\nDOTENV_BOTH=from-file\n"), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("DOTENV_BOTH", "from-process")
	t.Cleanup(func() { _ = os.Unsetenv("DOTENV_ONLY") })

	if err := LoadDotEnv(filepath.Join(dir, "missing.env"), p); err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}
	if got := os.Getenv("DOTENV_ONLY"); got != "from-file" {
		t.Fatalf("DOTENV_ONLY = %q", got)
	}
	if got := os.Getenv("DOTENV_BOTH"); got != "from-process" {
		t.Fatalf("process env should win, got %q", got)
	}
}

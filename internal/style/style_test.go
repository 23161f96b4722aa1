package style

import (
	"bytes"
	"io"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var ansiRe = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripAnsi(s string) string {
	return ansiRe.ReplaceAllString(s, "")
}

func TestSetColorMode_Never(t *testing.T) {
	SetColorMode("never")
	t.Cleanup(func() { apply(true) })
	for name, s := range map[string]lipgloss.Style{
		"Success": Success, "Warning": Warning, "Error": Error, "Info": Info, "Dim": Dim, "Bold": Bold,
	} {
		if got := s.Render("x"); got != "x" {
			t.Errorf("SetColorMode(never): %s.Render(\"x\") = %q, want \"x\"", name, got)
		}
	}
}

func TestSetColorMode_Always(t *testing.T) {
	SetColorMode("always")
	if got := Success.Render("ok"); got == "" {
		t.Error("SetColorMode(always): Success.Render returned empty string")
	}
}

func TestSpinner_NonTTY(t *testing.T) {
	var buf bytes.Buffer
	s := StartSpinner(&buf, "Compiling bundles...")
	s.Stop()
	if got := buf.String(); got != "Compiling bundles...\n" {
		t.Errorf("StartSpinner(buffer) wrote %q, want the message once", got)
	}
	if IsTerminal(&buf) {
		t.Error("IsTerminal(buffer) = true, want false")
	}
}

func TestSpinner_Stop(t *testing.T) {
	s := StartSpinner(io.Discard, "Publishing bundles...")
	time.Sleep(2 * time.Millisecond)
	if got := s.Stop(); got < 2*time.Millisecond {
		t.Errorf("Stop() = %s, want at least 2ms", got)
	}
	// a second Stop must not block
	s.Stop()
}

func TestElapsed(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0s"},
		{1234 * time.Microsecond, "1ms"},
		{850 * time.Millisecond, "850ms"},
		{1240 * time.Millisecond, "1.2s"},
	}
	for _, tt := range tests {
		if got := Elapsed(tt.d); got != tt.want {
			t.Errorf("Elapsed(%s) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestTable_Render(t *testing.T) {
	if got := NewTable().Render(); got != "" {
		t.Errorf("NewTable().Render() = %q, want empty string", got)
	}

	tbl := NewTable(
		Column{Name: "COLLECTION", Width: 10},
		Column{Name: "STYLES", Align: AlignRight},
		Column{Name: "SCRIPTS", Align: AlignRight},
	)
	tbl.AddRow("app", "2", "3")
	tbl.AddRow("admin")

	lines := strings.Split(strings.TrimRight(stripAnsi(tbl.Render()), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4 (header + separator + 2 rows)", len(lines))
	}
	if lines[2] != "app              2        3" {
		t.Errorf("row 1 = %q", lines[2])
	}
	if lines[3] != "admin" {
		t.Errorf("row 2 = %q, want padded cells trimmed", lines[3])
	}
}

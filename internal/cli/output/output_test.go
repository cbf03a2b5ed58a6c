package output

import (
	"bytes"
	"strings"
	"testing"
)

type routeRow struct {
	Route string `json:"route" yaml:"route"`
	Bytes int    `json:"bytes" yaml:"bytes"`
}

type routeRows []routeRow

func (r routeRows) Table() *Table {
	t := NewTable("ROUTE", "BYTES")
	for _, row := range r {
		t.AddRow(row.Route, row.Bytes)
	}
	return t
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatTable, false},
		{"table", FormatTable, false},
		{"JSON", FormatJSON, false},
		{" yaml ", FormatYAML, false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatters(t *testing.T) {
	data := routeRows{{Route: "/", Bytes: 120}, {Route: "/about", Bytes: 42}}

	tests := []struct {
		format Format
		want   []string
	}{
		{FormatTable, []string{"ROUTE", "BYTES", "/about", "42"}},
		{FormatJSON, []string{`"route": "/about"`, `"bytes": 42`}},
		{FormatYAML, []string{"- route: /about", "  bytes: 42"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			var buf bytes.Buffer
			if err := NewFormatter(tt.format).Format(&buf, data); err != nil {
				t.Fatalf("Format() error = %v", err)
			}
			for _, w := range tt.want {
				if !strings.Contains(buf.String(), w) {
					t.Errorf("output missing %q:\n%s", w, buf.String())
				}
			}
		})
	}
}

func TestTable_Render(t *testing.T) {
	tbl := NewTable("NAME", "VALUE")
	tbl.AddRow("files", 3)
	tbl.AddRow("root", "")

	var buf bytes.Buffer
	if err := (&TableFormatter{NoHeaders: true}).Format(&buf, tbl); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "files") || !strings.HasSuffix(lines[0], "3") {
		t.Errorf("line 0 = %q", lines[0])
	}
	if !strings.HasSuffix(lines[1], "-") {
		t.Errorf("empty cell not rendered as '-': %q", lines[1])
	}
}

func TestTableFormatter_FallbackJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := (&TableFormatter{}).Format(&buf, map[string]int{"files": 3}); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if !strings.Contains(buf.String(), `"files": 3`) {
		t.Errorf("unexpected output %q", buf.String())
	}
}

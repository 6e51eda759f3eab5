package main

import (
	"strings"
	"testing"
)

func TestRenderTablePadsShortRowsAndWrapsDetail(t *testing.T) {
	long := strings.Repeat("word ", 30)
	out := renderTable(checkColumns, [][]string{
		{"FFmpeg", "OK"},
		{"Credentials", "ERROR", long},
	})
	if !strings.Contains(out, "Check") || !strings.Contains(out, "FFmpeg") {
		t.Fatalf("expected header and rows, got:\n%s", out)
	}
	for _, line := range strings.Split(out, "\n") {
		if strings.Count(line, "word") > detailWidth/len("word ")+1 {
			t.Fatalf("expected detail to wrap, got line %q", line)
		}
	}
	if renderTable(nil, nil) != "" {
		t.Fatal("expected empty output without columns")
	}
}

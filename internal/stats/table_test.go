package stats

import "testing"

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"#", "Date", "Score"}
	rows := [][]string{
		{"1", "2024-03-01 12:00:30", "9"},
		{"2", "2024-03-01 11:00:30", "12"},
	}
	rightAlign := map[int]bool{0: true, 2: true}

	lines := formatTable(headers, rows, rightAlign)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "#  Date                 Score" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "1  2024-03-01 12:00:30      9" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "2  2024-03-01 11:00:30     12" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestFormatTableUsesDisplayWidth(t *testing.T) {
	lines := formatTable([]string{"名前", "N"}, [][]string{{"ab", "1"}}, nil)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0] != "名前  N" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "ab    1" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
}

func TestFormatTableEmpty(t *testing.T) {
	if lines := formatTable(nil, nil, nil); lines != nil {
		t.Fatalf("expected no lines, got %v", lines)
	}
}

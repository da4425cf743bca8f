package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/fitnessdump/fitdump/internal/collection"
	"github.com/fitnessdump/fitdump/internal/model"
)

func TestTable(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	var buf bytes.Buffer
	table := NewTable(&buf, []string{"ID", "Име", "kcal"}, &TableOptions{NoColor: true})
	table.AddRow("1", "Ябълка", "52")
	table.AddRow("12", "Пилешко филе", "165")
	table.Render()

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d:\n%s", len(lines), buf.String())
	}
	if lines[0] != "ID  Име           kcal" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "──  ────────────  ────" {
		t.Errorf("separator = %q", lines[1])
	}
	if lines[2] != "1   Ябълка        52" {
		t.Errorf("row = %q", lines[2])
	}
	if table.Len() != 2 {
		t.Errorf("Len() = %d", table.Len())
	}
}

func TestTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	NewTable(&buf, []string{}, &TableOptions{NoColor: true}).Render()

	if buf.String() != "" {
		t.Errorf("Expected empty output for table with no headers, got: %q", buf.String())
	}
}

func TestKeyValueTable(t *testing.T) {
	var buf bytes.Buffer
	kv := NewKeyValueTable(&buf, true)
	kv.AddRow("Име", "Клек")
	kv.AddRow("Категория", "Крака")
	kv.Render()

	want := "Име:       Клек\nКатегория: Крака\n"
	if buf.String() != want {
		t.Errorf("KeyValueTable = %q; want %q", buf.String(), want)
	}

	buf.Reset()
	NewKeyValueTable(&buf, true).Render()
	if buf.String() != "" {
		t.Errorf("Expected empty output for empty KeyValueTable, got: %q", buf.String())
	}
}

func TestHeader(t *testing.T) {
	var buf bytes.Buffer
	Header(&buf, "Дневник", true)
	if buf.String() != "Дневник\n───────\n" {
		t.Errorf("Header = %q", buf.String())
	}
}

func TestRenderState(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	row := func(f model.Food) []string { return []string{f.Name} }

	tests := []struct {
		name  string
		state collection.State[model.Food]
		want  string
	}{
		{
			name:  "loading wins",
			state: collection.State[model.Food]{Loading: true, Error: "stale", Items: []model.Food{{ID: 1, Name: "Ябълка"}}},
			want:  LoadingMessage,
		},
		{
			name:  "error",
			state: collection.State[model.Food]{Error: "Неуспешно зареждане на храните"},
			want:  "❌ Неуспешно зареждане на храните",
		},
		{
			name:  "empty",
			state: collection.State[model.Food]{Items: []model.Food{}},
			want:  EmptyMessage,
		},
		{
			name:  "items",
			state: collection.State[model.Food]{Items: []model.Food{{ID: 1, Name: "Ябълка"}}},
			want:  "Ябълка",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			RenderState(&buf, tt.state, []string{"Име"}, row, true)
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("RenderState() = %q; want it to contain %q", buf.String(), tt.want)
			}
		})
	}
}

package formatter

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/barboracab/hangthedj/internal/store"
)

func testQueue() []store.Song {
	added := time.Date(2026, 6, 1, 20, 0, 0, 0, time.UTC)
	return []store.Song{
		{ID: "song1", Title: "Song One", RoomID: "party", Votes: 3, CreatedAt: added},
		{ID: "song2", Title: "Song Two", RoomID: "party", Votes: 1, CreatedAt: added},
		{ID: "song3", Title: "Song Three", RoomID: "party", Votes: -2, CreatedAt: added},
	}
}

func TestExporters(t *testing.T) {
	t.Run("ExportToCSV", func(t *testing.T) {
		data, err := ExportToCSV(testQueue())
		if err != nil {
			t.Fatalf("ExportToCSV failed: %v", err)
		}

		output := string(data)

		if !strings.Contains(output, "ID,Title,Votes,Added") {
			t.Errorf("CSV missing headers, got: %s", output)
		}
		if !strings.Contains(output, "song1,Song One,3,") {
			t.Errorf("CSV missing first song row")
		}
		if !strings.Contains(output, "song3,Song Three,-2,") {
			t.Errorf("CSV should carry negative vote counts")
		}
		if !strings.Contains(output, "2026-06-01T20:00:00Z") {
			t.Errorf("CSV missing RFC3339 timestamp")
		}
	})

	t.Run("ExportToCSV empty queue", func(t *testing.T) {
		data, err := ExportToCSV(nil)
		if err != nil {
			t.Fatalf("ExportToCSV failed: %v", err)
		}

		lines := strings.Split(strings.TrimSpace(string(data)), "\n")
		if len(lines) != 1 {
			t.Errorf("expected headers only, got %d lines", len(lines))
		}
	})

	t.Run("ExportToMarkdown", func(t *testing.T) {
		data, err := ExportToMarkdown("party", testQueue())
		if err != nil {
			t.Fatalf("ExportToMarkdown failed: %v", err)
		}

		output := string(data)

		if !strings.Contains(output, "# Room 'party'") {
			t.Errorf("Markdown missing title")
		}
		if !strings.Contains(output, "**Songs**: 3") {
			t.Errorf("Markdown missing song count")
		}
		if !strings.Contains(output, "## Queue") {
			t.Errorf("Markdown missing queue section")
		}
		if !strings.Contains(output, "1. Song One [3 votes]") {
			t.Errorf("Markdown missing first song, got: %s", output)
		}
		if !strings.Contains(output, "2. Song Two [1 vote]") {
			t.Errorf("Markdown should use singular for one vote")
		}
	})

	t.Run("ExportToText", func(t *testing.T) {
		data, err := ExportToText("party", testQueue())
		if err != nil {
			t.Fatalf("ExportToText failed: %v", err)
		}

		output := string(data)

		if !strings.Contains(output, "Room: party") {
			t.Errorf("text missing room header")
		}
		if !strings.Contains(output, "Songs: 3") {
			t.Errorf("text missing song count")
		}
		if !strings.Contains(output, "1. Song One (3)") {
			t.Errorf("text missing first song, got: %s", output)
		}
	})
}

func TestFileExports(t *testing.T) {
	t.Run("WriteCSVExport", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "out.csv")

		written, err := WriteCSVExport("party", testQueue(), path)
		if err != nil {
			t.Fatalf("WriteCSVExport failed: %v", err)
		}
		if written != path {
			t.Errorf("expected %s, got %s", path, written)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read exported file: %v", err)
		}
		if !strings.Contains(string(data), "Song One") {
			t.Errorf("exported CSV missing song data")
		}
	})

	t.Run("WriteCSVExport default filename", func(t *testing.T) {
		dir := t.TempDir()
		t.Chdir(dir)

		written, err := WriteCSVExport("party", testQueue(), "")
		if err != nil {
			t.Fatalf("WriteCSVExport failed: %v", err)
		}
		if written != "party_queue.csv" {
			t.Errorf("expected default filename party_queue.csv, got %s", written)
		}
	})

	t.Run("WriteMarkdownExport", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "out.md")

		if _, err := WriteMarkdownExport("party", testQueue(), path); err != nil {
			t.Fatalf("WriteMarkdownExport failed: %v", err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read exported file: %v", err)
		}
		if !strings.Contains(string(data), "# Room 'party'") {
			t.Errorf("exported Markdown missing header")
		}
	})

	t.Run("WriteTextExport", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "out.txt")

		if _, err := WriteTextExport("party", testQueue(), path); err != nil {
			t.Fatalf("WriteTextExport failed: %v", err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read exported file: %v", err)
		}
		if !strings.Contains(string(data), "Room: party") {
			t.Errorf("exported text missing header")
		}
	})
}

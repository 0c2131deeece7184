// package formatter provides functions to export a room's queue to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/barboracab/hangthedj/internal/store"
)

// ExportToCSV converts a room queue to CSV format with columns: ID, Title, Votes, Added
func ExportToCSV(songs []store.Song) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Votes", "Added"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, song := range songs {
		record := []string{
			song.ID,
			song.Title,
			strconv.Itoa(song.Votes),
			song.CreatedAt.Format(time.RFC3339),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a room queue to Markdown format
func ExportToMarkdown(roomID string, songs []store.Song) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# Room '%s'\n\n", roomID))
	buf.WriteString(fmt.Sprintf("**Songs**: %d\n\n", len(songs)))

	buf.WriteString("## Queue\n\n")
	for i, song := range songs {
		votes := "votes"
		if song.Votes == 1 || song.Votes == -1 {
			votes = "vote"
		}
		buf.WriteString(fmt.Sprintf("%d. %s [%d %s]\n", i+1, song.Title, song.Votes, votes))
	}

	return buf.Bytes(), nil
}

// ExportToText converts a room queue to plain text format
func ExportToText(roomID string, songs []store.Song) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Room: %s\n", roomID))
	buf.WriteString(fmt.Sprintf("Songs: %d\n\n", len(songs)))

	for i, song := range songs {
		buf.WriteString(fmt.Sprintf("%d. %s (%d)\n", i+1, song.Title, song.Votes))
	}

	return buf.Bytes(), nil
}

// WriteCSVExport exports a room queue to a CSV file.
//
// Defaults to {roomID}_queue.csv as the filename.
func WriteCSVExport(roomID string, songs []store.Song, filepath string) (string, error) {
	if filepath == "" {
		filepath = fmt.Sprintf("%s_queue.csv", roomID)
	}

	csvData, err := ExportToCSV(songs)
	if err != nil {
		return "", fmt.Errorf("failed to generate CSV: %w", err)
	}

	if err := os.WriteFile(filepath, csvData, 0644); err != nil {
		return "", fmt.Errorf("failed to write CSV file: %w", err)
	}

	return filepath, nil
}

// WriteMarkdownExport exports a room queue to a Markdown file.
//
// Defaults to {roomID}_queue.md as the filename.
func WriteMarkdownExport(roomID string, songs []store.Song, filepath string) (string, error) {
	if filepath == "" {
		filepath = fmt.Sprintf("%s_queue.md", roomID)
	}

	mdData, err := ExportToMarkdown(roomID, songs)
	if err != nil {
		return "", fmt.Errorf("failed to generate Markdown: %w", err)
	}

	if err := os.WriteFile(filepath, mdData, 0644); err != nil {
		return "", fmt.Errorf("failed to write Markdown file: %w", err)
	}

	return filepath, nil
}

// WriteTextExport exports a room queue to a plain text file.
//
// Defaults to {roomID}_queue.txt as the filename.
func WriteTextExport(roomID string, songs []store.Song, filepath string) (string, error) {
	if filepath == "" {
		filepath = fmt.Sprintf("%s_queue.txt", roomID)
	}

	textData, err := ExportToText(roomID, songs)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if err := os.WriteFile(filepath, textData, 0644); err != nil {
		return "", fmt.Errorf("failed to write text file: %w", err)
	}

	return filepath, nil
}

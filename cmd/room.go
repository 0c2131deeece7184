package main

import (
	"context"
	"fmt"
	"os"

	"github.com/barboracab/hangthedj/internal/formatter"
	"github.com/barboracab/hangthedj/internal/shared"
	"github.com/urfave/cli/v3"
)

// RoomList prints a room's queue in the requested format.
func (r *Runner) RoomList(ctx context.Context, cmd *cli.Command) error {
	roomID := cmd.StringArg("room")
	format := cmd.String("format")
	outputPath := cmd.String("output")
	useJSON := cmd.Bool("json")

	if roomID == "" {
		return fmt.Errorf("%w: room argument is required", shared.ErrMissingArgument)
	}

	songStore, closeStore, err := r.openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	songs, err := songStore.LoadQueue(ctx, roomID)
	if err != nil {
		return fmt.Errorf("failed to load queue: %w", err)
	}

	if useJSON {
		return r.writeJSON(map[string]any{"songs": songs, "total": len(songs)}, true)
	}

	var data []byte
	switch format {
	case "text", "":
		data, err = formatter.ExportToText(roomID, songs)
	case "markdown", "md":
		data, err = formatter.ExportToMarkdown(roomID, songs)
	case "csv":
		data, err = formatter.ExportToCSV(songs)
	default:
		return fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, format)
	}
	if err != nil {
		return fmt.Errorf("failed to format queue: %w", err)
	}

	if outputPath != "" {
		if err := os.WriteFile(outputPath, data, 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		r.writePlain("✓ Queue written to %s\n", outputPath)
		return nil
	}

	return r.writePlain("%s", data)
}

// RoomAdd appends a song to a room's queue.
func (r *Runner) RoomAdd(ctx context.Context, cmd *cli.Command) error {
	roomID := cmd.StringArg("room")
	title := cmd.StringArg("title")

	if roomID == "" || title == "" {
		return fmt.Errorf("%w: room and title arguments are required", shared.ErrMissingArgument)
	}

	songStore, closeStore, err := r.openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	song, err := songStore.Add(ctx, roomID, title)
	if err != nil {
		return fmt.Errorf("failed to add song: %w", err)
	}

	r.logger.Info("song added", "room", roomID, "id", song.ID)
	r.writePlain("✓ Added '%s' to room '%s'\n", song.Title, roomID)
	r.writePlain("ID: %s\n", song.ID)
	return nil
}

// RoomVote applies a single up or down vote to a song.
func (r *Runner) RoomVote(ctx context.Context, cmd *cli.Command) error {
	songID := cmd.StringArg("song")
	down := cmd.Bool("down")

	if songID == "" {
		return fmt.Errorf("%w: song argument is required", shared.ErrMissingArgument)
	}

	delta := 1
	if down {
		delta = -1
	}

	songStore, closeStore, err := r.openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	if err := songStore.Vote(ctx, songID, delta); err != nil {
		return fmt.Errorf("vote failed: %w", err)
	}

	song, err := songStore.Get(ctx, songID)
	if err != nil {
		return fmt.Errorf("failed to read song after vote: %w", err)
	}

	r.writePlain("✓ '%s' now has %d votes\n", song.Title, song.Votes)
	return nil
}

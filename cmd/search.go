package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/barboracab/hangthedj/internal/shared"
	"github.com/urfave/cli/v3"
)

// Search queries the track catalog and prints matches.
func (r *Runner) Search(ctx context.Context, cmd *cli.Command) error {
	if r.catalog == nil {
		return fmt.Errorf("%w: catalog service not initialized", shared.ErrServiceUnavailable)
	}

	query := cmd.StringArg("query")
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")
	limit := cmd.Int("limit")

	if query == "" {
		return fmt.Errorf("%w: query argument is required", shared.ErrMissingArgument)
	}

	r.logger.Info("searching catalog", "query", query)

	if useJSON {
		raw, err := r.catalog.SearchTracksRaw(ctx, query)
		if err != nil {
			return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
		}
		if !pretty {
			return r.writePlain("%s\n", raw)
		}

		var data any
		if err := json.Unmarshal(raw, &data); err != nil {
			return fmt.Errorf("failed to parse catalog response: %w", err)
		}
		return r.writeJSON(data, true)
	}

	result, err := r.catalog.SearchTracks(ctx, query)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	tracks := result.Tracks.Items
	if len(tracks) == 0 {
		r.writePlain("No matches for %q\n", query)
		return nil
	}

	if limit > 0 && len(tracks) > limit {
		tracks = tracks[:limit]
	}

	r.writePlain("Found %d tracks:\n\n", result.Tracks.Total)
	for i, track := range tracks {
		r.writePlain("%d. %s\n", i+1, track.DisplayTitle())
		if track.DurationMS > 0 {
			seconds := track.DurationMS / 1000
			r.writePlain("   Duration: %d:%02d\n", seconds/60, seconds%60)
		}
		r.writePlain("   ID: %s\n", track.ID)
	}

	return nil
}

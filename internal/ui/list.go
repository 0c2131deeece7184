package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/barboracab/hangthedj/internal/catalog"
	"github.com/barboracab/hangthedj/internal/store"
	"github.com/charmbracelet/bubbles/list"
)

var (
	_ list.Item = songItem{}
	_ list.Item = suggestionItem{}
)

// songItem wraps [store.Song] to implement [list.Item].
type songItem struct {
	song store.Song
}

func (i songItem) FilterValue() string { return i.song.Title }
func (i songItem) Title() string       { return i.song.Title }
func (i songItem) Description() string {
	if i.song.Votes == 1 {
		return "1 vote"
	}
	return fmt.Sprintf("%d votes", i.song.Votes)
}

// suggestionItem wraps [catalog.Track] to implement [list.Item].
type suggestionItem struct {
	track catalog.Track
}

func (i suggestionItem) FilterValue() string { return i.track.Name }
func (i suggestionItem) Title() string       { return i.track.Name }
func (i suggestionItem) Description() string {
	names := make([]string, len(i.track.Artists))
	for idx, artist := range i.track.Artists {
		names[idx] = artist.Name
	}

	desc := strings.Join(names, ", ")
	if i.track.DurationMS > 0 {
		d := time.Duration(i.track.DurationMS) * time.Millisecond
		desc = fmt.Sprintf("%s • %d:%02d", desc, int(d.Minutes()), int(d.Seconds())%60)
	}
	return desc
}

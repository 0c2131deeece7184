// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow for a party room:
//  1. [JoinView] : Enter a room name and nickname
//  2. [QueueView] : Watch the live queue, vote on songs, type searches
//  3. [SuggestionView] : Pick a catalog match to add to the queue
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Queue snapshots flow through a channel from the room session, so foreign
// writes by other participants repaint the list without user action.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, +/-, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui

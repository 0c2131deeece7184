// Package store implements the room state store: song rows persisted in
// SQLite plus an in-process change notification hub.
//
// Every queue operation is partitioned by room ID, a plain string key with no
// backing room entity. [SongStore.Vote] applies deltas with a single atomic
// server-side increment so concurrent votes never clobber each other.
// [Notifier] delivers a [Change] per write to room-filtered subscribers; the
// HTTP server re-exposes the same feed as server-sent events.
package store

// Package room implements the client side of a party room.
//
// A [Session] joins a room by name and nickname, loads the shared song queue
// ordered by votes, submits new songs (free text or catalog suggestions),
// applies vote deltas, and keeps its view synchronized by reloading the full
// queue whenever the store publishes a change for its room.
package room

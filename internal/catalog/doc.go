// Package catalog implements track search against external music catalogs.
//
// The [Service] interface abstracts the provider behind two operations: a
// typed search used by the room client for suggestions, and a raw search used
// by the HTTP proxy to forward the provider's response verbatim.
//
// [SpotifyService] is the only implementation. Credentials are exchanged with
// the OAuth2 client credentials grant on the first request and the bearer
// token is cached by the underlying token source, which also deduplicates
// concurrent exchanges and refreshes expired tokens.
package catalog

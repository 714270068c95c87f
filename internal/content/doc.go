// Package content models the markdown content items of a site and moves them
// between disk and an in-memory cache.
//
// A Fetcher scans <root>/content/**/*.md into a Cache, a Saver writes edited
// items back and keeps the same Cache consistent. The Cache is an explicit value
// owned by whoever orchestrates a session; nothing in this package holds global state.
package content

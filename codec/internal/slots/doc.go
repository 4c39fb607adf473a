// Package slots provides helpers for slot-buffer arithmetic: overflow-checked
// size computation, sub-range extraction, and the buffer length guard
// shared by the encode and likelihood paths.
package slots

// SPDX-License-Identifier: EPL-2.0

package audio

import "strings"

// Flags reports the outcome of the latest Read on a Session.
type Flags uint8

const FlagNone Flags = 0

const (
	// FlagEOF: the stream is finished.
	FlagEOF Flags = 1 << iota
	// FlagError: the source failed; nothing was produced.
	FlagError
	// FlagEAgain: fewer bytes were ready than requested. Not an error; retrying is up to the caller.
	FlagEAgain
	// FlagCanSeek is decided by Open and kept across reads.
	FlagCanSeek
)

// Has reports whether every bit of want is set.
func (f Flags) Has(want Flags) bool {
	return f&want == want
}

func (f Flags) String() string {
	if f == FlagNone {
		return "NONE"
	}

	var parts []string
	if f.Has(FlagEOF) {
		parts = append(parts, "EOF")
	}
	if f.Has(FlagError) {
		parts = append(parts, "ERROR")
	}
	if f.Has(FlagEAgain) {
		parts = append(parts, "EAGAIN")
	}
	if f.Has(FlagCanSeek) {
		parts = append(parts, "CANSEEK")
	}
	return strings.Join(parts, "|")
}

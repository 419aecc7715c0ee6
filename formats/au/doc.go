// SPDX-License-Identifier: EPL-2.0

// Package au decodes Sun/NeXT audio files.
//
// A file starts with a 24-byte big-endian header: magic ".snd", data offset,
// data size, encoding, sample rate and channel count. Three encodings are
// accepted:
//   - 8-bit G.711 mu-law, expanded to native-order int16
//   - 8-bit signed linear PCM, passed through
//   - 16-bit big-endian linear PCM, passed through
//
// A stream opened with the "au" extension hint but lacking the magic is taken
// as headerless mu-law at 8000 Hz mono, starting from the first byte.
//
// Sessions opened by this decoder never seek. Header and ParseHeader are exported
// for tools that write or inspect .au headers.
package au

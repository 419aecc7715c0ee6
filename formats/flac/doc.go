// SPDX-License-Identifier: EPL-2.0

// Package flac decodes FLAC streams through github.com/mewkiz/flac.
//
// Every bit depth from 4 to 32 is delivered as native-order float32 in
// [-1, 1]. On a seekable stream the decoder reports the duration from
// STREAMINFO and supports millisecond seeks through the seek table.
package flac

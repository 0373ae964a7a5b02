// SPDX-License-Identifier: MIT

// Package archive keeps encoded IvP functions in a SQLite database, so the
// functions a job produced can be listed, reloaded and compared later.
//
// Functions are stored in the MK text format of package encoder together
// with a few searchable header fields. The driver is the pure Go
// modernc.org/sqlite; paths may be files or ":memory:".
package archive

// SPDX-License-Identifier: MIT

// Package encoder serializes IvP functions to the compact MK text format and
// splits encoded functions into size-bounded packets for transport.
//
// An encoded function reads
//
//	H,<ctxlen>,<ctx>,<dim>,<pcs>,<deg>,<pwt>,D,<domain>,G,<gel>...,F,<pieces>
//
// where <domain> separates fields with ';' and variables with ':', <gel>
// lists the grid element's high index per dimension, and every piece lists
// its low and high index per dimension (an 'X' prefix marks an exclusive
// edge) followed by its weights. Weights carry at most four decimals.
//
// Packets read "P,<id>,<total>,<index>,<chunk>" with index counting from 1.
// Reassemble joins the packets of one function; a Demuxer sorts packets of
// many interleaved functions.
package encoder

// Package binfmt encodes and decodes graphbin's two binary graph formats.
//
// # Binary edge list (.binedge)
//
// A flat sequence of 8-byte records, one per directed arc. Each record is two
// little-endian signed 32-bit integers (u, v). There is no header; the file
// length divided by [RecordSize] is the record count.
//
// [EncodeEdges] expands every undirected edge {u, v} with u != v into the two
// records (u, v) and (v, u). A self-loop (u, u) is written as exactly one
// record, so a graph with E edges and S self-loops produces 2E-S records.
// [ReadEdges] enforces the same shape: a repeated (u, u) record or an arc
// without its reverse is corrupt.
//
// # Binary adjacency list (.binadj)
//
//	int32 nodeCount                 (little-endian)
//	int32 edgeCount                 (little-endian)
//	repeat nodeCount times:
//	    int32 degree                (little-endian)
//	    int32 neighbor[degree]      (little-endian)
//
// [EncodeAdjacency] writes the degree the graph reports for each node, then
// the neighbors the graph yields for it, in the graph's own order. The degree
// is never recomputed from the neighbor sequence; use [VerifyDegrees] before
// encoding to check that the two agree.
//
// # Decoding
//
// [ReadArcs], [ReadEdges] and [ReadAdjacency] rebuild data written by the
// encoders. Neither format carries a magic number or checksum, so decoders
// only detect structural damage (truncation, negative counts, ids out of
// range); such failures are reported with the CORRUPT_DATA code.
// Decoding an adjacency file and re-encoding the resulting graph reproduces
// the input byte for byte.
//
// # Errors
//
// Write failures are returned immediately with the IO_ERROR code. Nothing is
// retried and a partially written file is not removed: callers must treat a
// failed write as having produced an unusable file.
package binfmt

// Package pkg provides the core libraries behind graphbin.
//
// # Overview
//
// graphbin turns large undirected graphs from the SNAP edge list and METIS
// adjacency list text formats into two compact binary formats that load
// without parsing. It can also generate synthetic Barabási–Albert and
// Erdős–Rényi graphs and write them the same way. The pkg directory is
// organized into four areas:
//
//  1. Domain: [graph], [textfmt], [binfmt], [generate]
//  2. Orchestration: [pipeline]
//  3. Infrastructure: [cache], [config], [observability], [errors], [buildinfo]
//  4. Surfaces: [server], [httputil], [render]
//
// # Architecture
//
// The typical data flow through graphbin:
//
//	SNAP / METIS text           Barabási–Albert / Erdős–Rényi model
//	         ↓                                 ↓
//	  [textfmt] package                 [generate] package
//	         ↘                                 ↙
//	            [graph] package (deduplicated undirected graph)
//	                          ↓
//	            [binfmt] package (.binedge / .binadj)
//	                          ↓
//	            files, HTTP responses, cache entries
//
// # Quick Start
//
// Convert a SNAP file to both binary formats:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/graphbin/pkg/cache"
//	    "github.com/matzehuels/graphbin/pkg/pipeline"
//	    "github.com/matzehuels/graphbin/pkg/textfmt"
//	)
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, nil)
//	defer runner.Close()
//
//	res, _ := runner.Convert(context.Background(), pipeline.Options{
//	    Format: textfmt.FormatEdgeList,
//	    Input:  "roadNet-CA.txt",
//	    OutputOptions: pipeline.OutputOptions{
//	        Outputs: []pipeline.Output{pipeline.OutputBinEdge, pipeline.OutputBinAdj},
//	    },
//	})
//	fmt.Println(res.Outputs[pipeline.OutputBinAdj]) // data/roadNet-CA.binadj
//
// # Main Packages
//
// ## Domain
//
// [graph] - Undirected graph over dense int32 node ids. Edges are deduplicated
// on insertion and enumerated in insertion order; each node keeps its own
// neighbor order. Summaries and connected components are computed with gonum.
//
// [textfmt] - Readers and writers for the SNAP edge list (arbitrary ids,
// remapped densely in order of first appearance) and METIS adjacency list
// (1-based, header checked against the body) text grammars.
//
// [binfmt] - Encoders and decoders for .binedge (little-endian int32 arc
// records) and .binadj (header plus per-node degree and neighbors).
//
// [generate] - Seeded Barabási–Albert and Erdős–Rényi generators built on
// gonum's graph generators.
//
// ## Orchestration
//
// [pipeline] - Parse or generate, then encode, cache and write outputs. Used
// by both the CLI and the HTTP server so the two produce identical bytes.
//
// ## Infrastructure
//
// [cache] - Content-addressed cache for encoded outputs with file, Redis and
// null backends.
//
// [config] - TOML configuration file with environment overrides.
//
// [observability] - Hook interfaces for pipeline, cache and HTTP events.
//
// [errors] - Coded errors shared by every package and mapped to HTTP status
// codes by the server.
//
// ## Surfaces
//
// [server] - HTTP API exposing conversion, generation and inspection.
//
// [render] - Graphviz DOT and SVG previews of small graphs.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/binfmt/...             # Specific package
//	go test -run Example ./pkg/...       # Examples only
//
// Tests against a live Redis run when GRAPHBIN_TEST_REDIS_ADDR is set.
package pkg

// Package server exposes the conversion pipeline over HTTP.
//
// # Routes
//
//	GET  /healthz                      liveness probe, returns "ok"
//	GET  /version                      build information as JSON
//	POST /v1/convert/{format}?emit=    text graph in, encoded graph out
//	POST /v1/generate/{model}?nodes=&attach=&p=&seed=&emit=
//	POST /v1/inspect/{kind}            binary graph in, JSON summary out
//
// {format} is any name accepted by [textfmt.ParseFormat], {model} any name
// accepted by [generate.ParseModel] and {kind} is binedge or binadj. emit
// selects one output (binedge, binadj, adjlist or edgelist) and defaults to
// binedge. verify=true on convert and generate checks reported degrees
// against neighbor lists before encoding, bypassing cached outputs.
//
// Encoded responses carry the X-Graph-Nodes and X-Graph-Edges headers,
// X-Cache set to hit or miss, and X-Graph-Verified when the check ran. Every response carries X-Request-ID. Errors are
// JSON bodies as described in [httputil].
//
// Request bodies are limited to [Config.MaxBodyBytes] and generated graphs to
// [Config.MaxGenerateNodes] nodes.
//
// [textfmt.ParseFormat]: github.com/matzehuels/graphbin/pkg/textfmt.ParseFormat
// [generate.ParseModel]: github.com/matzehuels/graphbin/pkg/generate.ParseModel
// [httputil]: github.com/matzehuels/graphbin/pkg/httputil
package server

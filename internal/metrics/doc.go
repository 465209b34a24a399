// Package metrics provides render pass metrics for docsite.
//
// Components receive a Recorder through dependency injection. NoopRecorder is
// the default and does nothing; PrometheusRecorder registers collectors on a
// caller-supplied registry. One-shot builds export the registry as a node
// exporter textfile (WriteTextfile) since there is no long-lived HTTP server.
package metrics

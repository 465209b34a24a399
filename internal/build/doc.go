// Package build provides the canonical render pass pipeline for docsite.
//
// A Runner turns a settings file into a rendered site: it reads the options,
// loads the configured plugins, resolves options, discovers the sources and
// renders them. All execution paths (build command, watch loop, tests) route
// through Runner.Run.
package build

// Package cmd defines the image-browser command-line interface: scan,
// rename, browse, history, and version subcommands over the internal
// packages. Configuration is environment-driven; flags only carry
// per-invocation options like transforms and dry-run.
package cmd

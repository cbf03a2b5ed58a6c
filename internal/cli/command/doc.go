// Package command defines the featherserve command line.
//
// It uses urfave/cli/v2. Running the binary without a subcommand starts
// the server.
package command

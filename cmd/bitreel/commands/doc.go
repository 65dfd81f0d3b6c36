// Package commands defines the bitreel CLI and wires dependencies for subcommands.
//
// # Commands
//
//   - encode   Write every byte of a file as an 8-digit binary line
//   - decode   Rebuild the original bytes from binary text
//   - history  List or clear previously run jobs
//   - config   Create or locate the configuration file
//
// # Implementation
//
// The root command loads configuration, sets up logging and opens the job
// history before any subcommand runs. Conversion commands pick a progress
// display (Bubble Tea screen, progress bar, plain lines or none) and hand the
// job to service.ConvertService; the codec never touches the terminal.
package commands

// Package viz renders itaetune output for the terminal.
//
// The styles here are shared by the command line and the interactive form:
//
//   - [ResultPanel]: bordered panel listing controller settings
//   - [ErrorLine]: single-line failure message
//   - [SparklineChart]: compact trend of a swept setting
//
// Colors degrade automatically when the output is not a terminal.
package viz

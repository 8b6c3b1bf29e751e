// Package main is the entry point for the tf2metrics CLI tool, which reads the
// TF2 console log and computes per-player match statistics.
package main

import "github.com/pable/go-tf2-metrics/cmd"

func main() {
	cmd.Execute()
}

// Package main is the entry point for the odifeatures CLI tool, which parses
// raw ball-by-ball ODI match records and derives match-outcome features.
package main

import "github.com/pable/go-odi-features/cmd"

func main() {
	cmd.Execute()
}

// Package main is the entry point for the enclose CLI.
package main

import "enclose.dev/pkg/enclose/cmd"

func main() {
	cmd.Execute()
}

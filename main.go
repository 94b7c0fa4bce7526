// Package main is the entry point for the gitrange CLI. gitrange resolves
// the base/head commit range for a CI run, making sure the merge base is
// locally available and reporting the minimum fetch depth that covers it.
package main

import "github.com/MyCarrier-DevOps/go-gitrange/cmd"

func main() {
	cmd.Execute()
}

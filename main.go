package main

import "github.com/gnames/gntaxa/cmd"

func main() {
	cmd.Execute()
}

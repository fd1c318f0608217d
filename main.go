package main

import "github.com/aip-heidelberg/codeeval/cmd"

func main() {
	cmd.Execute()
}

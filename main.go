package main

import "github.com/gaurav-prasanna/docmark/cmd"

func main() {
	cmd.Execute()
}

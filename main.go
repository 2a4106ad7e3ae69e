package main

import "github.com/addisoncox/addisoncox.github.io/cmd"

func main() {
	cmd.Execute()
}

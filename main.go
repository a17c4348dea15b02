package main

import "github.com/tinytask-cli/tinytask/cmd"

func main() {
	cmd.Execute()
}

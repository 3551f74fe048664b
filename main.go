package main

import "github.com/rnwolfe/lexi/cmd"

func main() {
	cmd.Execute()
}

package main

import "github.com/theirongolddev/stakesim/cmd"

func main() {
	cmd.Execute()
}

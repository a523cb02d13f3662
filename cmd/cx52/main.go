package main

import "github.com/cryptosim/hagelin/cmd/cx52/cmd"

func main() {
	cmd.Execute()
}

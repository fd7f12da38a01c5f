package main

import "github.com/marcelchiarello/Meepot/cmd"

func main() {
	cmd.Execute()
}

package main

import "github.com/pitchkit/pitchkit/cmd"

func main() {
	cmd.Execute()
}

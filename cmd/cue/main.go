package main

import "github.com/the-o-space/Cue/internal/cmd"

func main() {
	cmd.Execute()
}

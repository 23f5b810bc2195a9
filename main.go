package main

import "github.com/Trailblaze-work/frame-player/cmd"

func main() {
	cmd.Execute()
}

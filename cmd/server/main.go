package main

import "Hearth/internal/cmd"

func main() {
	cmd.Run()
}

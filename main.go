package main

import "causenet/atlas/cmd"

func main() {
	cmd.Execute()
}

package main

import "sound-sync/cmd"

func main() {
	cmd.Execute()
}

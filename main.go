package main

import "stockpick/cmd"

func main() {
	cmd.Execute()
}

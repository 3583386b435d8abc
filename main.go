package main

import "github.com/KaramelBytes/cardash/cmd"

func main() {
	cmd.Execute()
}

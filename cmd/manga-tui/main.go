package main

import "github.com/orhun/manga-tui/cmd/commands"

func main() {
	commands.Execute()
}

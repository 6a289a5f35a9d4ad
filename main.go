package main

import "catalog/internal/commands"

func main() {
	commands.Execute()
}

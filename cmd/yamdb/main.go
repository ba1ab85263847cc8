package main

import "github.com/deppfellow/yamdb/cmd/yamdb/commands"

func main() {
	commands.Execute()
}

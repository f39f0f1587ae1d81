package main

import (
	"github.com/livp123/urlstat/cmd/urlstat/commands"
)

func main() {
	commands.Execute()
}

package main

import (
	"os"

	"github.com/mytec0l/ToDoListParser/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"os"

	"redmine-cli/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}

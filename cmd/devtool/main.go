package main

import (
	"os"

	"title-reader/cmd/devtool/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}

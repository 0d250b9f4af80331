package main

import (
	"os"

	"github.com/wallaceicy06/fwfcsv/cmd/fwfcsv/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}

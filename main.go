package main

import (
	"os"

	"tomgalvin.uk/imgarray/cmd"
)

func main() {
	app := cmd.App{
		Stdout:         os.Stdout,
		Stderr:         os.Stderr,
		OpenRepository: NewRepository,
	}
	os.Exit(app.Run(os.Args[1:]))
}

package main

import "github.com/djcass44/debcat/cmd"

var version = "development"

func main() {
	cmd.Execute(version)
}

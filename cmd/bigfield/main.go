package main

import "github.com/zkfield/bigfield/cmd"

func main() {
	cmd.Execute()
}

package main

import "github.com/example/tablevoice/cmd"

func main() {
	cmd.Execute()
}

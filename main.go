package main

import "github.com/rauko/anibridge/cmd"

var execute = cmd.Execute

func main() {
	execute()
}

package main

import (
	"github.com/nextplot/nextplot-gw/cmd"
)

func main() {
	cmd.Execute()
}

package main

import (
	"github.com/showquiz/tvtrivia/internal/cli"
)

func main() {
	cli.Execute()
}

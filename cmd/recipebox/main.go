package main

import (
	"github.com/mchmarny/recipebox/pkg/cli"
)

func main() {
	cli.Execute()
}

package main

import (
	"github.com/NVIDIA/systracker/pkg/cli"
)

func main() {
	cli.Execute()
}

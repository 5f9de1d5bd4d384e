package main

import (
	"github.com/stakemesh/wagerd/internal/cli"
)

func main() {
	cli.Execute()
}

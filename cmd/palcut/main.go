package main

import (
	"github.com/palcut/palcut-go/internal/cli"
)

func main() {
	cli.Execute()
}

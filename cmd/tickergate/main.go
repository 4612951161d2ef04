package main

import (
	"github.com/tickergate/tickergate/internal/cli"
)

func main() {
	cli.Execute()
}

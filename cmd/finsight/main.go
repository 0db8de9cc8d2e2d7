package main

import (
	"finsight/internal/cli"
)

func main() {
	cli.LoadEnvFile()
	cli.Execute()
}

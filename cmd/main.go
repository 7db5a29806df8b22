package main

import (
	cmd "github.com/tavoli/pensvm/cmd/pensvm"
)

func main() {
	cmd.Execute()
}

package main

import (
	"github.com/openqda/qda/cmd"
)

func main() {
	cmd.Execute()
}

package main

import (
	"github.com/Brownie44l1/iris-api/cmd/server/cmd"
)

func main() {
	cmd.Execute()
}

package main

import "github.com/atikulmunna/logreport/internal/cmd"

func main() {
	cmd.Execute()
}

package main

import "github.com/khrees2412/internly/cmd"

func main() {
	cmd.Execute()
}

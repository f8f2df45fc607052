package main

import "github.com/chriserin/pegast/cmd"

func main() {
	cmd.Execute()
}

package main

import "github.com/theirongolddev/housedash/cmd"

func main() {
	cmd.Execute()
}

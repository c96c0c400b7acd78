package main

import "deleter/cmd"

func main() {
	cmd.Execute()
}

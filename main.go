package main

import "prodedup/cmd"

func main() {
	cmd.Execute()
}

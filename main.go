package main

import "ytplay/cmd"

func main() {
	cmd.Execute()
}

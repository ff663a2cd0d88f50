package main

import "zoesolar/zoe/cmd"

func main() {
	cmd.Execute()
}

package main

import "signature-explorer/cmd"

func main() {
	cmd.Execute()
}

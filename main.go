package main

import "traynote/internal/cli"

func main() {
	cli.Execute()
}

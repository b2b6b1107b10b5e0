package main

import "github.com/shaharia-lab/deskhooks/cmd"

func main() {
	cmd.Execute()
}

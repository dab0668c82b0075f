package main

import "github.com/KaramelBytes/rankdiff-cli/cmd"

func main() {
	cmd.Execute()
}

package main

import "github.com/KaramelBytes/tablesafe-cli/cmd"

func main() {
	cmd.Execute()
}

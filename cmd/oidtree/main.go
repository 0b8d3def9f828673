package main

import "github.com/dbsmedya/oidtree/cmd/oidtree/cmd"

func main() {
	cmd.Execute()
}

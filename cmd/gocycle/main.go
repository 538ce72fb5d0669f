package main

import "github.com/dbsmedya/gocycle/cmd/gocycle/cmd"

func main() {
	cmd.Execute()
}

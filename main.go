package main

import "github.com/dstjohniii/rand-db-jsonb-populate/cmd"

func main() {
	cmd.Execute()
}

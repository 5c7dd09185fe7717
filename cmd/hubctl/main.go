package main

import "github.com/joao-fontenele/msme-business-hub/internal/cli"

func main() {
	cli.Execute()
}

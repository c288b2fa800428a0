package main

import (
	"context"
	"fmt"
	"os"

	"StockRoom/internal/cli"
)

func main() {
	root := cli.NewRootCmd(os.Stdout)
	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/coalition-freeware/xplib-go/internal/app"
	"github.com/coalition-freeware/xplib-go/internal/cli"
)

var exitFunc = os.Exit

func run(args []string, out, errOut io.Writer) int {
	runner := app.New()
	commandLine := cli.New(runner, out, errOut)
	code := commandLine.Run(context.Background(), args)
	for _, item := range runner.Sink.Items() {
		fmt.Fprintln(errOut, item.String())
	}
	return code
}

func main() {
	exitFunc(run(os.Args[1:], os.Stdout, os.Stderr))
}

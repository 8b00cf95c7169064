package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/cellweave/cellweave/cmd/codegen/templates"
	"github.com/urfave/cli/v3"
)

const (
	arityCountKey = "count"
	outKey        = "out"
)

func main() {
	cmd := &cli.Command{
		Name:  "generate",
		Usage: "Generate arity-specialized typed constructors",
		Flags: []cli.Flag{
			&cli.UintFlag{
				Name:  arityCountKey,
				Usage: "Highest arity to generate",
				Value: 8,
			},
			&cli.StringFlag{
				Name:  outKey,
				Usage: "Output path",
				Value: "typed/arity.go",
			},
		},
		Action: generate,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func generate(ctx context.Context, cmd *cli.Command) error {
	start := time.Now()
	log.Printf("Codegen for typed arity helpers started")
	defer func() {
		log.Printf("Codegen finished in %v", time.Since(start))
	}()

	count := int(cmd.Uint(arityCountKey))
	out := cmd.String(outKey)

	contents := templates.ArityGen(count)
	return os.WriteFile(out, []byte(contents), 0644)
}

package main

import (
	"io"
	"log"
	"os"

	"github.com/alecthomas/kong"
)

type cli struct {
	Encode encodeCmd `cmd:"" help:"Convert JSON, YAML or CBOR into OBF."`
	Decode decodeCmd `cmd:"" help:"Convert OBF into JSON or CBOR."`
	Dump   dumpCmd   `cmd:"" help:"Print an OBF value as an indented tree."`
	Hash   hashCmd   `cmd:"" help:"Print the fingerprint of an OBF value."`
}

// io flags shared by every subcommand.
type ioFlags struct {
	Out   string `short:"o" help:"Output file. Defaults to stdout."`
	Input string `arg:"" optional:"" help:"Input file. Defaults to stdin."`
}

func (f ioFlags) read() ([]byte, error) {
	if f.Input == "" || f.Input == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(f.Input)
}

func (f ioFlags) write(data []byte) error {
	if f.Out == "" || f.Out == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(f.Out, data, 0o644)
}

func main() {
	log.SetFlags(0)

	var args cli
	ctx := kong.Parse(&args,
		kong.Name("obf"),
		kong.Description("Convert between OBF binary values and JSON, YAML or CBOR."),
		kong.UsageOnError(),
	)
	if err := ctx.Run(); err != nil {
		log.Fatal(err)
	}
}

// Copyright © 2023 by Andrew Ekstedt <andrew.ekstedt@gmail.com>
// All rights reserved. See LICENSE for details.

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	ascon "github.com/magical/go-ascon128"
	"github.com/magical/go-ascon128/internal/keyfile"
	"github.com/magical/go-ascon128/internal/log"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap/zapcore"
)

// default output of the commands; logs go to logOutput.
var output io.Writer = os.Stdout

// nil means stderr
var logOutput zapcore.WriteSyncer

// Automatically set through -ldflags
// Example: go install -ldflags "-X main.version=`git describe --tags` -X main.gitCommit=`git rev-parse HEAD`"
var (
	version   = "master"
	gitCommit = "none"
	buildDate = "unknown"
)

// previewSize is how much of the output is printed when no --out file is given.
const previewSize = 100

var debugFlag = &cli.BoolFlag{
	Name:  "debug",
	Usage: "Turn debugging information on",
}

var jsonLogsFlag = &cli.BoolFlag{
	Name:  "json-logs",
	Usage: "Write logs as JSON instead of plain text",
}

var outFlag = &cli.StringFlag{
	Name:    "out",
	Aliases: []string{"o"},
	Usage:   "Write the output bytes to this file instead of printing a preview",
}

var keyfileFlag = &cli.StringFlag{
	Name: "keyfile",
	Usage: "Read the key and nonce from a TOML key file (see keygen). " +
		"KEY and NONCE are then omitted from the arguments.",
}

var lengthFlag = &cli.IntFlag{
	Name:  "length",
	Value: 32,
	Usage: "Number of output bytes",
}

var customizationFlag = &cli.StringFlag{
	Name:  "customization",
	Usage: "Customization string; selects Ascon-CXOF128 instead of Ascon-XOF128",
}

func toArray(flags ...cli.Flag) []cli.Flag {
	return flags
}

var appCommands = []*cli.Command{
	{
		Name:      "aead",
		Usage:     "Performs Ascon-AEAD128 encryption, or decryption if a TAG is given.",
		ArgsUsage: "KEY NONCE AD IN_FILE [TAG]",
		Flags:     toArray(keyfileFlag),
		Action:    aeadCmd,
	},
	{
		Name:      "hash",
		Usage:     "Computes the Ascon-Hash256 digest of a file.",
		ArgsUsage: "IN_FILE",
		Action:    hashCmd,
	},
	{
		Name:      "xof",
		Usage:     "Computes Ascon-XOF128 or Ascon-CXOF128 output for a file.",
		ArgsUsage: "IN_FILE",
		Flags:     toArray(lengthFlag, customizationFlag),
		Action:    xofCmd,
	},
	{
		Name:      "keygen",
		Usage:     "Writes a TOML key file with a random key and nonce.",
		ArgsUsage: "FILE",
		Action:    keygenCmd,
	},
}

// CLI returns the ascon app.
func CLI() *cli.App {
	app := cli.NewApp()
	app.Name = "ascon"
	app.Version = version
	app.Usage = "lightweight authenticated encryption and hashing"
	cli.VersionPrinter = func(c *cli.Context) {
		fmt.Fprintf(output, "ascon %v (date %v, commit %v)\n", version, buildDate, gitCommit)
	}
	app.ExitErrHandler = func(context *cli.Context, err error) {
		// errors are returned from Run; main decides how to exit
	}
	app.Writer = output
	app.Commands = appCommands
	app.Flags = toArray(debugFlag, jsonLogsFlag, outFlag)
	return app
}

func logger(c *cli.Context) log.Logger {
	level := log.WarnLevel
	if c.Bool(debugFlag.Name) {
		level = log.DebugLevel
	}
	return log.New(logOutput, level, c.Bool(jsonLogsFlag.Name))
}

func aeadCmd(c *cli.Context) error {
	l := logger(c).Named("aead")
	defer l.Sync() //nolint:errcheck

	args := c.Args().Slice()
	var key, nonce []byte
	var err error
	if c.IsSet(keyfileFlag.Name) {
		kf, err := keyfile.Load(c.String(keyfileFlag.Name))
		if err != nil {
			return err
		}
		if key, nonce, err = kf.Decode(); err != nil {
			return fmt.Errorf("key file %s: %w", c.String(keyfileFlag.Name), err)
		}
	} else {
		if len(args) < 2 {
			return errors.New("missing KEY and NONCE arguments")
		}
		if key, err = keyfile.DecodeHex("key", args[0], ascon.KeySize); err != nil {
			return err
		}
		if nonce, err = keyfile.DecodeHex("nonce", args[1], ascon.NonceSize); err != nil {
			return err
		}
		args = args[2:]
	}
	if len(args) != 2 && len(args) != 3 {
		return fmt.Errorf("expected AD IN_FILE [TAG], got %d arguments", len(args))
	}

	ad := []byte(args[0])
	inPath := args[1]
	input, err := os.ReadFile(inPath)
	if err != nil {
		return fmt.Errorf("reading [%s]: %w", inPath, err)
	}
	l = l.With("file", inPath)
	l.Debugw("read input", "bytes", len(input), "ad_bytes", len(ad))

	if len(args) == 3 {
		tag, err := keyfile.DecodeHex("tag", args[2], ascon.TagSize)
		if err != nil {
			return err
		}
		plain, err := ascon.Decrypt(key, nonce, ad, input, tag)
		if err != nil {
			l.Errorw("invalid tag", "tag", args[2])
			return fmt.Errorf("failed to decrypt [%s], invalid tag: %w", inPath, err)
		}
		l.Debugw("decrypted", "bytes", len(plain))
		return emit(c, l, "Decrypted content", plain)
	}

	ciphertext, tag, err := ascon.Encrypt(key, nonce, ad, input)
	if err != nil {
		return err
	}
	l.Debugw("encrypted", "bytes", len(ciphertext))
	if err := emit(c, l, "Encrypted content", ciphertext); err != nil {
		return err
	}
	fmt.Fprintf(output, "Encrypted tag: [%x]\n", tag)
	return nil
}

func hashCmd(c *cli.Context) error {
	l := logger(c).Named("hash")
	defer l.Sync() //nolint:errcheck

	input, err := readInput(c)
	if err != nil {
		return err
	}
	l.Debugw("read input", "file", c.Args().First(), "bytes", len(input))
	sum := ascon.Sum256(input)
	return emitHex(c, l, sum[:])
}

func xofCmd(c *cli.Context) error {
	l := logger(c).Named("xof")
	defer l.Sync() //nolint:errcheck

	n := c.Int(lengthFlag.Name)
	if n < 0 {
		return fmt.Errorf("--%s must not be negative", lengthFlag.Name)
	}
	input, err := readInput(c)
	if err != nil {
		return err
	}
	l.Debugw("read input", "file", c.Args().First(), "bytes", len(input), "length", n)

	out := make([]byte, n)
	if c.IsSet(customizationFlag.Name) {
		x, err := ascon.NewCxof128(c.String(customizationFlag.Name))
		if err != nil {
			return err
		}
		x.Write(input)
		x.Read(out)
	} else {
		out = ascon.SumXof128(input, n)
	}
	return emitHex(c, l, out)
}

func keygenCmd(c *cli.Context) error {
	if c.NArg() != 1 {
		return errors.New("expected exactly one FILE argument")
	}
	path := c.Args().First()
	f, err := keyfile.Generate()
	if err != nil {
		return err
	}
	if err := f.Save(path); err != nil {
		return fmt.Errorf("writing key file [%s]: %w", path, err)
	}
	fmt.Fprintf(output, "Key file written to [%s]\n", path)
	return nil
}

func readInput(c *cli.Context) ([]byte, error) {
	if c.NArg() != 1 {
		return nil, errors.New("expected exactly one IN_FILE argument")
	}
	path := c.Args().First()
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading [%s]: %w", path, err)
	}
	return b, nil
}

// emit writes data to the --out file, or prints a preview of it.
func emit(c *cli.Context, l log.Logger, title string, data []byte) error {
	if c.IsSet(outFlag.Name) {
		return writeOut(c, l, data)
	}
	preview(output, title, data)
	return nil
}

// emitHex writes data to the --out file, or prints it as hex.
func emitHex(c *cli.Context, l log.Logger, data []byte) error {
	if c.IsSet(outFlag.Name) {
		return writeOut(c, l, data)
	}
	fmt.Fprintf(output, "%x\n", data)
	return nil
}

func writeOut(c *cli.Context, l log.Logger, data []byte) error {
	path := c.String(outFlag.Name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing output to [%s]: %w", path, err)
	}
	l.Infow("wrote output", "out", path, "bytes", len(data))
	return nil
}

// preview prints up to previewSize characters of data as text,
// or as a list of byte values if it is not valid UTF-8.
func preview(w io.Writer, title string, data []byte) {
	more := ""
	if utf8.Valid(data) {
		r := []rune(string(data))
		if len(r) > previewSize {
			r = r[:previewSize]
			more = "..."
		}
		fmt.Fprintf(w, "%s:\n--- START ---\n%s%s\n--- END ---\n", title, string(r), more)
		return
	}
	if len(data) > previewSize {
		data = data[:previewSize]
		more = "..."
	}
	fmt.Fprintf(w, "%s:\n%v%s\n", title, data, more)
}

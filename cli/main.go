package main

import (
	"bufio"
	"encoding/base64"
	"flag"
	"flagset"
	"flagset/op"
	"fmt"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/exp/constraints"
	"io"
	"os"
)

var ErrUsage = errors.New("usage: flagset [-base64] parse|any|all|pack|unpack <property|pass> [args]")

func main() {
	b64 := flag.Bool("base64", false, "pack/unpack blocks as base64 text")
	flag.Parse()

	cfg, err := loadConfig()
	if err != nil {
		log.Fatal(err)
	}
	c := &command{cfg: cfg, base64: *b64, in: os.Stdin, out: os.Stdout}
	if err := c.run(flag.Args()); err != nil {
		if errors.Is(err, ErrUsage) {
			fmt.Fprintln(os.Stderr, ErrUsage)
			os.Exit(2)
		}
		log.Fatal(err)
	}
}

type command struct {
	cfg    *Config
	base64 bool
	in     io.Reader
	out    io.Writer
}

func (c *command) run(args []string) error {
	if len(args) < 2 {
		return ErrUsage
	}
	switch args[1] {
	case "property":
		return dispatch(c, op.PropertyNames, args[0], args[2:])
	case "pass":
		return dispatch(c, op.PassNames, args[0], args[2:])
	}
	return errors.Wrapf(ErrUsage, "unknown kind %q", args[1])
}

func dispatch[F constraints.Unsigned](c *command, names *flagset.Enum[F], cmd string, args []string) error {
	log.WithFields(log.Fields{"cmd": cmd, "args": args}).Debug("running")
	switch cmd {
	case "parse":
		if len(args) != 1 {
			return ErrUsage
		}
		s, err := names.Parse(args[0])
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(c.out, "%s %#x\n", names.Format(s), uint64(s.Bits()))
		return err

	case "any", "all":
		if len(args) != 2 {
			return ErrUsage
		}
		s, err := names.Parse(args[0])
		if err != nil {
			return errors.Wrap(err, "set")
		}
		q, err := names.Parse(args[1])
		if err != nil {
			return errors.Wrap(err, "query")
		}
		ok := s.ContainsAll(q)
		if cmd == "any" {
			ok = s.ContainsAny(q)
		}
		_, err = fmt.Fprintln(c.out, ok)
		return err

	case "pack":
		sets := make([]flagset.Set[F], 0, len(args))
		for _, a := range args {
			s, err := names.Parse(a)
			if err != nil {
				return err
			}
			sets = append(sets, s)
		}
		block, err := flagset.Pack(sets, c.cfg.Options())
		if err != nil {
			return err
		}
		log.WithFields(log.Fields{
			"sets":        len(sets),
			"bytes":       len(block),
			"compression": c.cfg.Compression,
		}).Info("packed")
		if c.base64 {
			_, err = fmt.Fprintln(c.out, base64.StdEncoding.EncodeToString(block))
			return err
		}
		_, err = c.out.Write(block)
		return err

	case "unpack":
		var r io.Reader = bufio.NewReader(c.in)
		if c.base64 {
			r = base64.NewDecoder(base64.StdEncoding, r)
		}
		block, err := io.ReadAll(r)
		if err != nil {
			return errors.Wrap(err, "read block")
		}
		sets, err := flagset.Unpack[F](block)
		if err != nil {
			return err
		}
		w := bufio.NewWriter(c.out)
		for _, s := range sets {
			fmt.Fprintln(w, names.Format(s))
		}
		return w.Flush()
	}
	return errors.Wrapf(ErrUsage, "unknown command %q", cmd)
}

package main

import (
	"bytes"
	"flagset"
	"github.com/pkg/errors"
	assertion "github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"strings"
	"testing"
)

func newCommand(in string, b64 bool) (*command, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return &command{
		cfg:    &Config{Compression: flagset.CompLz4},
		base64: b64,
		in:     strings.NewReader(in),
		out:    out,
	}, out
}

func TestParse(t *testing.T) {
	assert := assertion.New(t)
	c, out := newCommand("", false)
	assert.NoError(c.run([]string{"parse", "property", "idem|ASSOC"}))
	assert.Equal("assoc|idem 0x11\n", out.String())

	c, _ = newCommand("", false)
	assert.True(errors.Is(c.run([]string{"parse", "pass", "bogus"}), flagset.ErrUnknownFlag))
}

func TestAnyAll(t *testing.T) {
	assert := assertion.New(t)
	for _, tc := range []struct {
		args []string
		want string
	}{
		{[]string{"any", "pass", "prec|gather", "format|prec"}, "true\n"},
		{[]string{"all", "pass", "prec|gather", "format|prec"}, "false\n"},
		{[]string{"all", "property", "0x1f", "comm|idem"}, "true\n"},
		{[]string{"any", "property", "assoc", "0"}, "false\n"},
		{[]string{"all", "property", "assoc", "0"}, "true\n"},
	} {
		c, out := newCommand("", false)
		assert.NoError(c.run(tc.args), "%v", tc.args)
		assert.Equal(tc.want, out.String(), "%v", tc.args)
	}
}

func TestPackUnpack(t *testing.T) {
	assert := assertion.New(t)
	for _, b64 := range []bool{false, true} {
		c, packed := newCommand("", b64)
		require.NoError(t, c.run([]string{"pack", "property", "assoc|comm", "0", "idem"}))

		c, out := newCommand(packed.String(), b64)
		require.NoError(t, c.run([]string{"unpack", "property"}))
		assert.Equal("assoc|comm\n0\nidem\n", out.String())
	}
}

func TestUsage(t *testing.T) {
	assert := assertion.New(t)
	for _, args := range [][]string{
		nil,
		{"parse"},
		{"parse", "colour", "red"},
		{"frob", "pass"},
		{"any", "pass", "prec"},
	} {
		c, _ := newCommand("", false)
		assert.True(errors.Is(c.run(args), ErrUsage), "%v", args)
	}
}

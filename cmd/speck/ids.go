package main

import (
	"encoding/hex"
	"fmt"

	"speck-go/pkg/idobf"
	"speck-go/pkg/speck"

	"github.com/urfave/cli/v2"
)

var idsCommand = &cli.Command{
	Name:  "ids",
	Usage: "shows how sequential ids map to encrypted ids and back",
	Description: `Encrypts the ids start..start+count-1 with a 64-bit block variant and
decrypts them again. Without --key the SPECK-64/128 key words [0 1 3 4] are used.`,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "variant",
			Aliases: []string{"v"},
			Usage:   "64-bit block cipher `NAME`, used together with --key",
			Value:   "SPECK-64/128",
		},
		&cli.StringFlag{
			Name:    "key",
			Aliases: []string{"k"},
			Usage:   "hex encoded `KEY`",
		},
		&cli.Uint64Flag{
			Name:  "start",
			Usage: "first id",
			Value: 1,
		},
		&cli.IntFlag{
			Name:    "count",
			Aliases: []string{"n"},
			Usage:   "number of ids",
			Value:   1000,
		},
	},
	Action: idsCmd,
}

func idsCmd(c *cli.Context) error {
	var (
		sc  speck.BlockCipher
		err error
	)
	if c.IsSet("variant") && !c.IsSet("key") {
		return cli.Exit("--variant needs --key", 1)
	}
	if c.IsSet("key") {
		key, derr := hex.DecodeString(c.String("key"))
		if derr != nil {
			return cli.Exit(fmt.Sprintf("key is not valid hex: %v", derr), 1)
		}
		sc, err = speck.NewCipher(c.String("variant"), key)
	} else {
		sc = speck.New64_128Words([4]uint32{0, 1, 3, 4})
	}
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	codec, err := idobf.New(sc)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	start := c.Uint64("start")
	for i := 0; i < c.Int("count"); i++ {
		id := start + uint64(i)
		enc, err := codec.EncodeUint64(id)
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}
		dec, err := codec.DecodeUint64(enc)
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}
		fmt.Fprintf(c.App.Writer, "%d -> %d -> %d\n", id, enc, dec)
	}
	return nil
}

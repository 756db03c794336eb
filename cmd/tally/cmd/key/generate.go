package key

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/spf13/cobra"

	"boscoin.io/tally/cmd/tally/common"
	"boscoin.io/tally/lib/common/keypair"
)

var (
	GenerateCmd *cobra.Command

	flagParse  bool
	flagFormat string
)

type keyPair struct {
	Seed    string `json:"seed" yaml:"seed"`
	Address string `json:"address" yaml:"address"`
}

var defaultTemplate = template.Must(template.New("").Parse(`   Secret Seed: {{ .Seed }}
Public Address: {{ .Address }}
`))

func defaultEncode(v interface{}, w io.Writer) error {
	return defaultTemplate.Execute(w, v)
}

func onelineEncode(v interface{}, w io.Writer) error {
	kp := v.(keyPair)
	_, err := fmt.Fprintf(w, "%s %s\n", kp.Seed, kp.Address)
	return err
}

var encoders = map[string]common.Encode{
	"default":    defaultEncode,
	"oneline":    onelineEncode,
	"json":       common.DefaultEncodes["json"],
	"prettyjson": common.DefaultEncodes["prettyjson"],
	"yaml":       common.DefaultEncodes["yaml"],
}

func init() {
	GenerateCmd = &cobra.Command{
		Use:   "generate [<secret seed> | <passphrase>]",
		Short: "Generate keypair",
		Long: `Generate keypair; without argument, the random keypair is made.
With '--parse', the given secret seed is parsed. Otherwise the keypair is
derived from the given passphrase.`,
		Run: func(c *cobra.Command, args []string) {
			input := strings.TrimSpace(strings.Join(args, " "))

			if flagParse && len(input) < 1 {
				common.PrintFlagsError(c, "--parse", errors.New("--parse needs <secret seed>"))
			}

			encode, ok := encoders[flagFormat]
			if !ok {
				common.PrintFlagsError(c, "--format", fmt.Errorf(`"%s" not recognized`, flagFormat))
			}

			kp, err := generateKP(input, flagParse)
			if err != nil {
				common.PrintFlagsError(c, "<input>", fmt.Errorf("failed to parse secret seed: %v", err))
			}

			if err = encode(keyPair{Seed: kp.Seed(), Address: kp.Address()}, os.Stdout); err != nil {
				common.PrintError(c, err)
			}
		},
	}

	GenerateCmd.Flags().BoolVar(&flagParse, "parse", false, "parse secret seed")
	GenerateCmd.Flags().StringVar(&flagFormat, "format", "default", "format, {default, oneline, json, prettyjson, yaml}")
}

func generateKP(seedOrPassphrase string, fromSeed bool) (full *keypair.Full, err error) {
	if len(seedOrPassphrase) < 1 {
		return keypair.RandomCanFail()
	}

	if !fromSeed {
		return keypair.Master(seedOrPassphrase).(*keypair.Full), nil
	}

	var kp keypair.KP
	if kp, err = keypair.Parse(seedOrPassphrase); err != nil {
		return
	}

	var ok bool
	if full, ok = kp.(*keypair.Full); !ok {
		err = errors.New("not a secret seed")
	}

	return
}

/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package ledgerctl implements the ledgerctl administration commands.
package ledgerctl

import (
	"os"
	"strings"

	"github.com/certledger/ledgergw/internal/pkg/config"
	"github.com/hyperledger/fabric-lib-go/common/flogging"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var logger = flogging.MustGetLogger("ledgerctl")

type rootOptions struct {
	configPath  string
	logSpec     string
	metricsFile string

	cfg *config.Config
}

// Cmd returns the ledgerctl root command.
func Cmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "ledgerctl",
		Short:         "Manage identities and transactions of the certificate network.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if opts.metricsFile == "" {
				return nil
			}
			return prom.WriteToTextfile(opts.metricsFile, prom.DefaultGatherer)
		},
	}
	opts.addFlags(root.PersistentFlags())

	root.AddCommand(
		enrollAdminCmd(opts),
		registerCmd(opts),
		registerGuestCmd(opts),
		queryCmd(opts),
		invokeCmd(opts),
		walletCmd(opts),
	)
	root.SetGlobalNormalizationFunc(wordSepNormalizeFunc)
	return root
}

func (o *rootOptions) addFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&o.configPath, "config", "c", "", "Path to ledgergw.yaml. Searched in $LEDGERGW_CFG_PATH, . and /etc/ledgergw when unset.")
	flags.StringVar(&o.logSpec, "log-spec", "", "Logging spec overriding logging.spec, e.g. info:session=debug.")
	flags.StringVar(&o.metricsFile, "metrics-file", "", "Write collected prometheus metrics to this file on exit.")
}

// wordSepNormalizeFunc accepts --log_spec for --log-spec.
func wordSepNormalizeFunc(f *pflag.FlagSet, name string) pflag.NormalizedName {
	return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
}

func (o *rootOptions) load() error {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}
	spec := cfg.Logging.Spec
	if o.logSpec != "" {
		spec = o.logSpec
	}
	flogging.Init(flogging.Config{
		Format:  cfg.Logging.Format,
		LogSpec: spec,
		Writer:  os.Stderr,
	})
	o.cfg = cfg
	return nil
}

// run builds the environment, runs fn and releases the environment.
func (o *rootOptions) run(fn func(env *Environment) error) error {
	env, err := NewEnvironment(o.cfg)
	if err != nil {
		return err
	}
	defer env.Close()
	return fn(env)
}

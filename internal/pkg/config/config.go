/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package config loads ledgergw.yaml and turns it into the immutable
// values the router, wallet and sessions are built from.
package config

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/certledger/ledgergw/internal/fileutil"
	"github.com/certledger/ledgergw/internal/pkg/comm"
	"github.com/certledger/ledgergw/internal/pkg/profile"
	"github.com/certledger/ledgergw/internal/pkg/router"
	"github.com/certledger/ledgergw/internal/pkg/session"
	"github.com/certledger/ledgergw/internal/pkg/wallet"
	"github.com/hyperledger/fabric-lib-go/common/flogging"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

var logger = flogging.MustGetLogger("config")

const (
	// Prefix is the environment variable prefix of every setting.
	Prefix = "LEDGERGW"
	// Name is the configuration file stem.
	Name = "ledgergw"
)

type TopLevel struct {
	Logging       Logging
	Gateway       Gateway
	Wallet        Wallet
	Metrics       Metrics
	Organizations map[string]Organization
}

type Logging struct {
	Spec   string
	Format string
}

type Gateway struct {
	Channel     string
	Contract    string
	DialTimeout time.Duration
	Discovery   Discovery
}

type Discovery struct {
	Enabled     bool
	AsLocalhost bool
}

type Wallet struct {
	Type string
	Path string
	SQL  SQL
}

type SQL struct {
	Driver       string
	DataSource   string
	TablePrefix  string
	MaxOpenConns int
}

type Metrics struct {
	// Provider is disabled or prometheus.
	Provider string
}

type Organization struct {
	MSPID             string
	ConnectionProfile string
	Admin             Admin
}

type Admin struct {
	Username         string
	EnrollmentID     string
	EnrollmentSecret string
}

var defaults = map[string]interface{}{
	"logging.spec":                  "info",
	"logging.format":                "",
	"gateway.channel":               "certificatechannel",
	"gateway.contract":              "academy",
	"gateway.dialTimeout":           "10s",
	"gateway.discovery.enabled":     true,
	"gateway.discovery.asLocalhost": true,
	"wallet.type":                   "leveldb",
	"wallet.path":                   "wallet",
	"wallet.sql.driver":             "sqlite",
	"wallet.sql.dataSource":         "",
	"wallet.sql.tablePrefix":        "",
	"wallet.sql.maxOpenConns":       0,
	"metrics.provider":              "disabled",
}

// ConfigPaths returns the directories searched for ledgergw.yaml: the
// value of LEDGERGW_CFG_PATH, the working directory and /etc/ledgergw.
func ConfigPaths() []string {
	var paths []string
	if p := os.Getenv(Prefix + "_CFG_PATH"); p != "" {
		paths = append(paths, p)
	}
	return append(paths, ".", "/etc/ledgergw")
}

// Config is a loaded configuration together with the directory relative
// paths are resolved against.
type Config struct {
	TopLevel
	dir string
}

// Load reads the configuration file at path, or searches ConfigPaths when
// path is empty. Environment variables prefixed with LEDGERGW override file
// values, e.g. LEDGERGW_GATEWAY_CHANNEL.
func Load(path string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	if path != "" {
		exists, _, err := fileutil.FileExists(path)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, errors.Errorf("config file %s does not exist", path)
		}
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(Name)
		for _, p := range ConfigPaths() {
			v.AddConfigPath(p)
		}
	}
	v.SetEnvPrefix(Prefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrap(err, "error reading configuration")
	}
	logger.Debugw("loaded configuration", "file", v.ConfigFileUsed())

	c := &Config{dir: filepath.Dir(v.ConfigFileUsed())}
	err := v.Unmarshal(&c.TopLevel, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
	)))
	if err != nil {
		return nil, errors.Wrap(err, "error unmarshaling configuration")
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) validate() error {
	if len(c.Organizations) == 0 {
		return errors.New("no organizations configured")
	}
	for name, org := range c.Organizations {
		if org.MSPID == "" {
			return errors.Errorf("organization %s: mspID is required", name)
		}
		if org.ConnectionProfile == "" {
			return errors.Errorf("organization %s: connectionProfile is required", name)
		}
		if org.Admin.Username == "" {
			return errors.Errorf("organization %s: admin username is required", name)
		}
	}
	return nil
}

// TranslatePath resolves p against the configuration file directory unless
// it is absolute.
func (c *Config) TranslatePath(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.dir, p)
}

// Router loads the connection profile of every organization and builds
// the role router.
func (c *Config) Router() (*router.Router, error) {
	names := make([]string, 0, len(c.Organizations))
	for name := range c.Organizations {
		names = append(names, name)
	}
	sort.Strings(names)

	var orgs []router.Organization
	for _, name := range names {
		org := c.Organizations[name]
		p, err := profile.Load(c.TranslatePath(org.ConnectionProfile))
		if err != nil {
			return nil, errors.WithMessagef(err, "organization %s", name)
		}
		orgs = append(orgs, router.Organization{
			Name:    name,
			MSPID:   org.MSPID,
			Profile: p,
			Admin: router.Admin{
				Label:            org.Admin.Username,
				EnrollmentID:     org.Admin.EnrollmentID,
				EnrollmentSecret: org.Admin.EnrollmentSecret,
			},
		})
	}
	return router.New(orgs...)
}

// WalletConfig returns the wallet backend settings with paths resolved.
func (c *Config) WalletConfig() wallet.Config {
	cfg := wallet.Config{
		Type: c.Wallet.Type,
		Path: c.TranslatePath(c.Wallet.Path),
		SQL: wallet.SQLConfig{
			Driver:       c.Wallet.SQL.Driver,
			DataSource:   c.Wallet.SQL.DataSource,
			TablePrefix:  c.Wallet.SQL.TablePrefix,
			MaxOpenConns: c.Wallet.SQL.MaxOpenConns,
		},
	}
	if strings.EqualFold(cfg.SQL.Driver, "sqlite") && !strings.Contains(cfg.SQL.DataSource, ":") {
		cfg.SQL.DataSource = c.TranslatePath(cfg.SQL.DataSource)
	}
	return cfg
}

func (c *Config) SessionConfig() session.Config {
	return session.Config{
		Channel:     c.Gateway.Channel,
		Contract:    c.Gateway.Contract,
		Discovery:   c.Gateway.Discovery.Enabled,
		AsLocalhost: c.Gateway.Discovery.AsLocalhost,
	}
}

// ClientConfig returns the gRPC settings used to dial gateway peers.
func (c *Config) ClientConfig() comm.ClientConfig {
	return comm.ClientConfig{
		KaOpts:      comm.DefaultKeepaliveOptions,
		DialTimeout: c.Gateway.DialTimeout,
	}
}

/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package ledgerctl

import (
	"github.com/certledger/ledgergw/common/grpclogging"
	"github.com/certledger/ledgergw/common/grpcmetrics"
	"github.com/certledger/ledgergw/internal/pkg/ca"
	"github.com/certledger/ledgergw/internal/pkg/config"
	"github.com/certledger/ledgergw/internal/pkg/facade"
	"github.com/certledger/ledgergw/internal/pkg/router"
	"github.com/certledger/ledgergw/internal/pkg/session"
	"github.com/certledger/ledgergw/internal/pkg/wallet"
	"github.com/hyperledger/fabric-lib-go/common/flogging"
	"github.com/hyperledger/fabric-lib-go/common/metrics"
	"github.com/hyperledger/fabric-lib-go/common/metrics/disabled"
	"github.com/hyperledger/fabric-lib-go/common/metrics/prometheus"
	"github.com/pkg/errors"
)

// Environment is the wired subsystem a command runs against.
type Environment struct {
	Config *config.Config
	Router *router.Router
	Wallet wallet.Wallet
	Facade *facade.Facade
}

// NewEnvironment builds the router, wallet, certificate authority clients
// and facade described by cfg. Organizations whose profile names no
// certificate authority can still query and invoke.
func NewEnvironment(cfg *config.Config) (*Environment, error) {
	r, err := cfg.Router()
	if err != nil {
		return nil, err
	}

	provider, err := metricsProvider(cfg.Metrics.Provider)
	if err != nil {
		return nil, err
	}

	asLocalhost := cfg.Gateway.Discovery.AsLocalhost
	cas := map[string]facade.CertificateAuthority{}
	for _, org := range r.Organizations() {
		ep, err := org.Profile.CertificateAuthority(asLocalhost)
		if err != nil {
			logger.Warnw("no certificate authority", "organization", org.Name, "error", err)
			continue
		}
		client, err := ca.NewClient(ca.ConfigFromProfile(ep))
		if err != nil {
			return nil, errors.WithMessagef(err, "organization %s", org.Name)
		}
		cas[org.Name] = client
	}

	w, err := wallet.Open(cfg.WalletConfig())
	if err != nil {
		return nil, err
	}

	clientConfig := cfg.ClientConfig()
	clientConfig.UnaryInterceptors = append(clientConfig.UnaryInterceptors,
		grpclogging.UnaryClientInterceptor(flogging.MustGetLogger("comm.grpc.client").Zap()),
		grpcmetrics.UnaryClientInterceptor(grpcmetrics.NewUnaryMetrics(provider)),
	)
	opener := &session.Opener{
		Wallet: w,
		Dialer: &session.GRPCDialer{ClientConfig: clientConfig},
		Config: cfg.SessionConfig(),
	}
	return &Environment{
		Config: cfg,
		Router: r,
		Wallet: w,
		Facade: facade.New(facade.Options{
			Router:                 r,
			Wallet:                 w,
			Opener:                 opener,
			CertificateAuthorities: cas,
			MetricsProvider:        provider,
		}),
	}, nil
}

func (e *Environment) Close() error {
	return e.Wallet.Close()
}

func metricsProvider(name string) (metrics.Provider, error) {
	switch name {
	case "", "disabled":
		return &disabled.Provider{}, nil
	case "prometheus":
		return &prometheus.Provider{}, nil
	default:
		return nil, errors.Errorf("unknown metrics provider %q", name)
	}
}

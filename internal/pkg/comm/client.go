/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package comm

import (
	"context"
	"crypto/tls"
	"time"

	"github.com/hyperledger/fabric-lib-go/common/flogging"
	"github.com/pkg/errors"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

var commLogger = flogging.MustGetLogger("comm")

// GRPCClient dials gateway peers with one fixed client configuration.
type GRPCClient struct {
	tlsConfig *tls.Config
	dialOpts  []grpc.DialOption
	timeout   time.Duration
}

// NewGRPCClient validates config and prepares its dial options.
func NewGRPCClient(config ClientConfig) (*GRPCClient, error) {
	tlsConfig, err := config.SecOpts.TLSConfig()
	if err != nil {
		return nil, err
	}
	dialOpts, err := config.DialOptions()
	if err != nil {
		return nil, err
	}
	timeout := config.DialTimeout
	if timeout <= 0 {
		timeout = DefaultConnectionTimeout
	}

	return &GRPCClient{
		tlsConfig: tlsConfig,
		dialOpts:  dialOpts,
		timeout:   timeout,
	}, nil
}

// NewConnection returns a grpc.ClientConn for the target address. Dialing
// is bounded by the client timeout and by ctx.
func (client *GRPCClient) NewConnection(ctx context.Context, address string) (*grpc.ClientConn, error) {
	creds := insecure.NewCredentials()
	if client.tlsConfig != nil {
		creds = NewGatewayCredentials(client.tlsConfig)
	}
	dialOpts := append([]grpc.DialOption{grpc.WithTransportCredentials(creds)}, client.dialOpts...)

	ctx, cancel := context.WithTimeout(ctx, client.timeout)
	defer cancel()
	conn, err := grpc.DialContext(ctx, address, dialOpts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create new connection")
	}
	return conn, nil
}

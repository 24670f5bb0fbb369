/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package session

import (
	"context"

	"github.com/certledger/ledgergw/internal/pkg/comm"
	"github.com/certledger/ledgergw/internal/pkg/profile"
	gp "github.com/hyperledger/fabric-protos-go/gateway"
	"google.golang.org/grpc"
)

// GRPCDialer dials gateway peers over gRPC.
type GRPCDialer struct {
	// ClientConfig carries keepalive, timeout and interceptor settings. TLS
	// settings, including the client key pair for mutual TLS, come from the
	// endpoint.
	ClientConfig comm.ClientConfig
}

type grpcConnection struct {
	gp.GatewayClient
	conn *grpc.ClientConn
}

func (c *grpcConnection) Close() error {
	return c.conn.Close()
}

func (d *GRPCDialer) Dial(ctx context.Context, ep profile.Endpoint) (Connection, error) {
	cfg := d.ClientConfig
	cfg.SecOpts = comm.SecureOptions{
		UseTLS:             ep.TLS,
		ServerRootCAs:      ep.RootCerts,
		ServerNameOverride: ep.ServerNameOverride,
		RequireClientCert:  len(ep.ClientCert) > 0,
		Certificate:        ep.ClientCert,
		Key:                ep.ClientKey,
	}
	client, err := comm.NewGRPCClient(cfg)
	if err != nil {
		return nil, err
	}
	conn, err := client.NewConnection(ctx, ep.Address)
	if err != nil {
		return nil, err
	}
	return &grpcConnection{GatewayClient: gp.NewGatewayClient(conn), conn: conn}, nil
}

/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package comm

import (
	"context"
	"crypto/tls"
	"errors"
	"net"
	"time"

	"github.com/hyperledger/fabric-lib-go/common/flogging"
	"google.golang.org/grpc/credentials"
)

var (
	ErrServerHandshakeNotImplemented = errors.New("comm: server handshakes are not implemented by gateway client credentials")

	tlsClientLogger = flogging.MustGetLogger("comm.tls")
)

// GatewayCredentials are TLS transport credentials for connections to
// gateway peers. Every handshake is timed and logged with the peer address,
// since a trust failure against a profile's tlsCACerts otherwise surfaces
// only as a dial timeout.
type GatewayCredentials struct {
	credentials.TransportCredentials
}

// NewGatewayCredentials wraps a client TLS configuration.
func NewGatewayCredentials(config *tls.Config) *GatewayCredentials {
	return &GatewayCredentials{TransportCredentials: credentials.NewTLS(config)}
}

func (gc *GatewayCredentials) ClientHandshake(ctx context.Context, authority string, rawConn net.Conn) (net.Conn, credentials.AuthInfo, error) {
	start := time.Now()
	conn, auth, err := gc.TransportCredentials.ClientHandshake(ctx, authority, rawConn)
	if err != nil {
		tlsClientLogger.Errorw("client TLS handshake failed", "address", rawConn.RemoteAddr().String(), "authority", authority, "duration", time.Since(start), "error", err)
		return nil, nil, err
	}
	tlsClientLogger.Debugw("client TLS handshake completed", "address", rawConn.RemoteAddr().String(), "duration", time.Since(start))
	return conn, auth, nil
}

func (gc *GatewayCredentials) ServerHandshake(net.Conn) (net.Conn, credentials.AuthInfo, error) {
	return nil, nil, ErrServerHandshakeNotImplemented
}

func (gc *GatewayCredentials) Clone() credentials.TransportCredentials {
	return &GatewayCredentials{TransportCredentials: gc.TransportCredentials.Clone()}
}

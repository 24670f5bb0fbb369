/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package session_test

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"net"
	"testing"
	"time"

	"github.com/certledger/ledgergw/common/crypto/tlsgen"
	"github.com/certledger/ledgergw/internal/pkg/comm"
	"github.com/certledger/ledgergw/internal/pkg/profile"
	"github.com/certledger/ledgergw/internal/pkg/session"
	gp "github.com/hyperledger/fabric-protos-go/gateway"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/status"
)

// startMutualTLSPeer serves an empty gRPC server that only accepts clients
// holding a certificate issued by ca.
func startMutualTLSPeer(t *testing.T, ca tlsgen.CA) string {
	kp, err := ca.NewServerCertKeyPair("peer0.academy.certificate.com")
	require.NoError(t, err)
	cert, err := tls.X509KeyPair(kp.Cert, kp.Key)
	require.NoError(t, err)
	clientCAs := x509.NewCertPool()
	require.True(t, clientCAs.AppendCertsFromPEM(ca.CertBytes()))

	srv := grpc.NewServer(grpc.Creds(credentials.NewTLS(&tls.Config{
		Certificates: []tls.Certificate{cert},
		ClientAuth:   tls.RequireAndVerifyClientCert,
		ClientCAs:    clientCAs,
		MaxVersion:   tls.VersionTLS12,
	})))
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go srv.Serve(lis)
	t.Cleanup(srv.Stop)
	return lis.Addr().String()
}

func TestGRPCDialerMutualTLS(t *testing.T) {
	ca, err := tlsgen.NewCA()
	require.NoError(t, err)
	address := startMutualTLSPeer(t, ca)
	clientKP, err := ca.NewClientCertKeyPair()
	require.NoError(t, err)

	dialer := &session.GRPCDialer{ClientConfig: comm.ClientConfig{DialTimeout: 2 * time.Second}}
	ep := profile.Endpoint{
		Address:            address,
		TLS:                true,
		ServerNameOverride: "peer0.academy.certificate.com",
		RootCerts:          [][]byte{ca.CertBytes()},
		ClientCert:         clientKP.Cert,
		ClientKey:          clientKP.Key,
	}

	conn, err := dialer.Dial(context.Background(), ep)
	require.NoError(t, err)
	defer conn.Close()

	// The handshake succeeded; the peer simply serves no gateway.
	_, err = conn.Evaluate(context.Background(), &gp.EvaluateRequest{})
	require.Equal(t, codes.Unimplemented, status.Code(err))
}

func TestGRPCDialerWithoutClientCertificate(t *testing.T) {
	ca, err := tlsgen.NewCA()
	require.NoError(t, err)
	address := startMutualTLSPeer(t, ca)

	dialer := &session.GRPCDialer{ClientConfig: comm.ClientConfig{DialTimeout: 500 * time.Millisecond}}
	_, err = dialer.Dial(context.Background(), profile.Endpoint{
		Address:            address,
		TLS:                true,
		ServerNameOverride: "peer0.academy.certificate.com",
		RootCerts:          [][]byte{ca.CertBytes()},
	})
	require.ErrorContains(t, err, "failed to create new connection")
}

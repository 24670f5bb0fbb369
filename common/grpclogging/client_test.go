/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package grpclogging_test

import (
	"context"
	"testing"

	"github.com/certledger/ledgergw/common/grpclogging"
	"github.com/hyperledger/fabric-protos-go/peer"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestUnaryClientInterceptor(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	interceptor := grpclogging.UnaryClientInterceptor(zap.New(core))

	invoker := func(ctx context.Context, method string, req, reply interface{}, cc *grpc.ClientConn, opts ...grpc.CallOption) error {
		return status.Error(codes.PermissionDenied, "access denied")
	}
	err := interceptor(context.Background(), "/gateway.Gateway/Endorse", &peer.Response{}, &peer.Response{}, nil, invoker)
	require.Error(t, err)

	entries := logs.All()
	require.Len(t, entries, 1)
	require.Equal(t, "unary call completed", entries[0].Message)
	fields := entries[0].ContextMap()
	require.Equal(t, "gateway.Gateway", fields["grpc.service"])
	require.Equal(t, "Endorse", fields["grpc.method"])
	require.Equal(t, "PermissionDenied", fields["grpc.code"])
	require.Contains(t, fields["error"], "access denied")
}

func TestUnaryClientInterceptorPayloads(t *testing.T) {
	core, logs := observer.New(grpclogging.DefaultPayloadLevel)
	interceptor := grpclogging.UnaryClientInterceptor(zap.New(core))

	invoker := func(ctx context.Context, method string, req, reply interface{}, cc *grpc.ClientConn, opts ...grpc.CallOption) error {
		reply.(*peer.Response).Status = 200
		return nil
	}
	err := interceptor(context.Background(), "/gateway.Gateway/Evaluate", &peer.Response{Message: "req"}, &peer.Response{}, nil, invoker)
	require.NoError(t, err)

	entries := logs.All()
	require.Len(t, entries, 3)
	require.Equal(t, "sending unary request", entries[0].Message)
	require.Equal(t, "payload", entries[0].LoggerName)
	require.Equal(t, "received unary response", entries[1].Message)
	require.Equal(t, "unary call completed", entries[2].Message)
}

func TestUnaryClientInterceptorLeveler(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	interceptor := grpclogging.UnaryClientInterceptor(
		zap.New(core),
		grpclogging.WithLeveler(grpclogging.LevelerFunc(func(context.Context, string) zapcore.Level {
			return zapcore.WarnLevel
		})),
	)

	invoker := func(context.Context, string, interface{}, interface{}, *grpc.ClientConn, ...grpc.CallOption) error {
		return nil
	}
	require.NoError(t, interceptor(context.Background(), "/gateway.Gateway/Submit", nil, nil, nil, invoker))
	require.Len(t, logs.All(), 1)
	require.Equal(t, zapcore.WarnLevel, logs.All()[0].Level)
}

func TestUnaryClientInterceptorDefaultLevel(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	interceptor := grpclogging.UnaryClientInterceptor(zap.New(core))

	invoker := func(context.Context, string, interface{}, interface{}, *grpc.ClientConn, ...grpc.CallOption) error {
		return nil
	}
	require.NoError(t, interceptor(context.Background(), "/gateway.Gateway/Submit", nil, nil, nil, invoker))
	require.Empty(t, logs.All())
}

/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package grpcmetrics_test

import (
	"context"
	"testing"

	"github.com/certledger/ledgergw/common/grpcmetrics"
	"github.com/hyperledger/fabric-lib-go/common/metrics/metricsfakes"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func newFakeMetrics() (*grpcmetrics.UnaryMetrics, *metricsfakes.Counter, *metricsfakes.Counter, *metricsfakes.Histogram) {
	sent := &metricsfakes.Counter{}
	sent.WithReturns(sent)
	completed := &metricsfakes.Counter{}
	completed.WithReturns(completed)
	duration := &metricsfakes.Histogram{}
	duration.WithReturns(duration)
	return &grpcmetrics.UnaryMetrics{
		RequestDuration:   duration,
		RequestsSent:      sent,
		RequestsCompleted: completed,
	}, sent, completed, duration
}

func TestUnaryClientInterceptor(t *testing.T) {
	um, sent, completed, duration := newFakeMetrics()
	interceptor := grpcmetrics.UnaryClientInterceptor(um)

	var invoked string
	invoker := func(ctx context.Context, method string, req, reply interface{}, cc *grpc.ClientConn, opts ...grpc.CallOption) error {
		invoked = method
		return nil
	}
	err := interceptor(context.Background(), "/gateway.Gateway/Evaluate", "req", "reply", nil, invoker)
	require.NoError(t, err)
	require.Equal(t, "/gateway.Gateway/Evaluate", invoked)

	require.Equal(t, 1, sent.WithCallCount())
	require.Equal(t, []string{"service", "gateway_Gateway", "method", "Evaluate"}, sent.WithArgsForCall(0))
	require.Equal(t, float64(1), sent.AddArgsForCall(0))

	require.Equal(t, []string{"service", "gateway_Gateway", "method", "Evaluate", "code", "OK"}, completed.WithArgsForCall(0))
	require.Equal(t, 1, completed.AddCallCount())
	require.Equal(t, []string{"service", "gateway_Gateway", "method", "Evaluate", "code", "OK"}, duration.WithArgsForCall(0))
	require.Equal(t, 1, duration.ObserveCallCount())
}

func TestUnaryClientInterceptorError(t *testing.T) {
	um, _, completed, duration := newFakeMetrics()
	interceptor := grpcmetrics.UnaryClientInterceptor(um)

	invoker := func(ctx context.Context, method string, req, reply interface{}, cc *grpc.ClientConn, opts ...grpc.CallOption) error {
		return status.Error(codes.Unavailable, "peer down")
	}
	err := interceptor(context.Background(), "/gateway.Gateway/Submit", "req", "reply", nil, invoker)
	require.Equal(t, codes.Unavailable, status.Code(err))

	require.Equal(t, []string{"service", "gateway_Gateway", "method", "Submit", "code", "Unavailable"}, completed.WithArgsForCall(0))
	require.Equal(t, []string{"service", "gateway_Gateway", "method", "Submit", "code", "Unavailable"}, duration.WithArgsForCall(0))
}

func TestUnaryClientInterceptorMalformedMethod(t *testing.T) {
	um, sent, _, _ := newFakeMetrics()
	interceptor := grpcmetrics.UnaryClientInterceptor(um)

	invoker := func(context.Context, string, interface{}, interface{}, *grpc.ClientConn, ...grpc.CallOption) error {
		return nil
	}
	require.NoError(t, interceptor(context.Background(), "Evaluate", nil, nil, nil, invoker))
	require.Equal(t, []string{"service", "unknown", "method", "unknown"}, sent.WithArgsForCall(0))
}

func TestNewUnaryMetrics(t *testing.T) {
	provider := &metricsfakes.Provider{}
	provider.NewHistogramReturns(&metricsfakes.Histogram{})
	provider.NewCounterReturns(&metricsfakes.Counter{})

	um := grpcmetrics.NewUnaryMetrics(provider)
	require.NotNil(t, um.RequestDuration)
	require.NotNil(t, um.RequestsSent)
	require.NotNil(t, um.RequestsCompleted)
	require.Equal(t, 1, provider.NewHistogramCallCount())
	require.Equal(t, 2, provider.NewCounterCallCount())
	require.Equal(t, "requests_sent", provider.NewCounterArgsForCall(0).Name)
	require.Equal(t, "requests_completed", provider.NewCounterArgsForCall(1).Name)
}

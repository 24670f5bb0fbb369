/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package grpcmetrics

import (
	"context"
	"strings"
	"time"

	"github.com/hyperledger/fabric-lib-go/common/metrics"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

var (
	requestDurationOpts = metrics.HistogramOpts{
		Namespace:    "ledgergw",
		Subsystem:    "grpc_client",
		Name:         "request_duration",
		Help:         "The time to complete a unary gateway call.",
		Buckets:      []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		LabelNames:   []string{"service", "method", "code"},
		StatsdFormat: "%{#fqname}.%{service}.%{method}.%{code}",
	}
	requestsSentOpts = metrics.CounterOpts{
		Namespace:    "ledgergw",
		Subsystem:    "grpc_client",
		Name:         "requests_sent",
		Help:         "The number of unary gateway calls started.",
		LabelNames:   []string{"service", "method"},
		StatsdFormat: "%{#fqname}.%{service}.%{method}",
	}
	requestsCompletedOpts = metrics.CounterOpts{
		Namespace:    "ledgergw",
		Subsystem:    "grpc_client",
		Name:         "requests_completed",
		Help:         "The number of unary gateway calls completed.",
		LabelNames:   []string{"service", "method", "code"},
		StatsdFormat: "%{#fqname}.%{service}.%{method}.%{code}",
	}
)

type UnaryMetrics struct {
	RequestDuration   metrics.Histogram
	RequestsSent      metrics.Counter
	RequestsCompleted metrics.Counter
}

func NewUnaryMetrics(p metrics.Provider) *UnaryMetrics {
	return &UnaryMetrics{
		RequestDuration:   p.NewHistogram(requestDurationOpts),
		RequestsSent:      p.NewCounter(requestsSentOpts),
		RequestsCompleted: p.NewCounter(requestsCompletedOpts),
	}
}

// UnaryClientInterceptor records the number and duration of outgoing unary
// calls, labeled with the gRPC status code of the reply.
func UnaryClientInterceptor(um *UnaryMetrics) grpc.UnaryClientInterceptor {
	return func(ctx context.Context, fullMethod string, req, reply interface{}, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		service, method := serviceMethod(fullMethod)
		um.RequestsSent.With("service", service, "method", method).Add(1)

		startTime := time.Now()
		err := invoker(ctx, fullMethod, req, reply, cc, opts...)
		st, _ := status.FromError(err)
		duration := time.Since(startTime)

		um.RequestDuration.With(
			"service", service, "method", method, "code", st.Code().String(),
		).Observe(duration.Seconds())
		um.RequestsCompleted.With("service", service, "method", method, "code", st.Code().String()).Add(1)

		return err
	}
}

func serviceMethod(fullMethod string) (service, method string) {
	normalizedMethod := strings.ReplaceAll(fullMethod, ".", "_")
	parts := strings.Split(normalizedMethod, "/")
	if len(parts) != 3 {
		return "unknown", "unknown"
	}
	return parts[1], parts[2]
}

/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package grpclogging

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

// Leveler returns a zap level to use when logging from a grpc interceptor.
type Leveler interface {
	Level(ctx context.Context, fullMethod string) zapcore.Level
}

type LevelerFunc func(ctx context.Context, fullMethod string) zapcore.Level

func (l LevelerFunc) Level(ctx context.Context, fullMethod string) zapcore.Level {
	return l(ctx, fullMethod)
}

// DefaultPayloadLevel is default level to use when logging payloads
const DefaultPayloadLevel = zapcore.Level(zapcore.DebugLevel - 1)

type options struct {
	Leveler
	PayloadLeveler Leveler
}

type Option func(o *options)

func WithLeveler(l Leveler) Option {
	return func(o *options) { o.Leveler = l }
}

func WithPayloadLeveler(l Leveler) Option {
	return func(o *options) { o.PayloadLeveler = l }
}

func applyOptions(opts ...Option) *options {
	o := &options{
		Leveler:        LevelerFunc(func(context.Context, string) zapcore.Level { return zapcore.DebugLevel }),
		PayloadLeveler: LevelerFunc(func(context.Context, string) zapcore.Level { return DefaultPayloadLevel }),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// UnaryClientInterceptor logs every outgoing unary call once it completes.
// Request and reply messages are logged at the payload level.
func UnaryClientInterceptor(logger *zap.Logger, opts ...Option) grpc.UnaryClientInterceptor {
	o := applyOptions(opts...)

	return func(ctx context.Context, fullMethod string, req, reply interface{}, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, callOpts ...grpc.CallOption) error {
		startTime := time.Now()
		logger := logger.With(getFields(ctx, cc, fullMethod)...)

		payloadLogger := logger.Named("payload")
		payloadLevel := o.PayloadLeveler.Level(ctx, fullMethod)
		if ce := payloadLogger.Check(payloadLevel, "sending unary request"); ce != nil {
			ce.Write(ProtoMessage("message", req))
		}

		err := invoker(ctx, fullMethod, req, reply, cc, callOpts...)

		if ce := payloadLogger.Check(payloadLevel, "received unary response"); ce != nil && err == nil {
			ce.Write(ProtoMessage("message", reply))
		}

		if ce := logger.Check(o.Level(ctx, fullMethod), "unary call completed"); ce != nil {
			st, _ := status.FromError(err)
			ce.Write(
				Error(err),
				zap.Stringer("grpc.code", st.Code()),
				zap.Duration("grpc.call_duration", time.Since(startTime)),
			)
		}

		return err
	}
}

func getFields(ctx context.Context, cc *grpc.ClientConn, fullMethod string) []zapcore.Field {
	var fields []zap.Field
	if parts := strings.Split(fullMethod, "/"); len(parts) == 3 {
		fields = append(fields, zap.String("grpc.service", parts[1]), zap.String("grpc.method", parts[2]))
	}
	if deadline, ok := ctx.Deadline(); ok {
		fields = append(fields, zap.Time("grpc.request_deadline", deadline))
	}
	if cc != nil {
		fields = append(fields, zap.String("grpc.target", cc.Target()))
	}
	return fields
}

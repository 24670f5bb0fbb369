/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package grpclogging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
)

type protoMarshaler struct {
	message proto.Message
}

func (m *protoMarshaler) MarshalJSON() ([]byte, error) {
	out, err := protojson.Marshal(m.message)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ProtoMessage logs proto messages as JSON and anything else as-is.
func ProtoMessage(key string, val interface{}) zapcore.Field {
	if pm, ok := val.(proto.Message); ok && pm.ProtoReflect().IsValid() {
		return zap.Reflect(key, &protoMarshaler{message: pm})
	}
	return zap.Any(key, val)
}

func Error(err error) zapcore.Field {
	if err == nil {
		return zap.Skip()
	}

	// pkg/errors values implement fmt.Formatter; hide it so zap does not
	// attach an errorVerbose stack to gateway failures.
	return zap.Error(struct{ error }{err})
}

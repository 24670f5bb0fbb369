/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package session

import (
	"context"
	"fmt"
	"strings"

	"github.com/certledger/ledgergw/protoutil"
	"github.com/golang/protobuf/proto"
	gp "github.com/hyperledger/fabric-protos-go/gateway"
	"github.com/hyperledger/fabric-protos-go/peer"
	"github.com/pkg/errors"
	"google.golang.org/grpc/status"
)

// ErrorDetail is the outcome reported by one peer or orderer.
type ErrorDetail struct {
	Address string
	MSPID   string
	Message string
}

// TransactionError reports a contract rejection or a failure while
// evaluating, endorsing, submitting or committing a transaction.
type TransactionError struct {
	Function string
	TxID     string
	Message  string
	Details  []ErrorDetail
	Cause    error
}

func (e *TransactionError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "transaction %s (%s) failed: %s", e.Function, e.TxID, e.Message)
	for _, d := range e.Details {
		fmt.Fprintf(&b, "; %s (%s): %s", d.Address, d.MSPID, d.Message)
	}
	return b.String()
}

func (e *TransactionError) Unwrap() error { return e.Cause }

func newTransactionError(fn, txID string, err error) *TransactionError {
	te := &TransactionError{Function: fn, TxID: txID, Message: err.Error(), Cause: err}
	if st, ok := status.FromError(err); ok {
		te.Message = st.Message()
		for _, detail := range st.Details() {
			if ed, ok := detail.(*gp.ErrorDetail); ok {
				te.Details = append(te.Details, ErrorDetail{
					Address: ed.Address,
					MSPID:   ed.MspId,
					Message: ed.Message,
				})
			}
		}
	}
	return te
}

type proposal struct {
	txID   string
	signed *peer.SignedProposal
}

func (s *Session) newProposal(fn string, args []string) (*proposal, error) {
	creator, err := s.signer.Serialize()
	if err != nil {
		return nil, errors.WithMessage(err, "error serializing identity")
	}
	prop, txID, err := protoutil.CreateInvocationProposal(s.Channel, s.Contract, fn, args, creator)
	if err != nil {
		return nil, err
	}
	signed, err := protoutil.GetSignedProposal(prop, s.signer)
	if err != nil {
		return nil, errors.WithMessage(err, "error signing proposal")
	}
	return &proposal{txID: txID, signed: signed}, nil
}

// Evaluate runs fn read only on the gateway peer and returns the contract
// result. args are passed positionally.
func (s *Session) Evaluate(ctx context.Context, fn string, args []string) ([]byte, error) {
	p, err := s.newProposal(fn, args)
	if err != nil {
		return nil, &TransactionError{Function: fn, Message: err.Error(), Cause: err}
	}

	resp, err := s.conn.Evaluate(ctx, &gp.EvaluateRequest{
		TransactionId:       p.txID,
		ChannelId:           s.Channel,
		ProposedTransaction: p.signed,
		TargetOrganizations: s.orgs,
	})
	if err != nil {
		return nil, newTransactionError(fn, p.txID, err)
	}
	result := resp.GetResult()
	if result == nil {
		return nil, &TransactionError{Function: fn, TxID: p.txID, Message: "evaluate response has no result"}
	}
	if result.Status < 200 || result.Status >= 400 {
		return nil, &TransactionError{Function: fn, TxID: p.txID, Message: result.Message}
	}
	logger.Debugw("evaluated transaction", "function", fn, "txID", p.txID)
	return result.Payload, nil
}

// Submit endorses fn, sends the signed transaction for ordering and waits
// for its commit status. It returns the contract result of the
// endorsement.
func (s *Session) Submit(ctx context.Context, fn string, args []string) ([]byte, error) {
	p, err := s.newProposal(fn, args)
	if err != nil {
		return nil, &TransactionError{Function: fn, Message: err.Error(), Cause: err}
	}

	endorsed, err := s.conn.Endorse(ctx, &gp.EndorseRequest{
		TransactionId:          p.txID,
		ChannelId:              s.Channel,
		ProposedTransaction:    p.signed,
		EndorsingOrganizations: s.orgs,
	})
	if err != nil {
		return nil, newTransactionError(fn, p.txID, err)
	}
	env := endorsed.GetPreparedTransaction()
	if env == nil {
		return nil, &TransactionError{Function: fn, TxID: p.txID, Message: "endorse response has no prepared transaction"}
	}
	action, err := protoutil.GetActionFromEnvelopeMsg(env)
	if err != nil {
		return nil, &TransactionError{Function: fn, TxID: p.txID, Message: err.Error(), Cause: err}
	}
	if err := protoutil.SignEnvelope(env, s.signer); err != nil {
		return nil, &TransactionError{Function: fn, TxID: p.txID, Message: err.Error(), Cause: err}
	}

	if _, err := s.conn.Submit(ctx, &gp.SubmitRequest{
		TransactionId:       p.txID,
		ChannelId:           s.Channel,
		PreparedTransaction: env,
	}); err != nil {
		return nil, newTransactionError(fn, p.txID, err)
	}

	code, err := s.commitStatus(ctx, p.txID)
	if err != nil {
		return nil, newTransactionError(fn, p.txID, err)
	}
	if code != peer.TxValidationCode_VALID {
		return nil, &TransactionError{
			Function: fn,
			TxID:     p.txID,
			Message:  fmt.Sprintf("transaction committed with status code %d (%s)", int32(code), code),
		}
	}
	logger.Debugw("submitted transaction", "function", fn, "txID", p.txID)
	return action.GetResponse().GetPayload(), nil
}

func (s *Session) commitStatus(ctx context.Context, txID string) (peer.TxValidationCode, error) {
	creator, err := s.signer.Serialize()
	if err != nil {
		return 0, err
	}
	req, err := proto.Marshal(&gp.CommitStatusRequest{
		TransactionId: txID,
		ChannelId:     s.Channel,
		Identity:      creator,
	})
	if err != nil {
		return 0, errors.Wrap(err, "error marshaling commit status request")
	}
	sig, err := s.signer.Sign(req)
	if err != nil {
		return 0, errors.WithMessage(err, "error signing commit status request")
	}
	resp, err := s.conn.CommitStatus(ctx, &gp.SignedCommitStatusRequest{Request: req, Signature: sig})
	if err != nil {
		return 0, err
	}
	return resp.GetResult(), nil
}

/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package wallet

import (
	"context"

	"github.com/certledger/ledgergw/common/leveldbhelper"
	"github.com/pkg/errors"
)

// LevelDBWallet keeps identities in a goleveldb database, one key partition
// per organization.
type LevelDBWallet struct {
	db *leveldbhelper.DB
}

// NewLevelDBWallet opens or creates a wallet at path.
func NewLevelDBWallet(path string) (*LevelDBWallet, error) {
	if path == "" {
		return nil, errors.New("wallet path is required")
	}
	db := leveldbhelper.CreateDB(&leveldbhelper.Conf{DBPath: path})
	if err := db.Open(); err != nil {
		return nil, errors.WithMessage(err, "failed opening wallet")
	}
	return &LevelDBWallet{db: db}, nil
}

func (w *LevelDBWallet) Exists(ctx context.Context, org, label string) bool {
	if err := ctx.Err(); err != nil {
		return lookupFailed(org, label, err)
	}
	if err := validateKey(org, label); err != nil {
		return lookupFailed(org, label, err)
	}
	ok, err := w.db.Partition(org).Has([]byte(label))
	if err != nil {
		return lookupFailed(org, label, err)
	}
	return ok
}

func (w *LevelDBWallet) Put(ctx context.Context, id *Identity) error {
	if err := validateIdentity(id); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	raw, err := encodeIdentity(id)
	if err != nil {
		return errors.Wrap(err, "error encoding identity")
	}
	written, err := w.db.Partition(id.Organization).PutIfAbsent([]byte(id.Label), raw)
	if err != nil {
		return errors.WithMessagef(err, "failed storing identity %s/%s", id.Organization, id.Label)
	}
	if !written {
		return ErrIdentityExists
	}
	logger.Debugw("stored identity", "organization", id.Organization, "label", id.Label)
	return nil
}

func (w *LevelDBWallet) Get(ctx context.Context, org, label string) (*Identity, error) {
	if err := validateKey(org, label); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw, err := w.db.Partition(org).Get([]byte(label))
	if err != nil {
		return nil, errors.WithMessagef(err, "failed reading identity %s/%s", org, label)
	}
	if raw == nil {
		return nil, ErrIdentityNotFound
	}
	return decodeIdentity(org, label, raw)
}

// Labels lists the labels stored for an organization.
func (w *LevelDBWallet) Labels(org string) ([]string, error) {
	keys, err := w.db.Partition(org).Keys()
	if err != nil {
		return nil, err
	}
	labels := make([]string, 0, len(keys))
	for _, k := range keys {
		labels = append(labels, string(k))
	}
	return labels, nil
}

func (w *LevelDBWallet) Close() error {
	w.db.Close()
	return nil
}

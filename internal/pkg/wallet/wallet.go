/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package wallet stores X.509 identities partitioned by organization.
//
// Identities are append only: a label is written once and never replaced.
package wallet

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/hyperledger/fabric-lib-go/common/flogging"
	"github.com/pkg/errors"
)

var logger = flogging.MustGetLogger("wallet")

var (
	// ErrIdentityNotFound is returned when no identity is stored under a label.
	ErrIdentityNotFound = errors.New("identity not found")
	// ErrIdentityExists is returned when storing a label that is already taken.
	ErrIdentityExists = errors.New("identity already exists")
)

const (
	documentVersion = 1
	x509Type        = "X.509"
)

// Identity is an enrolled X.509 identity.
type Identity struct {
	Organization string
	Label        string
	MSPID        string
	// Certificate is the PEM encoded enrollment certificate.
	Certificate []byte
	// PrivateKey is the PEM encoded PKCS#8 private key.
	PrivateKey []byte
}

// Wallet is durable identity storage.
type Wallet interface {
	// Exists reports whether an identity is stored. Storage failures are
	// logged and reported as false.
	Exists(ctx context.Context, org, label string) bool
	// Put stores a new identity. It fails with ErrIdentityExists when the
	// label is already present in the organization.
	Put(ctx context.Context, id *Identity) error
	// Get returns the identity or ErrIdentityNotFound.
	Get(ctx context.Context, org, label string) (*Identity, error)
	Close() error
}

// Lister is implemented by wallets that can enumerate the labels of an
// organization.
type Lister interface {
	Labels(org string) ([]string, error)
}

// Config selects and configures a wallet backend.
type Config struct {
	// Type is leveldb or sql.
	Type string
	// Path is the leveldb directory.
	Path string
	SQL  SQLConfig
}

// SQLConfig configures the sql backend.
type SQLConfig struct {
	// Driver is sqlite or postgres.
	Driver       string
	DataSource   string
	TablePrefix  string
	MaxOpenConns int
}

// Open creates the configured wallet.
func Open(cfg Config) (Wallet, error) {
	switch strings.ToLower(cfg.Type) {
	case "", "leveldb":
		return NewLevelDBWallet(cfg.Path)
	case "sql":
		return OpenSQLWallet(cfg.SQL)
	default:
		return nil, errors.Errorf("unknown wallet type %q", cfg.Type)
	}
}

type document struct {
	Version     int         `json:"version"`
	MSPID       string      `json:"mspId"`
	Type        string      `json:"type"`
	Credentials credentials `json:"credentials"`
}

type credentials struct {
	Certificate string `json:"certificate"`
	PrivateKey  string `json:"privateKey"`
}

func encodeIdentity(id *Identity) ([]byte, error) {
	return json.Marshal(&document{
		Version: documentVersion,
		MSPID:   id.MSPID,
		Type:    x509Type,
		Credentials: credentials{
			Certificate: string(id.Certificate),
			PrivateKey:  string(id.PrivateKey),
		},
	})
}

func decodeIdentity(org, label string, raw []byte) (*Identity, error) {
	doc := &document{}
	if err := json.Unmarshal(raw, doc); err != nil {
		return nil, errors.Wrapf(err, "error decoding identity %s/%s", org, label)
	}
	if doc.Type != x509Type {
		return nil, errors.Errorf("identity %s/%s has unsupported type %q", org, label, doc.Type)
	}
	return &Identity{
		Organization: org,
		Label:        label,
		MSPID:        doc.MSPID,
		Certificate:  []byte(doc.Credentials.Certificate),
		PrivateKey:   []byte(doc.Credentials.PrivateKey),
	}, nil
}

func validateKey(org, label string) error {
	if org == "" {
		return errors.New("organization is required")
	}
	if label == "" {
		return errors.New("label is required")
	}
	if strings.ContainsRune(org, 0) || strings.ContainsRune(label, 0) {
		return errors.New("organization and label must not contain NUL")
	}
	return nil
}

func validateIdentity(id *Identity) error {
	if id == nil {
		return errors.New("identity is required")
	}
	if err := validateKey(id.Organization, id.Label); err != nil {
		return err
	}
	switch {
	case id.MSPID == "":
		return errors.New("msp id is required")
	case len(id.Certificate) == 0:
		return errors.New("certificate is required")
	case len(id.PrivateKey) == 0:
		return errors.New("private key is required")
	}
	return nil
}

func lookupFailed(org, label string, err error) bool {
	logger.Warnw("wallet lookup failed", "organization", org, "label", label, "error", err)
	return false
}

/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package ca is a client for the Fabric CA REST API.
package ca

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/certledger/ledgergw/internal/pkg/comm"
	"github.com/certledger/ledgergw/internal/pkg/identity"
	"github.com/certledger/ledgergw/internal/pkg/profile"
	"github.com/hyperledger/fabric-lib-go/common/flogging"
	"github.com/pkg/errors"
)

var logger = flogging.MustGetLogger("ca")

const (
	enrollPath   = "/api/v1/enroll"
	registerPath = "/api/v1/register"
)

// Config locates one Fabric CA server.
type Config struct {
	URL                string
	CAName             string
	RootCerts          [][]byte
	InsecureSkipVerify bool
}

// ConfigFromProfile converts a connection profile CA entry.
func ConfigFromProfile(ep profile.CAEndpoint) Config {
	return Config{
		URL:                ep.URL,
		CAName:             ep.CAName,
		RootCerts:          ep.RootCerts,
		InsecureSkipVerify: ep.InsecureSkipVerify,
	}
}

// Registrar is an enrolled identity allowed to register new identities.
type Registrar interface {
	identity.CertificateSigner
}

// Client talks to a single CA.
type Client struct {
	baseURL    string
	caName     string
	httpClient *http.Client
}

// NewClient builds a client. TLS is used when the URL scheme is https.
// Requests carry no timeout of their own; the caller's context bounds them.
func NewClient(cfg Config) (*Client, error) {
	if cfg.URL == "" {
		return nil, errors.New("certificate authority url is required")
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if strings.HasPrefix(cfg.URL, "https://") {
		tlsConfig := &tls.Config{MinVersion: tls.VersionTLS12}
		if cfg.InsecureSkipVerify {
			tlsConfig.InsecureSkipVerify = true
		}
		if len(cfg.RootCerts) > 0 {
			tlsConfig.RootCAs = x509.NewCertPool()
			for _, pem := range cfg.RootCerts {
				if err := comm.AddPemToCertPool(pem, tlsConfig.RootCAs); err != nil {
					return nil, errors.WithMessage(err, "error adding certificate authority root")
				}
			}
		}
		transport.TLSClientConfig = tlsConfig
	}
	return &Client{
		baseURL:    strings.TrimSuffix(cfg.URL, "/"),
		caName:     cfg.CAName,
		httpClient: &http.Client{Transport: transport},
	}, nil
}

// ServerError is an error reported by the CA in its response envelope.
type ServerError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e ServerError) Error() string {
	return fmt.Sprintf("%d: %s", e.Code, e.Message)
}

type response struct {
	Success  bool            `json:"success"`
	Result   json.RawMessage `json:"result"`
	Errors   []ServerError   `json:"errors"`
	Messages []ServerError   `json:"messages"`
}

// authorizer sets the Authorization header of a request with its body.
type authorizer func(req *http.Request, body []byte) error

func (c *Client) post(ctx context.Context, path string, payload interface{}, auth authorizer, result interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrap(err, "error marshaling request")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "error creating request")
	}
	req.Header.Set("Content-Type", "application/json")
	if err := auth(req, body); err != nil {
		return err
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrapf(err, "POST %s failed", path)
	}
	defer resp.Body.Close()
	logger.Debugw("certificate authority request", "path", path, "status", resp.StatusCode, "duration", time.Since(start))

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrapf(err, "error reading %s response", path)
	}
	env := &response{}
	if err := json.Unmarshal(raw, env); err != nil {
		return errors.Wrapf(err, "error decoding %s response with status %d", path, resp.StatusCode)
	}
	if !env.Success || resp.StatusCode >= http.StatusBadRequest {
		if len(env.Errors) > 0 {
			return env.Errors[0]
		}
		return errors.Errorf("%s failed with status %d", path, resp.StatusCode)
	}
	if err := json.Unmarshal(env.Result, result); err != nil {
		return errors.Wrapf(err, "error decoding %s result", path)
	}
	return nil
}

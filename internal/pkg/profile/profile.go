/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package profile loads Fabric common connection profiles.
//
// JSON and YAML profiles are both read with the YAML decoder, which accepts
// JSON documents unchanged.
package profile

import (
	"bytes"
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// Profile is a connection profile for one client organization.
type Profile struct {
	Name                   string                        `yaml:"name"`
	Version                string                        `yaml:"version"`
	Client                 ClientConfig                  `yaml:"client"`
	Organizations          map[string]OrganizationConfig `yaml:"organizations"`
	Peers                  map[string]PeerConfig         `yaml:"peers"`
	CertificateAuthorities map[string]CAConfig           `yaml:"certificateAuthorities"`

	// dir resolves relative tlsCACerts paths.
	dir string
}

// ClientConfig names the organization the client acts for and, for peers
// that require mutual TLS, the client TLS key pair.
type ClientConfig struct {
	Organization string         `yaml:"organization"`
	TLSCerts     ClientTLSCerts `yaml:"tlsCerts"`
}

// ClientTLSCerts is the client.tlsCerts section of a profile.
type ClientTLSCerts struct {
	Client struct {
		Key  TLSConfig `yaml:"key"`
		Cert TLSConfig `yaml:"cert"`
	} `yaml:"client"`
}

// OrganizationConfig describes one organization of the network.
type OrganizationConfig struct {
	MSPID                  string   `yaml:"mspid"`
	Peers                  []string `yaml:"peers"`
	CertificateAuthorities []string `yaml:"certificateAuthorities"`
}

// PeerConfig describes how to reach a peer.
type PeerConfig struct {
	URL         string                 `yaml:"url"`
	TLSCACerts  TLSConfig              `yaml:"tlsCACerts"`
	GRPCOptions map[string]interface{} `yaml:"grpcOptions"`
}

// CAConfig describes how to reach a Fabric CA server.
type CAConfig struct {
	URL         string      `yaml:"url"`
	CAName      string      `yaml:"caName"`
	TLSCACerts  TLSConfig   `yaml:"tlsCACerts"`
	HTTPOptions HTTPOptions `yaml:"httpOptions"`
}

// HTTPOptions holds the CA client HTTP settings.
type HTTPOptions struct {
	Verify *bool `yaml:"verify"`
}

// TLSConfig carries trusted certificates inline or by file.
type TLSConfig struct {
	Path string `yaml:"path"`
	PEM  PEMs   `yaml:"pem"`
}

// PEMs accepts either a single PEM string or a list of them.
type PEMs []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (p *PEMs) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var single string
	if err := unmarshal(&single); err == nil {
		if single != "" {
			*p = PEMs{single}
		}
		return nil
	}
	var list []string
	if err := unmarshal(&list); err != nil {
		return errors.New("pem must be a string or a list of strings")
	}
	*p = list
	return nil
}

// Endpoint is a resolved gRPC peer address.
type Endpoint struct {
	Name               string
	Address            string
	TLS                bool
	ServerNameOverride string
	RootCerts          [][]byte
	// ClientCert and ClientKey are set when the profile carries a client TLS
	// key pair; the peer connection then uses mutual TLS.
	ClientCert []byte
	ClientKey  []byte
}

// CAEndpoint is a resolved Fabric CA server.
type CAEndpoint struct {
	Name               string
	URL                string
	CAName             string
	RootCerts          [][]byte
	InsecureSkipVerify bool
}

// Load reads a connection profile from path.
func Load(path string) (*Profile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "error reading connection profile %s", path)
	}
	p, err := Parse(raw)
	if err != nil {
		return nil, errors.WithMessagef(err, "error parsing connection profile %s", path)
	}
	p.dir = filepath.Dir(path)
	return p, nil
}

// Parse decodes a JSON or YAML connection profile. Relative certificate
// paths are resolved against the working directory.
func Parse(raw []byte) (*Profile, error) {
	p := &Profile{}
	if err := yaml.Unmarshal(raw, p); err != nil {
		return nil, errors.Wrap(err, "error unmarshalling connection profile")
	}
	if len(p.Organizations) == 0 {
		return nil, errors.New("connection profile defines no organizations")
	}
	return p, nil
}

// ClientOrganization returns the organization named by client.organization.
func (p *Profile) ClientOrganization() (string, OrganizationConfig, error) {
	name := p.Client.Organization
	if name == "" {
		return "", OrganizationConfig{}, errors.New("connection profile has no client organization")
	}
	org, ok := p.Organizations[name]
	if !ok {
		return "", OrganizationConfig{}, errors.Errorf("client organization %s is not defined", name)
	}
	return name, org, nil
}

// GatewayPeer returns the first peer of the client organization. When
// asLocalhost is set the peer host is replaced with localhost while the TLS
// server name still matches the peer certificate.
func (p *Profile) GatewayPeer(asLocalhost bool) (Endpoint, error) {
	orgName, org, err := p.ClientOrganization()
	if err != nil {
		return Endpoint{}, err
	}
	if len(org.Peers) == 0 {
		return Endpoint{}, errors.Errorf("organization %s has no peers", orgName)
	}
	name := org.Peers[0]
	peer, ok := p.Peers[name]
	if !ok {
		return Endpoint{}, errors.Errorf("peer '%s' doesn't have associated peer config", name)
	}

	u, err := parseURL(peer.URL)
	if err != nil {
		return Endpoint{}, errors.WithMessagef(err, "invalid url for peer %s", name)
	}
	ep := Endpoint{
		Name:               name,
		Address:            u.Host,
		TLS:                u.Scheme == "grpcs",
		ServerNameOverride: grpcOption(peer.GRPCOptions, "ssl-target-name-override"),
	}
	if ep.TLS {
		if ep.RootCerts, err = p.certs(peer.TLSCACerts); err != nil {
			return Endpoint{}, errors.WithMessagef(err, "failed loading tls roots for peer %s", name)
		}
		if ep.ClientCert, ep.ClientKey, err = p.clientKeyPair(); err != nil {
			return Endpoint{}, err
		}
	}
	if asLocalhost {
		ep = ep.AsLocalhost()
	}
	return ep, nil
}

// AsLocalhost rewrites the endpoint host to localhost. The original host
// becomes the TLS server name unless an override is already present.
func (e Endpoint) AsLocalhost() Endpoint {
	host, port, err := net.SplitHostPort(e.Address)
	if err != nil {
		return e
	}
	if e.ServerNameOverride == "" && host != "localhost" {
		e.ServerNameOverride = host
	}
	e.Address = net.JoinHostPort("localhost", port)
	return e
}

// CertificateAuthority returns the first CA of the client organization.
func (p *Profile) CertificateAuthority(asLocalhost bool) (CAEndpoint, error) {
	orgName, org, err := p.ClientOrganization()
	if err != nil {
		return CAEndpoint{}, err
	}
	names := org.CertificateAuthorities
	if len(names) == 0 {
		for n := range p.CertificateAuthorities {
			names = append(names, n)
		}
		sort.Strings(names)
	}
	if len(names) == 0 {
		return CAEndpoint{}, errors.Errorf("organization %s has no certificate authorities", orgName)
	}
	name := names[0]
	caCfg, ok := p.CertificateAuthorities[name]
	if !ok {
		return CAEndpoint{}, errors.Errorf("certificate authority '%s' is not defined", name)
	}
	u, err := parseURL(caCfg.URL)
	if err != nil {
		return CAEndpoint{}, errors.WithMessagef(err, "invalid url for certificate authority %s", name)
	}
	if asLocalhost {
		if _, port, err := net.SplitHostPort(u.Host); err == nil {
			u.Host = net.JoinHostPort("localhost", port)
		} else {
			u.Host = "localhost"
		}
	}
	ep := CAEndpoint{
		Name:   name,
		URL:    strings.TrimSuffix(u.String(), "/"),
		CAName: caCfg.CAName,
	}
	if u.Scheme == "https" {
		if caCfg.HTTPOptions.Verify != nil && !*caCfg.HTTPOptions.Verify {
			ep.InsecureSkipVerify = true
		}
		if ep.RootCerts, err = p.certs(caCfg.TLSCACerts); err != nil {
			return CAEndpoint{}, errors.WithMessagef(err, "failed loading tls roots for certificate authority %s", name)
		}
	}
	return ep, nil
}

func (p *Profile) clientKeyPair() (cert, key []byte, err error) {
	tlsCerts := p.Client.TLSCerts.Client
	certs, err := p.certs(tlsCerts.Cert)
	if err != nil {
		return nil, nil, errors.WithMessage(err, "failed loading client tls certificate")
	}
	keys, err := p.certs(tlsCerts.Key)
	if err != nil {
		return nil, nil, errors.WithMessage(err, "failed loading client tls key")
	}
	switch {
	case len(certs) == 0 && len(keys) == 0:
		return nil, nil, nil
	case len(certs) == 0 || len(keys) == 0:
		return nil, nil, errors.New("client tls certificate and key must be configured together")
	}
	return bytes.Join(certs, nil), bytes.Join(keys, nil), nil
}

func (p *Profile) certs(cfg TLSConfig) ([][]byte, error) {
	var certs [][]byte
	for _, pem := range cfg.PEM {
		certs = append(certs, []byte(pem))
	}
	if cfg.Path != "" {
		path := cfg.Path
		if !filepath.IsAbs(path) && p.dir != "" {
			path = filepath.Join(p.dir, path)
		}
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "error reading %s", path)
		}
		certs = append(certs, raw)
	}
	return certs, nil
}

func parseURL(raw string) (*url.URL, error) {
	if raw == "" {
		return nil, errors.New("url is empty")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, errors.Wrapf(err, "error parsing url %s", raw)
	}
	if u.Host == "" {
		return nil, errors.Errorf("url %s has no host", raw)
	}
	return u, nil
}

func grpcOption(opts map[string]interface{}, key string) string {
	v, ok := opts[key]
	if !ok || v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

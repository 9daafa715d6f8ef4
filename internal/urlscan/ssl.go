package urlscan

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"net"
	"time"

	"prism-lab/internal/domain/models"
)

// SSLChecker probes port 443 of a host and inspects the presented
// certificate chain.
type SSLChecker struct {
	timeout time.Duration
}

// NewSSLChecker creates a checker with the given dial timeout.
func NewSSLChecker(timeout time.Duration) *SSLChecker {
	if timeout == 0 {
		timeout = 5 * time.Second
	}
	return &SSLChecker{timeout: timeout}
}

// Check dials host:443 with full verification. Three outcomes:
//   - handshake succeeds: has_ssl and valid, with certificate metadata
//   - handshake fails on the certificate: has_ssl but not valid
//   - connection refused or timed out: no SSL endpoint at all
//
// Every outcome is a result, never an error: a failed probe degrades the
// scan rather than aborting it.
func (c *SSLChecker) Check(ctx context.Context, host string) models.SSLCheck {
	dialer := &net.Dialer{Timeout: c.timeout}
	deadline, ok := ctx.Deadline()
	if ok {
		dialer.Deadline = deadline
	}

	conn, err := tls.DialWithDialer(dialer, "tcp", net.JoinHostPort(host, "443"), &tls.Config{
		ServerName: host,
	})
	if err != nil {
		return c.classifyDialError(err)
	}
	defer conn.Close()

	state := conn.ConnectionState()
	result := models.SSLCheck{
		Status: models.CheckStatusOK,
		HasSSL: true,
		Valid:  true,
	}
	if len(state.PeerCertificates) > 0 {
		cert := state.PeerCertificates[0]
		result.Issuer = cert.Issuer.CommonName
		result.Subject = cert.Subject.CommonName
		result.ExpiresInDays = int(time.Until(cert.NotAfter).Hours() / 24)
	}
	return result
}

// classifyDialError separates "the endpoint speaks TLS but the certificate
// is bad" from "nothing answers on 443".
func (c *SSLChecker) classifyDialError(err error) models.SSLCheck {
	var certErr *tls.CertificateVerificationError
	var hostErr x509.HostnameError
	var unknownAuthErr x509.UnknownAuthorityError
	var expiredErr x509.CertificateInvalidError
	if errors.As(err, &certErr) || errors.As(err, &hostErr) ||
		errors.As(err, &unknownAuthErr) || errors.As(err, &expiredErr) {
		return models.SSLCheck{
			Status: models.CheckStatusOK,
			HasSSL: true,
			Valid:  false,
			Error:  err.Error(),
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return models.SSLCheck{
			Status: models.CheckStatusOK,
			HasSSL: false,
			Error:  "connection timed out",
		}
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return models.SSLCheck{
			Status: models.CheckStatusOK,
			HasSSL: false,
			Error:  opErr.Err.Error(),
		}
	}

	return models.SSLCheck{
		Status: models.CheckStatusUnavailable,
		Error:  err.Error(),
	}
}

package config

import (
	"flag"
	"fmt"
	"io"
	"net"
	"strconv"
)

// parseFlags reads args into a fresh config. Flags that are not given stay
// zero so other layers can fill them.
func parseFlags(args []string) (*StructuredConfig, error) {
	cfg := new(StructuredConfig)

	fs := flag.NewFlagSet("learning-platform-server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.Var(addressFlag{&cfg.Server.HTTPAddress}, "a", "HTTP listen address host:port")
	fs.Var(addressFlag{&cfg.Server.GRPCAddress}, "grpc-address", "gRPC health listen address host:port")
	fs.DurationVar(&cfg.Server.RequestTimeout, "request-timeout", 0, "per-request timeout, e.g. 30s")
	fs.Int64Var(&cfg.Server.MaxUploadSize, "max-upload-size", 0, "largest accepted multipart body in bytes")

	fs.StringVar(&cfg.Storage.DB.DSN, "d", "", "PostgreSQL DSN")

	fs.StringVar(&cfg.JSONFilePath, "c", "", "JSON config file")
	fs.StringVar(&cfg.JSONFilePath, "config", "", "JSON config file (same as -c)")

	fs.StringVar(&cfg.App.TokenSignKey, "token-sign-key", "", "JWT signing secret")
	fs.StringVar(&cfg.App.TokenIssuer, "token-issuer", "", "JWT issuer claim")
	fs.DurationVar(&cfg.App.AccessTokenDuration, "access-token-duration", 0, "access token lifetime, e.g. 15m")
	fs.DurationVar(&cfg.App.RefreshTokenDuration, "refresh-token-duration", 0, "refresh token lifetime, e.g. 168h")
	fs.StringVar(&cfg.App.EncryptionKey, "encryption-key", "", "hex AES-256 key for token subjects")
	fs.StringVar(&cfg.App.EncryptionIV, "encryption-iv", "", "hex AES IV for token subjects")
	fs.StringVar(&cfg.App.HashKey, "hash-key", "", "HMAC key for stored refresh tokens")
	fs.StringVar(&cfg.App.Environment, "environment", "", "runtime environment, DEVELOPMENT for verbose errors")

	fs.StringVar(&cfg.Adapter.FirebaseProjectID, "firebase-project-id", "", "Firebase project accepted by Google login")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}
	return cfg, nil
}

// addressFlag validates a host:port value before storing it. The host may
// be empty, "localhost" or a literal IP.
type addressFlag struct {
	dst *string
}

func (a addressFlag) String() string {
	if a.dst == nil {
		return ""
	}
	return *a.dst
}

func (a addressFlag) Set(value string) error {
	host, portText, err := net.SplitHostPort(value)
	if err != nil {
		return fmt.Errorf("need address in a form host:port: %w", err)
	}

	port, err := strconv.Atoi(portText)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("invalid port %q", portText)
	}

	if host != "" && host != "localhost" && net.ParseIP(host) == nil {
		return fmt.Errorf("invalid IP address %q", host)
	}

	*a.dst = net.JoinHostPort(host, portText)
	return nil
}

package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/copyit/internal/flagx"
)

// parseFlags overlays command-line flags on config.
//
//	-a string   gRPC bind address
//	-d string   PostgreSQL DSN
//	-s string   JWT secret
//	-t int      access token validity, minutes
//	-r int      refresh token validity, minutes
//	-u/-p       S3 access key / secret
//	-b/-g/-e    S3 bucket / region / endpoint
//	-disable-signup
func parseFlags(config *Config) {
	args := flagx.Filter(os.Args[1:],
		[]string{"-a", "-d", "-s", "-t", "-r", "-u", "-p", "-b", "-g", "-e"},
		[]string{"-disable-signup"},
	)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	accessTokenValidity := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access token validity (in minutes)")
	refreshTokenValidity := fs.Int("r", int(config.RefreshTokenValidityDuration.Minutes()), "refresh token validity (in minutes)")

	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 access key")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 secret key")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket for exports")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")
	fs.BoolVar(&config.SignUpDisabled, "disable-signup", config.SignUpDisabled, "reject new registrations")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.AccessTokenValidityDuration = time.Duration(*accessTokenValidity) * time.Minute
	config.RefreshTokenValidityDuration = time.Duration(*refreshTokenValidity) * time.Minute
}

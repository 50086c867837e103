package config

import (
	"flag"
	"os"
	"strings"
	"time"

	"github.com/mpavlovs/parkgate/internal/flagx"
)

// parseFlags populates selected gateway Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   bind address (e.g., ":8080")
//	-b string   backend API base URL
//	-o string   comma-separated CORS allow origins
//	-t int      shutdown timeout, seconds
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-b", "-o", "-t"})

	fs := flag.NewFlagSet("gateway", flag.ContinueOnError)

	fs.StringVar(&config.Addr, "a", config.Addr, "address and port to run gateway")
	fs.StringVar(&config.BackendAPIURL, "b", config.BackendAPIURL, "backend API base URL")
	origins := fs.String("o", strings.Join(config.CORSAllowOrigins, ","), "comma-separated CORS allow origins")
	shutdownTimeout := fs.Int("t", int(config.ShutdownTimeout.Seconds()), "shutdown timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	if *origins != "" {
		config.CORSAllowOrigins = strings.Split(*origins, ",")
	}
	config.ShutdownTimeout = time.Duration(*shutdownTimeout) * time.Second
}

/*
flag Package set up cli flags shared across services

Usage:

	Flags listed in this package are shared across boundaries and service-agnostic
	For service dependent flags please define in their respective package
*/

package flag

import (
	"flag"
)

const (
	APIServer      = "api_server"
	ArticleFetcher = "article_fetcher"
)

var (
	IsDevelopment bool
	ServiceName   string
)

func init() {
	flag.BoolVar(&IsDevelopment, "dev", true, "set to true if the current run is for development. default value is true")
	flag.StringVar(&ServiceName, "service", APIServer, "'api_server' or 'article_fetcher'")
}

// ParseFlags consumes the command line. Only main functions may call it;
// parsing during package init would swallow the flags other binaries
// (notably test runners) register for themselves.
func ParseFlags() {
	if !flag.Parsed() {
		flag.Parse()
	}
}

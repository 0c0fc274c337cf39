// Package config holds the run options of the check and the OID profile that
// tells the collector where each switch attribute lives.
//
// Options come from command-line flags with an environment fallback:
//
//	-H, --host       CHECK_FCSWITCH_HOST
//	-c, --community  CHECK_FCSWITCH_COMMUNITY
//	--backend        CHECK_FCSWITCH_BACKEND
//	--no-ping        CHECK_FCSWITCH_NO_PING
//	--log-format     CHECK_FCSWITCH_LOG_FORMAT
//
// There is no configuration file.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/vpbank/check_fcswitch/models"
	"github.com/vpbank/check_fcswitch/pkg/fcswitch/snmpclient"
)

// EnvPrefix is prepended to every environment variable read by LoadOptions.
const EnvPrefix = "CHECK_FCSWITCH"

// Defaults.
const (
	DefaultCommunity = "public"
	DefaultBackend   = BackendGoSNMP
	DefaultLogFormat = "text"
)

// Backend names accepted by --backend.
const (
	BackendGoSNMP  = snmpclient.BackendGoSNMP
	BackendNetSNMP = snmpclient.BackendNetSNMP
)

// Flag names shared by the CLI and LoadOptions.
const (
	FlagHost      = "host"
	FlagCommunity = "community"
	FlagVerbose   = "verbose"
	FlagBackend   = "backend"
	FlagNoPing    = "no-ping"
	FlagLogFormat = "log-format"
)

// Options is the fully-resolved configuration for a single check run.
type Options struct {
	// Host is the switch management address (name or IP). Whether it
	// resolves is left to the pre-check.
	Host string `validate:"required,snmp_host"`

	// Community is the SNMPv2c community string (default "public").
	Community string `validate:"required"`

	// Verbose enables debug tracing of every SNMP call on stderr.
	Verbose bool

	// Backend selects the SNMP adapter: "gosnmp" or "net-snmp".
	Backend string `validate:"oneof=gosnmp net-snmp"`

	// NoPing skips the ICMP reachability pre-check.
	NoPing bool

	// LogFormat is the stderr log format: "text" or "json".
	LogFormat string `validate:"oneof=text json"`
}

// Endpoint returns the SNMP endpoint described by o.
func (o Options) Endpoint() models.Endpoint {
	return models.Endpoint{Host: o.Host, Community: o.Community}
}

// RegisterFlags declares every option flag on fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.StringP(FlagHost, "H", "", "Switch hostname or IP address (required)")
	fs.StringP(FlagCommunity, "c", DefaultCommunity, "SNMPv2c community string")
	fs.BoolP(FlagVerbose, "v", false, "Trace every SNMP call and extracted value on stderr")
	fs.String(FlagBackend, DefaultBackend, "SNMP backend: gosnmp or net-snmp")
	fs.Bool(FlagNoPing, false, "Skip the ICMP reachability pre-check")
	fs.String(FlagLogFormat, DefaultLogFormat, "Log format on stderr: text or json")
}

// LoadOptions resolves options from fs and the environment. Explicitly set
// flags win over environment variables, which win over flag defaults. The
// returned Options are validated.
func LoadOptions(fs *pflag.FlagSet) (*Options, error) {
	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(fs); err != nil {
		return nil, fmt.Errorf("bind flags: %w", err)
	}

	opts := &Options{
		Host:      strings.TrimSpace(v.GetString(FlagHost)),
		Community: v.GetString(FlagCommunity),
		Verbose:   v.GetBool(FlagVerbose),
		Backend:   strings.ToLower(v.GetString(FlagBackend)),
		NoPing:    v.GetBool(FlagNoPing),
		LogFormat: strings.ToLower(v.GetString(FlagLogFormat)),
	}

	if err := Validate(opts); err != nil {
		return opts, err
	}
	return opts, nil
}

package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/koding/multiconfig"
)

const (
	ModeOneShot    = "oneshot"
	ModeContinuous = "continuous"

	AuthBasic  = "basic"
	AuthHeader = "header"

	DriverBoinc = "boinc"
	DriverRelay = "relay"
	DriverDummy = "dummy"

	EnvPrefix = "AGILE"
)

var ErrUnknownPlatform = errors.New("unable to determine platform")

type Config struct {
	BaseURL      string `default:"https://api.octopus.energy"`
	ProductsPath string `default:"v1/products"`
	ProductCode  string
	Tariff       string

	Key        string
	AuthMode   string `default:"basic"`
	AuthHeader string `default:"X-RapidAPI-Key"`

	MPAN             string
	ElecSerialNumber string

	RequestTimeout time.Duration `default:"30s"`
	RatesTTL       time.Duration `default:"12m"`
	ConsumptionTTL time.Duration `default:"3m"`

	// Mode is oneshot or continuous. Empty means the binary decides.
	Mode   string
	Settle time.Duration `default:"2s"`

	PriceThreshold float64 `default:"15"`
	Driver         string  `default:"boinc"`
	LinuxBoinc     string  `default:"/usr/bin/boinccmd"`
	MacBoinc       string  `default:"/Applications/BOINCManager.app/Contents/resources/boinccmd"`
	WinBoinc       string  `default:"C:\\Program Files\\BOINC\\boinccmd.exe"`

	RelayAddress string
	RelaySlave   int `default:"1"`
	RelayCoil    int `default:"0"`

	MetricsAddress  string `default:":8000"`
	MQTTAddress     string
	MQTTTopicPrefix string `default:"agilerun"`

	LogLevel   string `default:"info"`
	LogFile    string `default:"agilerun-%Y%m%d.log"`
	LogConsole bool   `default:"true"`
}

// Load reads the env file (if present), then tag defaults, AGILE_* environment
// variables and finally the command line flags in args.
func Load(args []string) (*Config, error) {
	envFile := os.Getenv(EnvPrefix + "_ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("error loading env file %s: %w", envFile, err)
		}
	}

	loader := &multiconfig.DefaultLoader{
		Loader: multiconfig.MultiLoader(
			&multiconfig.TagLoader{},
			&multiconfig.EnvironmentLoader{Prefix: EnvPrefix, CamelCase: true},
			&multiconfig.FlagLoader{CamelCase: true, Args: args},
		),
		Validator: multiconfig.MultiValidator(&multiconfig.RequiredValidator{}),
	}

	c := &Config{}
	if err := loader.Load(c); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) Validate() error {
	if c.ProductCode == "" || c.Tariff == "" {
		return fmt.Errorf("product code and tariff must be set")
	}
	switch c.AuthMode {
	case AuthBasic, AuthHeader:
	default:
		return fmt.Errorf("unknown auth mode %q", c.AuthMode)
	}
	switch c.Mode {
	case ModeOneShot, ModeContinuous:
	default:
		return fmt.Errorf("unknown mode %q", c.Mode)
	}
	switch c.Driver {
	case DriverBoinc, DriverDummy:
	case DriverRelay:
		if c.RelayAddress == "" {
			return fmt.Errorf("relay driver requires a relay address")
		}
	default:
		return fmt.Errorf("unknown driver %q", c.Driver)
	}
	return nil
}

// ValidateMeter checks the identifiers needed to fetch consumption.
func (c *Config) ValidateMeter() error {
	if c.MPAN == "" || c.ElecSerialNumber == "" {
		return fmt.Errorf("MPAN and electricity meter serial number must be set")
	}
	return nil
}

// BoincPath resolves the client executable for goos. Unknown platforms return
// "." together with ErrUnknownPlatform.
func (c *Config) BoincPath(goos string) (string, error) {
	paths := map[string]string{
		"linux":   c.LinuxBoinc,
		"darwin":  c.MacBoinc,
		"windows": c.WinBoinc,
	}
	p, ok := paths[goos]
	if !ok {
		return ".", fmt.Errorf("%w: %s", ErrUnknownPlatform, goos)
	}
	if p == "" {
		return ".", fmt.Errorf("no boinc executable configured for %s", goos)
	}
	return p, nil
}

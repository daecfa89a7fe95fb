package config

import (
	"fmt"
	"os"

	"github.com/mattn/go-colorable"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Will be set by go-build
var (
	Version string
	Rev     string
)

type Config struct {
	HoldingsFile string `mapstructure:"holdings"`
	OutputFile   string `mapstructure:"output"`
	Timeout      int    `mapstructure:"timeout"`
	ChromeBin    string `mapstructure:"chrome-bin"`
	Headless     bool   `mapstructure:"headless"`
	Debug        bool   `mapstructure:"debug"`
	ListSites    bool   `mapstructure:"list-sites"`
}

func Parse() *Config {
	// Set log format
	formatter := &logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "15:04:05",
	}
	logrus.SetFormatter(formatter)
	logrus.SetOutput(colorable.NewColorableStderr()) // For Windows

	showVersion := pflag.BoolP("version", "v", false, "Show version number")
	showHelp := pflag.BoolP("help", "h", false, "Show usage message")
	pflag.CommandLine.MarkHidden("help")
	pflag.StringP("holdings", "f", "holdings.csv", "Holdings file to read, "+
		"a csv of symbol,url with exactly that header")
	pflag.StringP("output", "o", "prices.csv", "Output file to write prices to, overwritten on every run")
	pflag.IntP("timeout", "t", 10, "Seconds to wait for a price element to appear on a loaded page")
	pflag.String("chrome-bin", "/snap/bin/chromium", "Path to the Chrome/Chromium binary")
	pflag.Bool("headless", true, "Run the browser headless, use --headless=false to watch the pages load")
	pflag.BoolP("debug", "d", false, "Enable debug mode")
	pflag.BoolP("list-sites", "l", false, "List supported quote sites")
	var configFile string
	pflag.StringVarP(&configFile, "config-file", "c", "", "Config file path, "+
		"by default pricecheck uses \"pricecheck.yml\" \nin current directory or $HOME as config file")
	pflag.CommandLine.SortFlags = false
	pflag.Usage = showUsageAndExit
	pflag.Parse()

	if *showHelp {
		showUsageAndExit()
	}

	if *showVersion {
		fmt.Fprintf(os.Stderr, "Version %s", Version)
		if Rev != "" {
			fmt.Fprintf(os.Stderr, ", build %s", Rev)
		}
		fmt.Fprintln(os.Stderr)
		os.Exit(0)
	}

	viper.BindPFlags(pflag.CommandLine)
	// Set configure file
	viper.SetConfigName("pricecheck") // name of config file (without extension)
	viper.AddConfigPath(".")          // path to look for the config file in
	viper.AddConfigPath("$HOME")      // optionally look for config in the HOME directory
	viper.AddConfigPath("/etc")       // and /etc
	if configFile != "" {
		viper.SetConfigFile(configFile)
	}
	err := viper.ReadInConfig() // Find and read the config file
	if err != nil {
		switch err.(type) {
		case viper.ConfigFileNotFoundError:
			// Flag defaults cover everything, a config file is optional
		default:
			logrus.Warnf("Error reading config file: %v", err)
		}
	}
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		logrus.Fatalf("Failed to parse %q, error: %s\n", viper.ConfigFileUsed(), err)
	}
	if cfg.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	}
	logrus.Debugln("Using config file:", viper.ConfigFileUsed())
	return &cfg
}

func showUsageAndExit() {
	// Print usage message and exit
	fmt.Fprintf(os.Stderr, "\nUsage: %s [Options]\n", os.Args[0])
	fmt.Fprintln(os.Stderr, "\nFetch the current price of each holding in a holdings file and save them as a csv")
	fmt.Fprintln(os.Stderr, "\nOptions:")
	pflag.PrintDefaults()
	os.Exit(0)
}

func ListSitesAndExit(sites []string) {
	fmt.Fprintln(os.Stderr, "Supported quote sites:")
	for _, name := range sites {
		fmt.Fprintf(os.Stderr, " %s\n", name)
	}
	os.Exit(0)
}

package cmd

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	logging "github.com/inconshreveable/log15"
	"github.com/mattn/go-isatty"
	"github.com/oklog/run"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/net/http2"

	"boscoin.io/tally/cmd/tally/common"
	"boscoin.io/tally/lib/auth"
	"boscoin.io/tally/lib/candidate"
	tallycommon "boscoin.io/tally/lib/common"
	"boscoin.io/tally/lib/event"
	"boscoin.io/tally/lib/metrics"
	"boscoin.io/tally/lib/network"
	"boscoin.io/tally/lib/network/api"
	"boscoin.io/tally/lib/network/jsonrpc"
	"boscoin.io/tally/lib/runtime"
	"boscoin.io/tally/lib/storage"
	"boscoin.io/tally/lib/voting"
)

const (
	defaultNetwork  string      = "http"
	defaultPort     int         = 12345
	defaultHost     string      = "0.0.0.0"
	defaultLogLevel logging.Lvl = logging.LvlInfo

	shutdownTimeout = 5 * time.Second
)

var (
	flagNetworkID string = tallycommon.GetENVValue("TALLY_NETWORK_ID", tallycommon.DefaultNetworkID)
	flagLogLevel  string = tallycommon.GetENVValue("TALLY_LOG_LEVEL", defaultLogLevel.String())
	flagLogFormat string = tallycommon.GetENVValue("TALLY_LOG_FORMAT", "")
	flagLogOutput string = tallycommon.GetENVValue("TALLY_LOG_OUTPUT", "")
	flagVerbose   bool   = tallycommon.GetENVValue("TALLY_VERBOSE", "0") == "1"
	flagBindURL   string = tallycommon.GetENVValue(
		"TALLY_BIND",
		fmt.Sprintf("%s://%s:%d", defaultNetwork, defaultHost, defaultPort),
	)
	flagStorageConfigString string
	flagTLSCertFile         string = tallycommon.GetENVValue("TALLY_TLS_CERT", "tally.crt")
	flagTLSKeyFile          string = tallycommon.GetENVValue("TALLY_TLS_KEY", "tally.key")
	flagRateLimitAPI        string = tallycommon.GetENVValue("TALLY_RATE_LIMIT_API", tallycommon.RateLimitAPI)
	flagMaxNameLength       string = tallycommon.GetENVValue("TALLY_MAX_NAME_LENGTH", strconv.Itoa(tallycommon.DefaultMaxNameLength))
	flagOpsLimit            string = tallycommon.GetENVValue("TALLY_OPERATIONS_LIMIT", strconv.Itoa(tallycommon.DefaultOperationsInTransactionLimit))
	flagHTTPCache           string = tallycommon.GetENVValue("TALLY_HTTP_CACHE", tallycommon.HTTPCacheAdapter)
	flagHTTPCacheSize       string = tallycommon.GetENVValue("TALLY_HTTP_CACHE_SIZE", strconv.Itoa(tallycommon.HTTPCachePoolSize))
	flagJSONRPCBindURL      string = tallycommon.GetENVValue("TALLY_JSONRPC_BIND", "")
	flagStrict              bool   = tallycommon.GetENVValue("TALLY_REQUIRE_REGISTERED_CANDIDATE", "0") == "1"
)

var (
	nodeCmd *cobra.Command

	conf          tallycommon.Config
	serverConfig  network.ServerConfig
	jsonrpcConfig *network.ServerConfig
	storageConfig *storage.Config
	logLevel      logging.Lvl
	logHandler    logging.Handler
	log           logging.Logger = logging.New("module", "main")
)

func init() {
	var err error

	nodeCmd = &cobra.Command{
		Use:   "node",
		Short: "Run tally node",
		Run: func(c *cobra.Command, args []string) {
			if err := parseFlagsNode(); err != nil {
				common.PrintFlagsError(c, err.flag, err.err)
			}

			if err := runNode(); err != nil {
				fmt.Fprintf(os.Stderr, "%v\n", err)
				os.Exit(1)
			}
		},
	}

	var currentDirectory string
	if currentDirectory, err = os.Getwd(); err != nil {
		common.PrintFlagsError(nodeCmd, "--storage", err)
	}
	if currentDirectory, err = filepath.Abs(currentDirectory); err != nil {
		common.PrintFlagsError(nodeCmd, "--storage", err)
	}
	flagStorageConfigString = tallycommon.GetENVValue("TALLY_STORAGE", fmt.Sprintf("file://%s/db", currentDirectory))

	nodeCmd.Flags().StringVar(&flagNetworkID, "network-id", flagNetworkID, "network id")
	nodeCmd.Flags().StringVar(&flagLogLevel, "log-level", flagLogLevel, "log level, {crit, error, warn, info, debug}")
	nodeCmd.Flags().StringVar(&flagLogFormat, "log-format", flagLogFormat, "log format, {terminal, json}; terminal if stdout is tty")
	nodeCmd.Flags().StringVar(&flagLogOutput, "log-output", flagLogOutput, "set log output file")
	nodeCmd.Flags().BoolVar(&flagVerbose, "verbose", flagVerbose, "verbose")
	nodeCmd.Flags().StringVar(&flagBindURL, "bind", flagBindURL, "bind to listen on")
	nodeCmd.Flags().StringVar(&flagStorageConfigString, "storage", flagStorageConfigString, "storage uri, {file:///<path>, memory://}")
	nodeCmd.Flags().StringVar(&flagTLSCertFile, "tls-cert", flagTLSCertFile, "tls certificate file")
	nodeCmd.Flags().StringVar(&flagTLSKeyFile, "tls-key", flagTLSKeyFile, "tls key file")
	nodeCmd.Flags().StringVar(&flagRateLimitAPI, "rate-limit-api", flagRateLimitAPI, "rate limit for the api, like '100-S'; '0-S' to disable")
	nodeCmd.Flags().StringVar(&flagMaxNameLength, "max-name-length", flagMaxNameLength, "max length of candidate name in bytes")
	nodeCmd.Flags().StringVar(&flagOpsLimit, "operations-limit", flagOpsLimit, "max operations in one transaction")
	nodeCmd.Flags().StringVar(&flagHTTPCache, "http-cache", flagHTTPCache, "receipt cache, {memory://, redis://<host:port>[,<host:port>...]}")
	nodeCmd.Flags().StringVar(&flagJSONRPCBindURL, "jsonrpc-bind", flagJSONRPCBindURL, "bind of the storage debug jsonrpc; disabled if empty")
	nodeCmd.Flags().StringVar(&flagHTTPCacheSize, "http-cache-size", flagHTTPCacheSize, "number of receipts in the http cache")
	nodeCmd.Flags().BoolVar(&flagStrict, "require-registered-candidate", flagStrict, "reject the votes for the candidates which were not added")

	rootCmd.AddCommand(nodeCmd)
}

type flagError struct {
	flag string
	err  error
}

func newFlagError(flag string, err error) *flagError {
	return &flagError{flag: flag, err: err}
}

func parsePositiveInt(s string) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if i < 1 {
		return 0, errors.New("must be greater than 0")
	}

	return i, nil
}

func parseFlagsNode() *flagError {
	var err error

	if len(flagNetworkID) < 1 {
		return newFlagError("--network-id", errors.New("--network-id must be given"))
	}

	conf = tallycommon.NewConfig([]byte(flagNetworkID))
	conf.RequireRegisteredCandidate = flagStrict

	if conf.MaxNameLength, err = parsePositiveInt(flagMaxNameLength); err != nil {
		return newFlagError("--max-name-length", err)
	}
	if conf.OpsLimit, err = parsePositiveInt(flagOpsLimit); err != nil {
		return newFlagError("--operations-limit", err)
	}
	if conf.HTTPCachePoolSize, err = parsePositiveInt(flagHTTPCacheSize); err != nil {
		return newFlagError("--http-cache-size", err)
	}
	conf.HTTPCacheAdapter = flagHTTPCache
	if conf.RateLimitRuleAPI, err = tallycommon.NewRateLimitRule(flagRateLimitAPI); err != nil {
		return newFlagError("--rate-limit-api", err)
	}

	if serverConfig, err = network.NewServerConfigFromString(bindURLWithTLS()); err != nil {
		return newFlagError("--bind", err)
	}
	if serverConfig.IsTLS() {
		if !tallycommon.IsExists(flagTLSCertFile) {
			return newFlagError("--tls-cert", fmt.Errorf("%s does not exist", flagTLSCertFile))
		}
		if !tallycommon.IsExists(flagTLSKeyFile) {
			return newFlagError("--tls-key", fmt.Errorf("%s does not exist", flagTLSKeyFile))
		}
	}

	jsonrpcConfig = nil
	if len(flagJSONRPCBindURL) > 0 {
		var c network.ServerConfig
		if c, err = network.NewServerConfigFromString(flagJSONRPCBindURL); err != nil {
			return newFlagError("--jsonrpc-bind", err)
		}
		jsonrpcConfig = &c
	}

	if storageConfig, err = storage.NewConfigFromString(flagStorageConfigString); err != nil {
		return newFlagError("--storage", err)
	}

	if logLevel, err = logging.LvlFromString(flagLogLevel); err != nil {
		return newFlagError("--log-level", err)
	}

	var formatter logging.Format
	switch flagLogFormat {
	case "terminal":
		formatter = logging.TerminalFormat()
	case "json":
		formatter = tallycommon.JsonFormatEx(false, true)
	case "":
		if isatty.IsTerminal(os.Stdout.Fd()) {
			formatter = logging.TerminalFormat()
		} else {
			formatter = tallycommon.JsonFormatEx(false, true)
		}
	default:
		return newFlagError("--log-format", fmt.Errorf("unknown log format, '%s'", flagLogFormat))
	}

	logOutput := flagLogOutput
	if len(flagLogOutput) < 1 {
		logOutput = "<stdout>"
		logHandler = logging.StreamHandler(os.Stdout, formatter)
	} else {
		if logHandler, err = logging.FileHandler(flagLogOutput, tallycommon.JsonFormatEx(false, true)); err != nil {
			return newFlagError("--log-output", err)
		}
	}

	setLogging()

	log.Info("Starting Tally")

	parsedFlags := []interface{}{}
	nodeCmd.Flags().VisitAll(func(f *pflag.Flag) {
		v := f.Value.String()
		if f.Name == "log-output" {
			v = logOutput
		}
		parsedFlags = append(parsedFlags, "\n\t"+f.Name, v)
	})

	log.Debug("parsed flags:", parsedFlags...)

	// NOTE `GODEBUG="http2debug=2"` does the same.
	if flagVerbose {
		http2.VerboseLogs = true
	}

	return nil
}

// bindURLWithTLS adds the tls files to the bind url for "https".
func bindURLWithTLS() string {
	u, err := url.Parse(flagBindURL)
	if err != nil {
		return flagBindURL
	}

	if u.Scheme == "https" {
		queries := u.Query()
		if len(queries.Get("TLSCertFile")) < 1 {
			queries.Set("TLSCertFile", flagTLSCertFile)
		}
		if len(queries.Get("TLSKeyFile")) < 1 {
			queries.Set("TLSKeyFile", flagTLSKeyFile)
		}
		u.RawQuery = queries.Encode()
	}

	return u.String()
}

func setLogging() {
	log.SetHandler(logging.LvlFilterHandler(logLevel, logHandler))

	auth.SetLogging(logLevel, logHandler)
	candidate.SetLogging(logLevel, logHandler)
	event.SetLogging(logLevel, logHandler)
	voting.SetLogging(logLevel, logHandler)
	runtime.SetLogging(logLevel, logHandler)
	network.SetLogging(logLevel, logHandler)
	api.SetLogging(logLevel, logHandler)
}

func runNode() error {
	metrics.InitPrometheusMetrics()
	metrics.SetVersion()

	st, err := storage.NewLevelDBBackend(storageConfig)
	if err != nil {
		log.Crit("failed to initialize storage", "error", err)
		return err
	}
	defer st.Close()

	rt := runtime.NewRuntime(
		st,
		conf,
		event.NewObserverSink(nil),
		event.LogSink{},
		event.MetricSink{},
	)

	apiHandler, err := api.NewNetworkHandlerAPI(rt, api.UrlPathPrefixAPI)
	if err != nil {
		log.Crit("failed to create api handler", "error", err)
		return err
	}

	server := network.NewServer(serverConfig, api.NewRouter(apiHandler, flagVerbose))

	var serverErr error
	var g run.Group
	{
		g.Add(func() error {
			log.Info("starting server", "bind", flagBindURL, "tls", serverConfig.IsTLS())
			if serverErr = server.Start(); serverErr != nil {
				log.Crit("failed to start server", "error", serverErr)
				return serverErr
			}
			return errors.New("server stopped")
		}, func(error) {
			if err := server.Stop(shutdownTimeout); err != nil {
				log.Error("failed to stop server", "error", err)
			}
		})
	}
	if jsonrpcConfig != nil {
		router, err := jsonrpc.NewRouter(st, "/jsonrpc")
		if err != nil {
			log.Crit("failed to create jsonrpc", "error", err)
			return err
		}
		jsonrpcServer := network.NewServer(*jsonrpcConfig, router)

		g.Add(func() error {
			log.Info("starting jsonrpc server", "bind", flagJSONRPCBindURL)
			if err := jsonrpcServer.Start(); err != nil {
				log.Error("failed to start jsonrpc server", "error", err)
				return err
			}
			return errors.New("jsonrpc server stopped")
		}, func(error) {
			jsonrpcServer.Stop(shutdownTimeout)
		})
	}
	{
		cancel := make(chan struct{})
		g.Add(func() error {
			return common.Interrupt(cancel)
		}, func(error) {
			close(cancel)
		})
	}

	err = g.Run()
	log.Info("node stopped", "reason", err)

	return serverErr
}

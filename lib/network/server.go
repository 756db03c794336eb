package network

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/gorilla/handlers"
	logging "github.com/inconshreveable/log15"
	"golang.org/x/net/http2"

	"boscoin.io/tally/lib/common"
	"boscoin.io/tally/lib/errors"
)

var log logging.Logger = logging.New("module", "network")

func SetLogging(level logging.Lvl, handler logging.Handler) {
	common.SetLogging(log, level, handler)
}

type ServerConfig struct {
	Addr string

	ReadTimeout,
	ReadHeaderTimeout,
	WriteTimeout,
	IdleTimeout time.Duration

	TLSCertFile,
	TLSKeyFile string

	// AccessLogOutput receives the access log in the combined log format.
	AccessLogOutput io.Writer
}

// NewServerConfigFromString parses the bind endpoint, like
// "https://0.0.0.0:12345?TLSCertFile=a.crt&TLSKeyFile=a.key&IdleTimeout=5s".
// The "http" scheme does not need the TLS files.
func NewServerConfigFromString(s string) (config ServerConfig, err error) {
	var u *url.URL
	if u, err = url.Parse(s); err != nil {
		err = errors.BadRequestParameter.Clone().SetData("endpoint", s)
		return
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		err = errors.BadRequestParameter.Clone().SetData("scheme", u.Scheme)
		return
	}
	if len(u.Host) < 1 {
		err = errors.BadRequestParameter.Clone().SetData("endpoint", s)
		return
	}

	query := u.Query()
	config.Addr = u.Host

	durations := map[string]*time.Duration{
		"ReadTimeout":       &config.ReadTimeout,
		"ReadHeaderTimeout": &config.ReadHeaderTimeout,
		"WriteTimeout":      &config.WriteTimeout,
		"IdleTimeout":       &config.IdleTimeout,
	}
	defaults := map[string]string{
		"ReadTimeout":       "0s",
		"ReadHeaderTimeout": "0s",
		"WriteTimeout":      "0s",
		"IdleTimeout":       "5s",
	}
	for key, d := range durations {
		v := common.GetUrlQuery(query, key, defaults[key])
		if *d, err = time.ParseDuration(v); err != nil || *d < 0 {
			err = errors.BadRequestParameter.Clone().SetData(key, v)
			return
		}
	}

	if u.Scheme == "https" {
		if config.TLSCertFile = query.Get("TLSCertFile"); len(config.TLSCertFile) < 1 {
			err = errors.BadRequestParameter.Clone().SetData("TLSCertFile", "missing")
			return
		}
		if config.TLSKeyFile = query.Get("TLSKeyFile"); len(config.TLSKeyFile) < 1 {
			err = errors.BadRequestParameter.Clone().SetData("TLSKeyFile", "missing")
			return
		}
	}

	if v := query.Get("AccessLogOutput"); len(v) < 1 {
		config.AccessLogOutput = os.Stdout
	} else {
		config.AccessLogOutput, err = os.OpenFile(v, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return
		}
	}

	return
}

func (c ServerConfig) IsTLS() bool {
	return len(c.TLSCertFile) > 0 && len(c.TLSKeyFile) > 0
}

// Server serves the handler over HTTP/2 when TLS is enabled, otherwise over
// HTTP/1.1.
type Server struct {
	config ServerConfig
	server *http.Server
}

func NewServer(config ServerConfig, handler http.Handler) *Server {
	if config.AccessLogOutput != nil {
		handler = handlers.CombinedLoggingHandler(config.AccessLogOutput, handler)
	}

	server := &http.Server{
		Addr:              config.Addr,
		Handler:           handler,
		ReadTimeout:       config.ReadTimeout,
		ReadHeaderTimeout: config.ReadHeaderTimeout,
		WriteTimeout:      config.WriteTimeout,
	}
	server.SetKeepAlivesEnabled(true)

	http2.ConfigureServer(
		server,
		&http2.Server{
			IdleTimeout: config.IdleTimeout,
		},
	)

	return &Server{config: config, server: server}
}

func (s *Server) Addr() string {
	return s.config.Addr
}

// Start blocks until the server is closed; `http.ErrServerClosed` is not an
// error.
func (s *Server) Start() (err error) {
	var listener net.Listener
	if listener, err = net.Listen("tcp", s.config.Addr); err != nil {
		return
	}

	log.Info("server started", "addr", listener.Addr(), "tls", s.config.IsTLS())

	if s.config.IsTLS() {
		err = s.server.ServeTLS(listener, s.config.TLSCertFile, s.config.TLSKeyFile)
	} else {
		err = s.server.Serve(listener)
	}

	if err == http.ErrServerClosed {
		err = nil
	}

	return
}

func (s *Server) Stop(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	log.Info("server stopping", "addr", s.config.Addr)
	return s.server.Shutdown(ctx)
}

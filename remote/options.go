package remote

import (
	"time"

	"github.com/sirupsen/logrus"
)

// Options contains the parameters of a Server or Proxy.
type Options struct {
	Name        string
	PingTimeout time.Duration
	Log         *logrus.Logger
}

// Option is a function option to configure a Server or Proxy.
type Option func(*Options)

// Name is a functional option to set the server name. The name forms
// the middle token of all NATS subjects of this server.
func Name(name string) Option {
	return func(args *Options) {
		args.Name = name
	}
}

// PingTimeout is a functional option to set how long the server keeps
// remote subscriptions alive without receiving a ping.
func PingTimeout(d time.Duration) Option {
	return func(args *Options) {
		args.PingTimeout = d
	}
}

// Logger is a functional option to set the logger instance.
func Logger(l *logrus.Logger) Option {
	return func(args *Options) {
		args.Log = l
	}
}

func defaultLogger() *logrus.Logger {
	return logrus.StandardLogger()
}

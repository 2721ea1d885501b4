package monitor

import (
	"github.com/cskr/pubsub"
	"github.com/sirupsen/logrus"
)

// Options contains the parameters of a Monitor.
type Options struct {
	Host         string
	Port         int
	EventLogSize int
	Events       *pubsub.PubSub
	Log          *logrus.Logger
}

// Option is a function option to configure a Monitor.
type Option func(*Options)

// Host is a functional option to set the listening address.
func Host(host string) Option {
	return func(args *Options) {
		args.Host = host
	}
}

// Port is a functional option to set the listening port.
func Port(port int) Option {
	return func(args *Options) {
		args.Port = port
	}
}

// EventLogSize is a functional option to set the capacity of the
// recent events ring.
func EventLogSize(size int) Option {
	return func(args *Options) {
		args.EventLogSize = size
	}
}

// EventHub is a functional option to set the pubsub instance over
// which HAL change notifications are received.
func EventHub(ps *pubsub.PubSub) Option {
	return func(args *Options) {
		args.Events = ps
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

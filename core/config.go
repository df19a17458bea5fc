package core

import (
	"os"

	"github.com/vuuvv/errors"
	"gopkg.in/yaml.v3"
)

const (
	DefaultErrorQueueSize  = 10
	DefaultMaxResponseSize = 4096
	DefaultReadBufferSize  = 4096
)

// Config carries the interpreter tunables. The zero value is usable
// after Setup fills in the defaults.
type Config struct {
	// ErrorQueueSize is the capacity of the error queue created when no
	// queue is supplied.
	ErrorQueueSize int `yaml:"error_queue_size"`
	// MaxResponseSize bounds one batch of responses. Negative after
	// Setup means unbounded.
	MaxResponseSize int `yaml:"max_response_size"`
	// ReadBufferSize is the adapter read chunk size.
	ReadBufferSize int `yaml:"read_buffer_size"`

	// Queue, when set, is used instead of allocating a new error queue.
	// Standard error commands should share this instance.
	Queue ErrorQueue `yaml:"-"`
}

func (this *Config) Setup() error {
	if this.ErrorQueueSize < 0 {
		return errors.Errorf("invalid error queue size: %d", this.ErrorQueueSize)
	}
	if this.ErrorQueueSize == 0 {
		this.ErrorQueueSize = DefaultErrorQueueSize
	}
	if this.MaxResponseSize == 0 {
		this.MaxResponseSize = DefaultMaxResponseSize
	}
	if this.ReadBufferSize <= 0 {
		this.ReadBufferSize = DefaultReadBufferSize
	}
	return nil
}

func NewConfigFromBytes(configBytes []byte) (*Config, error) {
	config := &Config{}
	err := yaml.Unmarshal(configBytes, config)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	err = config.Setup()
	return config, err
}

func NewConfigFromFile(configFile string) (*Config, error) {
	f, err := os.Open(configFile)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer func() {
		_ = f.Close()
	}()
	config := &Config{}
	err = yaml.NewDecoder(f).Decode(config)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	err = config.Setup()
	return config, err
}

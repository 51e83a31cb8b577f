package mqtt

import (
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"os"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"github.com/rotaplan/rotaplan/core/model"
	"github.com/rotaplan/rotaplan/core/notify"
	"github.com/rotaplan/rotaplan/infra/logger"
)

// Config defines the connection parameters for the Paho MQTT notifier.
type Config struct {
	Broker      string `json:"broker"`
	ClientID    string `json:"client_id"`
	Username    string `json:"username"`
	Password    string `json:"password"`
	TopicPrefix string `json:"topic_prefix"`
	QoS         byte   `json:"qos"`
	UseTLS      bool   `json:"use_tls"`
	ClientCert  string `json:"client_cert"`
	ClientKey   string `json:"client_key"`
	CABundle    string `json:"ca_bundle"`
	MaxRetries  int    `json:"max_retries"`
	BackoffMS   int    `json:"backoff_ms"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.ClientID == "" {
		c.ClientID = "rotaplan"
	}
	if c.TopicPrefix == "" {
		c.TopicPrefix = "rota"
	}
}

// Validate checks mandatory fields.
func (c Config) Validate() error {
	if c.Broker == "" {
		return fmt.Errorf("mqtt: broker is required")
	}
	return nil
}

// pahoClient is the subset of the Paho client the notifier relies on.
type pahoClient interface {
	IsConnected() bool
	Connect() paho.Token
	Disconnect(quiesce uint)
	Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token
}

var newMQTTClient = func(opts *paho.ClientOptions) pahoClient {
	return paho.NewClient(opts)
}

// PahoNotifier publishes committed assignments over MQTT, one message per
// assignee topic. It implements notify.Notifier.
type PahoNotifier struct {
	cli        pahoClient
	prefix     string
	qos        byte
	maxRetries int
	backoff    time.Duration
}

// assignmentMessage is the JSON payload published for each assignment.
type assignmentMessage struct {
	MessageID string `json:"message_id"`
	Date      string `json:"date"`
	Slot      int    `json:"slot"`
	Role      string `json:"role"`
	Assignee  string `json:"assignee"`
	Kind      string `json:"kind"`
}

// NewPahoNotifier connects to the MQTT broker.
func NewPahoNotifier(cfg Config) (*PahoNotifier, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	opts, err := NewClientOptions(cfg)
	if err != nil {
		return nil, err
	}

	log := logger.New("mqtt_notifier")
	opts.OnConnect = func(paho.Client) {
		log.Infof("MQTT connected")
	}
	opts.OnConnectionLost = func(_ paho.Client, err error) {
		log.Errorf("connection lost: %v", err)
	}
	opts.OnReconnecting = func(paho.Client, *paho.ClientOptions) {
		log.Warnf("reconnecting to MQTT broker")
	}

	c := newMQTTClient(opts)
	if token := c.Connect(); token.Wait() && token.Error() != nil {
		return nil, token.Error()
	}
	return &PahoNotifier{
		cli:        c,
		prefix:     cfg.TopicPrefix,
		qos:        cfg.QoS,
		maxRetries: cfg.MaxRetries,
		backoff:    time.Duration(cfg.BackoffMS) * time.Millisecond,
	}, nil
}

// NewClientOptions builds mqtt client options from Config.
func NewClientOptions(cfg Config) (*paho.ClientOptions, error) {
	opts := paho.NewClientOptions().AddBroker(cfg.Broker).SetClientID(cfg.ClientID)
	opts.AutoReconnect = true
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}
	if cfg.UseTLS {
		tlsCfg := &tls.Config{MinVersion: tls.VersionTLS12}
		if cfg.ClientCert != "" && cfg.ClientKey != "" {
			cert, err := tls.LoadX509KeyPair(cfg.ClientCert, cfg.ClientKey)
			if err != nil {
				return nil, fmt.Errorf("load client certificate: %w", err)
			}
			tlsCfg.Certificates = []tls.Certificate{cert}
		}
		if cfg.CABundle != "" {
			ca, err := os.ReadFile(cfg.CABundle)
			if err != nil {
				return nil, fmt.Errorf("read CA bundle: %w", err)
			}
			pool := x509.NewCertPool()
			if !pool.AppendCertsFromPEM(ca) {
				return nil, fmt.Errorf("parse CA bundle %s", cfg.CABundle)
			}
			tlsCfg.RootCAs = pool
		}
		opts.SetTLSConfig(tlsCfg)
	}
	return opts, nil
}

// NotifyAssignment publishes the assignment to
// <prefix>/assignments/<assignee> and returns the message identifier.
// Unfilled days have no recipient and are skipped.
func (n *PahoNotifier) NotifyAssignment(a model.Assignment) (string, error) {
	if !a.Filled() {
		return "", nil
	}
	msg := assignmentMessage{
		MessageID: uuid.NewString(),
		Date:      a.Day.Date.Format("2006-01-02"),
		Slot:      a.Day.Slot,
		Role:      a.Day.RoleOrDefault(),
		Assignee:  a.AssigneeID,
		Kind:      a.Kind.String(),
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		return "", err
	}
	topic := fmt.Sprintf("%s/assignments/%s", n.prefix, a.AssigneeID)

	var lastErr error
	for attempt := 0; attempt <= n.maxRetries; attempt++ {
		if attempt > 0 && n.backoff > 0 {
			time.Sleep(n.backoff)
		}
		token := n.cli.Publish(topic, n.qos, false, payload)
		if token.Wait() && token.Error() == nil {
			return msg.MessageID, nil
		}
		lastErr = token.Error()
	}
	return "", fmt.Errorf("publish assignment for %s: %w", a.AssigneeID, lastErr)
}

// Close disconnects from the broker.
func (n *PahoNotifier) Close() error {
	if n.cli.IsConnected() {
		n.cli.Disconnect(250)
	}
	return nil
}

var _ notify.Notifier = (*PahoNotifier)(nil)

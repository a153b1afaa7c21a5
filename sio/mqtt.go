package sio

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"os"
	"time"

	"github.com/Comcast/vend/machine"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// Publisher is the part of an mqtt.Client that an MQTTSink uses.
type Publisher interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
}

// PublishTimeout is returned when the broker doesn't acknowledge a
// publication in time.
var PublishTimeout = errors.New("MQTT publish timeout")

// MQTTSink publishes Events as JSON to an MQTT topic.
type MQTTSink struct {
	Client  mqtt.Client
	Topic   string
	QoS     byte
	Timeout time.Duration

	// Quiesce is the disconnection quiescence in milliseconds.
	Quiesce uint

	pub Publisher
}

// NewMQTTSink makes an MQTTSink for the given broker (for example
// "tcp://localhost:1883").  Call Start to connect.
func NewMQTTSink(broker, clientID, topic string) *MQTTSink {
	mqtt.ERROR = log.New(os.Stderr, "mqtt.error ", 0)

	opts := mqtt.NewClientOptions()
	opts.AddBroker(broker)
	opts.SetClientID(clientID)
	opts.SetKeepAlive(10 * time.Second)
	opts.SetAutoReconnect(true)
	opts.OnConnectionLost = func(client mqtt.Client, err error) {
		log.Printf("MQTT connection lost: %s", err)
	}

	client := mqtt.NewClient(opts)
	return &MQTTSink{
		Client:  client,
		Topic:   topic,
		QoS:     1,
		Timeout: 5 * time.Second,
		Quiesce: 100,
		pub:     client,
	}
}

// NewMQTTSinkWith makes an MQTTSink that publishes via the given
// Publisher.  Start and Stop do nothing.
func NewMQTTSinkWith(pub Publisher, topic string) *MQTTSink {
	return &MQTTSink{
		Topic:   topic,
		QoS:     1,
		Timeout: 5 * time.Second,
		pub:     pub,
	}
}

// Start connects to the broker.
func (s *MQTTSink) Start(ctx context.Context) error {
	if s.Client == nil {
		return nil
	}
	log.Printf("Attempting to connect to broker")
	if token := s.Client.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	log.Printf("Connected to broker")
	return nil
}

// Emit publishes the Event and waits for the broker.
func (s *MQTTSink) Emit(ctx context.Context, ev machine.Event) error {
	js, err := json.Marshal(&ev)
	if err != nil {
		return err
	}
	token := s.pub.Publish(s.Topic, s.QoS, false, js)
	if !token.WaitTimeout(s.Timeout) {
		return PublishTimeout
	}
	return token.Error()
}

// Stop disconnects from the broker.
func (s *MQTTSink) Stop(ctx context.Context) error {
	if s.Client == nil {
		return nil
	}
	log.Printf("Disconnecting")
	s.Client.Disconnect(s.Quiesce)
	return nil
}

package channel

import (
	"fmt"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"

	"bwbeacon/internal/secure"
	"bwbeacon/internal/wire"
)

// publisher is the slice of mqtt.Client the channel uses. Tests
// substitute a stub to exercise buffering behavior without a broker.
type publisher interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
	Disconnect(quiesce uint)
}

// MQTT publishes envelopes to one topic with QoS 0: fire-and-forget,
// no acknowledgment, no retry. Publish hands the message to the
// client's send buffer and blocks while the buffer is full, so a slow
// or unreachable collector stalls the beacon instead of losing samples
// silently. Reconnects are the client library's own business.
type MQTT struct {
	client publisher
	topic  string
	sealer *secure.Sealer
}

// Dial connects to the broker and returns the channel. A nil sealer
// means envelopes go out in the clear.
func Dial(brokerURL, clientID, topic string, sealer *secure.Sealer) (*MQTT, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(brokerURL).
		SetClientID(clientID).
		SetAutoReconnect(true)
	opts.SetOnConnectHandler(func(mqtt.Client) {
		log.Debug().Str("broker", brokerURL).Msg("mqtt: connected")
	})
	opts.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		log.Warn().Err(err).Msg("mqtt: connection lost")
	})

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrTransport, brokerURL, token.Error())
	}
	return &MQTT{client: client, topic: topic, sealer: sealer}, nil
}

func (m *MQTT) Send(env *wire.Envelope) error {
	payload, err := env.Encode()
	if err != nil {
		return err
	}
	if m.sealer != nil {
		payload, err = m.sealer.Seal(payload)
		if err != nil {
			return err
		}
	}
	// QoS 0: the token completes as soon as the message is written to
	// the client's outbound buffer, so there is nothing to wait on.
	m.client.Publish(m.topic, 0, false, payload)
	return nil
}

func (m *MQTT) Close() error {
	m.client.Disconnect(250)
	return nil
}

var _ Channel = (*MQTT)(nil)

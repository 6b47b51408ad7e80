package mqtt

import (
	"fmt"
	"sort"
	"strconv"

	mqttv2 "github.com/mochi-mqtt/server/v2"
	"github.com/mochi-mqtt/server/v2/hooks/auth"
	"github.com/mochi-mqtt/server/v2/listeners"
	"github.com/nergy-se/agilerun/pkg/state"
	"github.com/sirupsen/logrus"
)

// Broker is an embedded MQTT broker that republishes each cycle's state as
// retained messages, one topic per value.
type Broker struct {
	server *mqttv2.Server
	prefix string
}

// Start serves MQTT on address. An empty address starts the broker without a
// TCP listener.
func Start(address, prefix string) (*Broker, error) {
	server := mqttv2.New(&mqttv2.Options{
		InlineClient: true,
	})

	// Allow all connections.
	err := server.AddHook(new(auth.AllowHook), nil)
	if err != nil {
		return nil, fmt.Errorf("error adding auth hook: %w", err)
	}

	if address != "" {
		tcp := listeners.NewTCP(listeners.Config{ID: "t1", Address: address})
		err = server.AddListener(tcp)
		if err != nil {
			return nil, err
		}
	}

	err = server.Serve()
	if err != nil {
		return nil, err
	}
	logrus.Infof("mqtt broker listening on %q", address)

	return &Broker{
		server: server,
		prefix: prefix,
	}, nil
}

func (b *Broker) Publish(s state.State) error {
	m := s.Map()
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		topic := b.prefix + "/" + k
		err := b.server.Publish(topic, []byte(format(m[k])), true, 0)
		if err != nil {
			return fmt.Errorf("error publishing %s: %w", topic, err)
		}
	}
	return nil
}

func (b *Broker) Close() error {
	return b.server.Close()
}

func format(v interface{}) string {
	switch t := v.(type) {
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(t, 10)
	case string:
		return t
	}
	return fmt.Sprint(v)
}

package relay

import (
	"fmt"
	"time"

	"github.com/nergy-se/agilerun/pkg/modbusclient"
	"github.com/sirupsen/logrus"
)

// Relay switches a modbus coil, e.g. a contactor feeding a heater or a rig.
type Relay struct {
	client modbusclient.Client
	coil   uint16
}

func New(client modbusclient.Client, coil uint16) *Relay {
	return &Relay{
		client: client,
		coil:   coil,
	}
}

// AllowCompute ignores runtime; the next cycle reconsiders the coil.
func (r *Relay) AllowCompute(allow bool, runtime time.Duration) error {
	logrus.Infof("relay: coil %d on=%t", r.coil, allow)
	_, err := r.client.WriteSingleCoil(r.coil, modbusclient.CoilValue(allow))
	if err != nil {
		return fmt.Errorf("error switching relay: %w", err)
	}
	return nil
}

// State reads the coil back.
func (r *Relay) State() (bool, error) {
	return r.client.ReadCoil(r.coil)
}

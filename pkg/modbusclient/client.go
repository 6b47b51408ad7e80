package modbusclient

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"syscall"
	"time"

	"github.com/goburrow/modbus"
	"github.com/sirupsen/logrus"
)

type Client interface {
	WriteSingleCoil(address, value uint16) (int, error)
	ReadCoil(address uint16) (bool, error)
}

type client struct {
	client modbus.Client
	close  func() error
}

func New(c modbus.Client, close func() error) *client {
	return &client{
		client: c,
		close:  close,
	}
}

// Dial returns a Client talking modbus TCP to address. The connection is
// opened lazily on the first request.
func Dial(address string, slaveID byte) *client {
	handler := modbus.NewTCPClientHandler(address)
	handler.SlaveId = slaveID
	handler.Timeout = 10 * time.Second
	return New(modbus.NewClient(handler), handler.Close)
}

func (c *client) Close() error {
	return c.close()
}

// closeIfNeeded drops the connection on errors that leave it unusable so the
// handler reconnects on the next request.
func (c *client) closeIfNeeded(e error) {
	if !errors.Is(e, syscall.EPIPE) && !errors.Is(e, os.ErrDeadlineExceeded) {
		return
	}
	logrus.Warnf("reconnect due to %s", e)
	if err := c.close(); err != nil {
		logrus.Errorf("error closing client: %s", err)
	}
}

func (c *client) WriteSingleCoil(address, value uint16) (int, error) {
	b, err := c.client.WriteSingleCoil(address, value)
	if err != nil {
		c.closeIfNeeded(err)
		err = fmt.Errorf("error writing address %d value %d error: %w", address, value, err)
	}
	return Decode(b), err
}

func (c *client) ReadCoil(address uint16) (bool, error) {
	b, err := c.client.ReadCoils(address, 1)
	if err != nil {
		c.closeIfNeeded(err)
		return false, fmt.Errorf("error reading coil %d: %w", address, err)
	}
	if len(b) == 0 {
		return false, fmt.Errorf("empty response reading coil %d", address)
	}
	return b[0]&0x01 == 0x01, nil
}

// Decode reads a signed big endian value of 1, 2, 4 or 8 bytes.
func Decode(data []byte) int {
	switch len(data) {
	case 1:
		return int(int8(data[0]))
	case 2:
		return int(int16(binary.BigEndian.Uint16(data)))
	case 4:
		return int(int32(binary.BigEndian.Uint32(data)))
	case 8:
		return int(int64(binary.BigEndian.Uint64(data)))
	}
	return 0
}

func CoilValue(b bool) uint16 {
	if b {
		return WriteCoilValueOn
	}
	return WriteCoilValueOff
}

const (
	WriteCoilValueOn  uint16 = 0xff00
	WriteCoilValueOff uint16 = 0
)

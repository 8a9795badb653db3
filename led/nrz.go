package led

import (
	"fmt"

	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/nrzled"
	"periph.io/x/host/v3"
)

// WS2812-class parts latch at an 800kHz symbol rate; nrzled expands each bit to
// 3 SPI bits, plus headroom for the reset tail.
const nrzFreq = (800*3 + 100) * physic.KiloHertz

// NRZ drives a WS2812-class strip through a SPI port using the periph nrzled
// encoder. The channel bytes are written as-is, so color ordering must already
// be applied by the caller.
type NRZ struct {
	port  spi.PortCloser
	dev   *nrzled.Dev
	count int
}

// NewNRZ opens the named SPI port ("" for the first available) for count LEDs.
func NewNRZ(portName string, count int) (*NRZ, error) {
	if count <= 0 {
		return nil, fmt.Errorf("invalid LED count: %d", count)
	}
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("host init: %w", err)
	}
	port, err := spireg.Open(portName)
	if err != nil {
		return nil, fmt.Errorf("open spi port: %w", err)
	}
	dev, err := nrzled.NewSPI(port, &nrzled.Opts{
		NumPixels: count,
		Channels:  3,
		Freq:      nrzFreq,
	})
	if err != nil {
		_ = port.Close()
		return nil, fmt.Errorf("nrzled: %w", err)
	}
	return &NRZ{port: port, dev: dev, count: count}, nil
}

func (d *NRZ) Write(rgb []byte) error {
	if len(rgb) != d.count*3 {
		return fmt.Errorf("frame length %d does not match count %d", len(rgb), d.count)
	}
	if _, err := d.dev.Write(rgb); err != nil {
		return fmt.Errorf("spi write: %w", err)
	}
	return nil
}

func (d *NRZ) Close() error {
	if err := d.dev.Halt(); err != nil {
		_ = d.port.Close()
		return err
	}
	return d.port.Close()
}

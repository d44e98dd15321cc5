package humidity

// DHT11 drives a DHT11 sensor.
type DHT11 struct {
	wire wire
}

// NewDHT11 takes ownership of line until Release is called. The DHT11 needs
// at least 18 ms of start signal.
func NewDHT11(line Line, delay Delay) *DHT11 {
	return &DHT11{wire: wire{line: line, delay: delay, startLowMs: 20}}
}

// Release gives the line back. The device must not be used afterwards.
func (d *DHT11) Release() Line {
	line := d.wire.line
	d.wire.line = nil
	return line
}

func (d *DHT11) Measure() (Measurement, error) {
	data, err := d.wire.frame()
	if err != nil {
		return Measurement{}, err
	}
	return dht11Measurement(data), nil
}

func (d *DHT11) MeasureWithRetries(retries uint) (Measurement, error) {
	return measureWithRetries(d.Measure, d.wire.delay, retries)
}

func (d *DHT11) Variant() Variant { return VariantDHT11 }

func (d *DHT11) sealed() {}

// dht11Measurement uses the integral bytes only: byte 0 is whole %RH and
// byte 2 whole °C. Bytes 1 and 3 carry decimals the DHT11 always sends as
// zero, so they are ignored and no scaling is applied.
func dht11Measurement(data [4]byte) Measurement {
	return Measurement{
		Temperature: float64(data[2]),
		Humidity:    float64(data[0]),
	}
}

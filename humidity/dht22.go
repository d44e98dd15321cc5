package humidity

// DHT22 drives a DHT22/AM2302 sensor.
type DHT22 struct {
	wire wire
}

// NewDHT22 takes ownership of line until Release is called.
func NewDHT22(line Line, delay Delay) *DHT22 {
	return &DHT22{wire: wire{line: line, delay: delay, startLowMs: 20}}
}

// Release gives the line back. The device must not be used afterwards.
func (d *DHT22) Release() Line {
	line := d.wire.line
	d.wire.line = nil
	return line
}

func (d *DHT22) Measure() (Measurement, error) {
	data, err := d.wire.frame()
	if err != nil {
		return Measurement{}, err
	}
	return dht22Measurement(data), nil
}

func (d *DHT22) MeasureWithRetries(retries uint) (Measurement, error) {
	return measureWithRetries(d.Measure, d.wire.delay, retries)
}

func (d *DHT22) Variant() Variant { return VariantDHT22 }

func (d *DHT22) sealed() {}

// dht22Measurement decodes tenths of %RH from bytes 0-1 and tenths of °C
// from bytes 2-3, where the top bit of byte 2 is the sign.
func dht22Measurement(data [4]byte) Measurement {
	rh := uint16(data[0])<<8 | uint16(data[1])
	magnitude := uint16(data[2]&0x7f)<<8 | uint16(data[3])
	temp := float64(magnitude) / 10
	if data[2]&0x80 != 0 {
		temp = -temp
	}
	return Measurement{
		Temperature: temp,
		Humidity:    float64(rh) / 10,
	}
}

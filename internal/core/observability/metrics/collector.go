package metrics

import (
	"time"

	gometrics "github.com/armon/go-metrics"

	"github.com/zeusync/skirmish/internal/core/events/bus"
)

var _ bus.EventBusObserver = (*Collector)(nil)

// Collector records counters, gauges and timings into an in-memory sink that
// the runner reads back for its periodic report. It also observes the event
// bus, counting events and handler failures per event type.
type Collector struct {
	service string
	m       *gometrics.Metrics
	sink    *gometrics.InmemSink
}

// New builds a collector keyed under service. interval is the aggregation
// window; the last ten windows are retained.
func New(service string, interval time.Duration) (*Collector, error) {
	sink := gometrics.NewInmemSink(interval, 10*interval)
	conf := gometrics.DefaultConfig(service)
	conf.EnableHostname = false
	conf.EnableRuntimeMetrics = false
	m, err := gometrics.New(conf, sink)
	if err != nil {
		return nil, err
	}
	return &Collector{service: service, m: m, sink: sink}, nil
}

func (c *Collector) IncrCounter(key ...string) {
	c.m.IncrCounter(key, 1)
}

func (c *Collector) SetGauge(val float32, key ...string) {
	c.m.SetGauge(key, val)
}

func (c *Collector) MeasureSince(start time.Time, key ...string) {
	c.m.MeasureSince(key, start)
}

func (c *Collector) OnPublish(eventType string, _ bus.Event) {
	c.IncrCounter("events", eventType)
}

func (c *Collector) OnDelivered(eventType string, _ int, err error) {
	if err != nil {
		c.IncrCounter("errors", eventType)
	}
}

// Counters sums every retained window per counter name. Names include the
// service prefix, e.g. "skirmish.events.weapon.fired".
func (c *Collector) Counters() map[string]float64 {
	out := make(map[string]float64)
	for _, interval := range c.sink.Data() {
		for name, v := range interval.Counters {
			out[name] += v.Sum
		}
	}
	return out
}

// Gauges returns the most recent value of every gauge.
func (c *Collector) Gauges() map[string]float32 {
	out := make(map[string]float32)
	for _, interval := range c.sink.Data() {
		for name, v := range interval.Gauges {
			out[name] = v.Value
		}
	}
	return out
}

// Timings returns the slowest observation of every timer across the retained
// windows.
func (c *Collector) Timings() map[string]time.Duration {
	out := make(map[string]time.Duration)
	for _, interval := range c.sink.Data() {
		for name, v := range interval.Samples {
			d := time.Duration(v.Max * float64(time.Millisecond))
			if d > out[name] {
				out[name] = d
			}
		}
	}
	return out
}

// Key joins parts under the service prefix the way the sink names them.
func (c *Collector) Key(parts ...string) string {
	key := c.service
	for _, p := range parts {
		key += "." + p
	}
	return key
}

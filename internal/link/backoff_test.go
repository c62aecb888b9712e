package link

import (
	"testing"
	"time"
)

func TestBackoffDelayGrowsAndCaps(t *testing.T) {
	b := BackoffConfig{
		InitialDelay: 100 * time.Millisecond,
		Multiplier:   2.0,
		MaxDelay:     time.Second,
	}

	if d := b.Delay(1); d != 100*time.Millisecond {
		t.Fatalf("attempt 1: got %v want 100ms", d)
	}
	if d := b.Delay(2); d != 200*time.Millisecond {
		t.Fatalf("attempt 2: got %v want 200ms", d)
	}
	if d := b.Delay(3); d != 400*time.Millisecond {
		t.Fatalf("attempt 3: got %v want 400ms", d)
	}
	if d := b.Delay(10); d != time.Second {
		t.Fatalf("attempt 10: got %v want cap 1s", d)
	}
}

func TestBackoffDelayJitterStaysInRange(t *testing.T) {
	jittered := BackoffConfig{
		InitialDelay: 100 * time.Millisecond,
		Multiplier:   2.0,
		MaxDelay:     time.Second,
		Jitter:       true,
	}
	flat := jittered
	flat.Jitter = false

	for attempt := 2; attempt < 12; attempt++ {
		d := jittered.Delay(attempt)
		base := flat.Delay(attempt)
		if d < base/2 || d > base+base/2 {
			t.Fatalf("attempt %d: jittered %v outside [%v, %v]", attempt, d, base/2, base+base/2)
		}
	}
}

func TestBackoffDelayZeroConfig(t *testing.T) {
	if d := (BackoffConfig{}).Delay(5); d != 0 {
		t.Fatalf("zero config: got %v want 0", d)
	}
}

func TestConfigWithDefaults(t *testing.T) {
	c := Config{ReadIdleTimeout: time.Minute}.WithDefaults()
	if c.ReadIdleTimeout != time.Minute {
		t.Fatalf("explicit value overridden: %v", c.ReadIdleTimeout)
	}
	def := DefaultConfig()
	if c.ConnectTimeout != def.ConnectTimeout || c.WriteTimeout != def.WriteTimeout {
		t.Fatalf("zero fields not filled: %+v", c)
	}
	if c.HandshakeTimeout != def.HandshakeTimeout {
		t.Fatalf("handshake timeout not defaulted: %v", c.HandshakeTimeout)
	}
	if c.Backoff.InitialDelay != def.Backoff.InitialDelay {
		t.Fatalf("backoff not defaulted: %+v", c.Backoff)
	}
}

package mqttcore

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// MQTT specification limits (defaults when Options leaves a field unset).
const (
	// DefaultMaxTopicLength is the maximum length of an MQTT topic string
	// (bounded by the wire format's 2-byte length prefix).
	DefaultMaxTopicLength = 65535

	// DefaultMaxPayloadSize is the largest payload this client will
	// enqueue in a PUBLISH, matching the largest remaining-length the
	// wire format can express.
	DefaultMaxPayloadSize = 268435455
)

func limitOrDefault(configured, fallback int) int {
	if configured > 0 {
		return configured
	}
	return fallback
}

// ValidatePublishTopic checks a topic intended for Publish: non-empty,
// within opts' length limit, free of wildcards and NUL bytes, and valid
// UTF-8. The wire codec itself performs none of these checks (it does
// not validate UTF-8 at all, by design — see internal/packets); this is
// the application-layer gate the teacher's options_limits.go played the
// same role for.
func ValidatePublishTopic(topic string, opts Options) error {
	if topic == "" {
		return fmt.Errorf("mqttcore: topic cannot be empty")
	}
	if max := limitOrDefault(opts.MaxTopicLength, DefaultMaxTopicLength); len(topic) > max {
		return fmt.Errorf("mqttcore: topic length %d exceeds maximum %d", len(topic), max)
	}
	if strings.ContainsAny(topic, "+#") {
		return fmt.Errorf("mqttcore: topic must not contain wildcards")
	}
	if strings.Contains(topic, "\x00") {
		return fmt.Errorf("mqttcore: topic must not contain a NUL byte")
	}
	if !utf8.ValidString(topic) {
		return fmt.Errorf("mqttcore: topic is not valid UTF-8")
	}
	return nil
}

// ValidateSubscribeTopic checks a topic filter intended for Subscribe or
// Unsubscribe: non-empty, within opts' length limit, valid UTF-8, and
// wildcard placement that matches MQTT's rules ('+' alone in its level,
// '#' alone and last).
func ValidateSubscribeTopic(filter string, opts Options) error {
	if filter == "" {
		return fmt.Errorf("mqttcore: topic filter cannot be empty")
	}
	if max := limitOrDefault(opts.MaxTopicLength, DefaultMaxTopicLength); len(filter) > max {
		return fmt.Errorf("mqttcore: topic filter length %d exceeds maximum %d", len(filter), max)
	}
	if strings.Contains(filter, "\x00") {
		return fmt.Errorf("mqttcore: topic filter must not contain a NUL byte")
	}
	if !utf8.ValidString(filter) {
		return fmt.Errorf("mqttcore: topic filter is not valid UTF-8")
	}

	parts := strings.Split(filter, "/")
	for i, part := range parts {
		if strings.Contains(part, "+") && part != "+" {
			return fmt.Errorf("mqttcore: '+' must occupy its entire topic level")
		}
		if strings.Contains(part, "#") {
			if part != "#" {
				return fmt.Errorf("mqttcore: '#' must occupy its entire topic level")
			}
			if i != len(parts)-1 {
				return fmt.Errorf("mqttcore: '#' must be the last level")
			}
		}
	}
	return nil
}

// ValidatePayload checks an outgoing PUBLISH payload against opts' size
// limit.
func ValidatePayload(payload []byte, opts Options) error {
	if max := limitOrDefault(opts.MaxPayloadSize, DefaultMaxPayloadSize); len(payload) > max {
		return fmt.Errorf("mqttcore: payload size %d exceeds maximum %d", len(payload), max)
	}
	return nil
}

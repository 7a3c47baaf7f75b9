package mqttcore

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePublishTopicRejectsEmpty(t *testing.T) {
	err := ValidatePublishTopic("", Options{})
	assert.Error(t, err)
}

func TestValidatePublishTopicRejectsWildcard(t *testing.T) {
	assert.Error(t, ValidatePublishTopic("a/+/c", Options{}))
	assert.Error(t, ValidatePublishTopic("a/#", Options{}))
}

func TestValidatePublishTopicRejectsOverLength(t *testing.T) {
	err := ValidatePublishTopic(strings.Repeat("a", 10), Options{MaxTopicLength: 5})
	assert.Error(t, err)
}

func TestValidatePublishTopicAccepts(t *testing.T) {
	assert.NoError(t, ValidatePublishTopic("a/b/c", Options{}))
}

func TestValidateSubscribeTopicAcceptsWildcards(t *testing.T) {
	assert.NoError(t, ValidateSubscribeTopic("a/+/c", Options{}))
	assert.NoError(t, ValidateSubscribeTopic("a/b/#", Options{}))
	assert.NoError(t, ValidateSubscribeTopic("#", Options{}))
}

func TestValidateSubscribeTopicRejectsMisplacedWildcard(t *testing.T) {
	assert.Error(t, ValidateSubscribeTopic("a+/b", Options{}))
	assert.Error(t, ValidateSubscribeTopic("a/#/c", Options{}))
	assert.Error(t, ValidateSubscribeTopic("a/b#", Options{}))
}

func TestValidateSubscribeTopicRejectsEmpty(t *testing.T) {
	assert.Error(t, ValidateSubscribeTopic("", Options{}))
}

func TestValidatePayloadRejectsOverLimit(t *testing.T) {
	err := ValidatePayload(make([]byte, 100), Options{MaxPayloadSize: 50})
	assert.Error(t, err)
}

func TestValidatePayloadAcceptsWithinLimit(t *testing.T) {
	assert.NoError(t, ValidatePayload(make([]byte, 50), Options{MaxPayloadSize: 50}))
}

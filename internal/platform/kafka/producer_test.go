package kafka

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitBrokers(t *testing.T) {
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, splitBrokers(" kafka-1:9092, ,kafka-2:9092 "))
	assert.Empty(t, splitBrokers(""))
}

func TestNewRequiresBrokers(t *testing.T) {
	_, err := New(DefaultConfig(" , "), nil)
	require.Error(t, err)
}

package log

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestLevel(t *testing.T) {
	assert.Equal(t, zap.DebugLevel, level("DEBUG"))
	assert.Equal(t, zap.DebugLevel, level("debug"))
	assert.Equal(t, zap.WarnLevel, level("WARN"))
	assert.Equal(t, zap.ErrorLevel, level("error"))
	assert.Equal(t, zap.InfoLevel, level("INFO"))
	assert.Equal(t, zap.InfoLevel, level(""))
	assert.Equal(t, zap.InfoLevel, level("bogus"))
}

package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatUploadTime(t *testing.T) {
	ts := time.Date(2024, 3, 9, 14, 30, 5, 0, time.Local)
	assert.Equal(t, "09.03.2024 14:30:05", FormatUploadTime(ts.UnixMilli()))
	assert.Equal(t, "", FormatUploadTime(0))
	assert.Equal(t, "", FormatUploadTime(-5))
}

func TestFormatSize(t *testing.T) {
	assert.Equal(t, "0 B", FormatSize(0))
	assert.Equal(t, "10 B", FormatSize(10))
	assert.Equal(t, "2.0 KiB", FormatSize(2048))
	assert.Equal(t, "", FormatSize(-1))
}

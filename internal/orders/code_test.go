package orders

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewCode(t *testing.T) {
	at := time.Date(2025, 3, 14, 9, 26, 53, 589*int(time.Millisecond), time.UTC)
	assert.Equal(t, "OD20250314092653589", NewCode(at))
}

func TestNewCode_ConvertsToUTC(t *testing.T) {
	hcm := time.FixedZone("ICT", 7*3600)
	at := time.Date(2025, 3, 14, 16, 26, 53, 1*int(time.Millisecond), hcm)
	assert.Equal(t, "OD20250314092653001", NewCode(at))
}

func TestNewCode_Monotonic(t *testing.T) {
	base := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	a := NewCode(base)
	b := NewCode(base.Add(time.Millisecond))
	assert.Less(t, a, b)
}

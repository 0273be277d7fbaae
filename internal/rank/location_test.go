package rank

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreLocation(t *testing.T) {
	e := refEngine()

	cases := []struct {
		location string
		want     float64
	}{
		{"", 50},
		{"Remote - US", 100},
		{"Anywhere", 100},
		{"Work From Home", 100},
		{"WFH friendly", 100},
		{"Hybrid - NYC", 50},
		{"Bangalore, India", 30},
		{"Pune office", 30},
		{"Onsite - Austin", 0},
		{"New York City", 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, e.ScoreLocation(tc.location), "location=%q", tc.location)
	}
}

func TestRemoteBeatsAcceptableKeyword(t *testing.T) {
	e := refEngine()
	// rules are ordered; a remote marker wins over an acceptable city
	assert.Equal(t, 100.0, e.ScoreLocation("Remote or Bangalore"))
	assert.Equal(t, 50.0, e.ScoreLocation("Hybrid - Bangalore"))
}

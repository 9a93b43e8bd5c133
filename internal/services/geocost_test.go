package services

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceSamePointIsZero(t *testing.T) {
	assert.Zero(t, Distance(46.0569, 14.5058, 46.0569, 14.5058, true))
	assert.Zero(t, Distance(46.0569, 14.5058, 46.0569, 14.5058, false))
}

func TestDistanceIsSymmetric(t *testing.T) {
	ab := Distance(46.0569, 14.5058, 46.2397, 14.3556, true)
	ba := Distance(46.2397, 14.3556, 46.0569, 14.5058, true)
	assert.InDelta(t, ab, ba, 1e-9)
}

func TestDistanceRoadFactor(t *testing.T) {
	straight := Distance(46.0569, 14.5058, 46.5547, 15.6459, false)
	road := Distance(46.0569, 14.5058, 46.5547, 15.6459, true)
	assert.InDelta(t, RoadFactor*straight, road, 1e-9)
}

func TestDistanceOneDegreeOfLatitude(t *testing.T) {
	got := Distance(0, 0, 1, 0, false)
	want := earthRadiusKm * math.Pi / 180
	if math.Abs(got-want) > 1e-6 {
		t.Fatalf("distance = %v, want %v", got, want)
	}
}

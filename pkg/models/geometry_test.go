package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuaternionFromYaw(t *testing.T) {
	q := QuaternionFromYaw(0)
	assert.InDelta(t, 0, q.Z, 1e-12)
	assert.InDelta(t, 1, q.W, 1e-12)

	q = QuaternionFromYaw(math.Pi / 2)
	assert.InDelta(t, math.Sin(math.Pi/4), q.Z, 1e-12)
	assert.InDelta(t, math.Cos(math.Pi/4), q.W, 1e-12)
}

func TestQuaternionYawRoundTrip(t *testing.T) {
	for _, yaw := range []float64{0, math.Pi / 4, math.Pi / 2, math.Pi, -math.Pi / 2} {
		q := QuaternionFromYaw(yaw)
		assert.InDelta(t, yaw, q.Yaw(), 1e-9)
	}
}

func TestQuaternionAngle(t *testing.T) {
	assert.InDelta(t, math.Pi/2, QuaternionFromYaw(math.Pi/2).Angle(), 1e-9)

	// Angle возвращает модуль угла, знак поворота теряется
	assert.InDelta(t, math.Pi/2, QuaternionFromYaw(-math.Pi/2).Angle(), 1e-9)
	assert.InDelta(t, 0, QuaternionFromYaw(0).Angle(), 1e-9)
}

func TestQuaternionAngleClampsW(t *testing.T) {
	// Накопленная ошибка округления может вывести W за единицу,
	// Angle не должен возвращать NaN
	q := Quaternion{W: 1.0000000001}
	assert.False(t, math.IsNaN(q.Angle()))
	assert.InDelta(t, 0, q.Angle(), 1e-9)
}

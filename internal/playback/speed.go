package playback

import "time"

const (
	BaseFPS        = 12.0  // 1x plays twelve frames per second
	MaxSlider      = 4.0   // upper bound of the speed slider
	SliderMidpoint = 0.667 // normalized slider position where speed reaches 1x
	MaxSpeed       = 4.0
)

// SpeedPresets are the quick speed buttons, as playback multipliers.
var SpeedPresets = []float64{0.2, 0.5, 1, 2}

// SliderToSpeed maps a slider value in [0, MaxSlider] onto a playback
// multiplier in [0, MaxSpeed]. The first part of the slider (up to
// SliderMidpoint) covers 0-1x linearly, the rest covers 1x-MaxSpeed.
func SliderToSpeed(slider float64) float64 {
	if slider <= 0 {
		return 0
	}
	if slider > MaxSlider {
		slider = MaxSlider
	}

	n := slider / MaxSlider
	if n <= SliderMidpoint {
		return n / SliderMidpoint
	}
	remaining := (n - SliderMidpoint) / (1 - SliderMidpoint)
	return 1 + remaining*(MaxSpeed-1)
}

// SpeedToSlider is the inverse of SliderToSpeed.
func SpeedToSlider(speed float64) float64 {
	if speed <= 0 {
		return 0
	}
	if speed > MaxSpeed {
		speed = MaxSpeed
	}

	if speed <= 1 {
		return speed * SliderMidpoint * MaxSlider
	}
	normalized := (speed - 1) / (MaxSpeed - 1)
	return (SliderMidpoint + normalized*(1-SliderMidpoint)) * MaxSlider
}

// FrameTime returns how long each frame stays on screen at the given speed.
// ok is false when the speed does not advance playback at all.
func FrameTime(speed float64) (d time.Duration, ok bool) {
	if speed <= 0 {
		return 0, false
	}
	return time.Duration(float64(time.Second) / (BaseFPS * speed)), true
}

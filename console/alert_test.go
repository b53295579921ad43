package console

import "testing"

func TestToneSamplesLengthAndRange(t *testing.T) {
	samples := toneSamples(alertSampleRate, alertFreqHz, alertSeconds)
	want := int(alertSampleRate * alertSeconds)
	if len(samples) != want {
		t.Fatalf("len(samples) = %d, want %d", len(samples), want)
	}
	for i, s := range samples {
		if s != 0.2 && s != -0.2 {
			t.Fatalf("sample %d = %v, want +-0.2 square wave", i, s)
		}
	}
}

func TestAlertTonePlayWithoutDeviceDoesNotPanic(t *testing.T) {
	a := newAlertTone()
	// Play() may fail if no audio device is present in this
	// environment; either outcome is fine as long as it doesn't panic.
	_ = a.Play()
}

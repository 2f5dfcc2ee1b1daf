package tts

// NativeSettings instructs a client to speak the text with its own speech
// engine. Used whenever hosted synthesis is unavailable so playback still
// happens.
type NativeSettings struct {
	Language string  `json:"language"`
	Rate     float64 `json:"rate"`
	Pitch    float64 `json:"pitch"`
	Volume   float64 `json:"volume"`
}

func DefaultNativeSettings() NativeSettings {
	return NativeSettings{
		Language: "en-US",
		Rate:     0.9,
		Pitch:    1.0,
		Volume:   0.8,
	}
}

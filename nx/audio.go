package nx

// audioHeaderSize is the length of the wrapper header prefixed to every
// stored audio blob (a WZ-era sound-format header); it is not part of the
// playable payload.
const audioHeaderSize = 82

// Audio is a reference to a raw encoded audio blob (e.g. MP3) stored with a
// fixed-size wrapper header in front.
type Audio struct {
	data []byte
}

// Data returns the encoded audio bytes with the wrapper header stripped.
func (a Audio) Data() []byte {
	if len(a.data) < audioHeaderSize {
		return nil
	}
	return a.data[audioHeaderSize:]
}

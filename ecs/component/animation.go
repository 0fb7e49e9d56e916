package component

// AnimationTrack is one state's frame strip.
type AnimationTrack struct {
	Frames   int
	Duration float64
}

// Animation holds playback bookkeeping. Track names match state names.
type Animation struct {
	Tracks  map[string]AnimationTrack
	Current string
	Frame   int
}

var AnimationComponent = NewComponent[Animation]()

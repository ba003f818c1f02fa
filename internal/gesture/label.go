// Package gesture classifies a single hand pose into a fixed set of named gestures.
package gesture

// Label is the name of a recognized gesture.
type Label string

const (
	Up      Label = "Up"
	Down    Label = "Down"
	OK      Label = "OK"
	NotOK   Label = "NotOK"
	Left    Label = "Left"
	Right   Label = "Right"
	Stop    Label = "Stop"
	Hi      Label = "Hi"
	Bye     Label = "Bye"
	Unknown Label = "Unknown"
)

// captions holds the on-screen text for each label.
var captions = map[Label]string{
	Up:      "Up",
	Down:    "Down",
	OK:      "OK",
	NotOK:   "Not OK",
	Left:    "Left",
	Right:   "Right",
	Stop:    "Stop",
	Hi:      "Hi",
	Bye:     "Bye",
	Unknown: "Unknown Gesture",
}

// Labels returns every label in rule order, ending with Unknown.
func Labels() []Label {
	labels := make([]Label, 0, len(rules)+1)
	for _, r := range rules {
		labels = append(labels, r.label)
	}
	return append(labels, Unknown)
}

// Valid reports whether l is one of the defined labels.
func (l Label) Valid() bool {
	_, ok := captions[l]
	return ok
}

// Text returns the caption drawn on the video frame.
func (l Label) Text() string {
	if text, ok := captions[l]; ok {
		return text
	}
	return captions[Unknown]
}

func (l Label) String() string {
	return string(l)
}

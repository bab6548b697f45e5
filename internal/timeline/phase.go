package timeline

import "fmt"

// Kind names a phase of the reveal timeline. The set is open: generators
// may introduce their own kinds next to the built-in ones.
type Kind string

const (
	TitleReveal Kind = "title_reveal"
	Poster      Kind = "poster"
	ActorReveal Kind = "actor_reveal"
	Pause       Kind = "pause"
)

// NoIndex marks phases that do not reveal a particular row
const NoIndex = -1

// Phase is one interval of the timeline in normalized time
type Phase struct {
	Kind  Kind
	Start float64 // fraction of total duration
	End   float64 // fraction of total duration
	Index int     // row/poster ordinal or NoIndex
	Seq   int     // position inside the schedule
}

// Width returns the normalized length of the phase
func (p Phase) Width() float64 {
	return p.End - p.Start
}

// Contains reports whether progress falls into the phase, both ends inclusive
func (p Phase) Contains(progress float64) bool {
	return p.Start <= progress && progress <= p.End
}

func (p Phase) String() string {
	if p.Index == NoIndex {
		return fmt.Sprintf("%s[%.4f..%.4f]", p.Kind, p.Start, p.End)
	}
	return fmt.Sprintf("%s#%d[%.4f..%.4f]", p.Kind, p.Index, p.Start, p.End)
}

// ConfigurationError is returned when the durations of a video do not fit
// into a valid schedule. It is only produced at build time.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("timeline configuration: %s: %s", e.Field, e.Reason)
}

func configErr(field, format string, args ...any) error {
	return &ConfigurationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

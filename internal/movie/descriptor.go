package movie

import "fmt"

const (
	CriticsLeastFavorite  = "Critics Least Favorite"
	AudienceLeastFavorite = "Audience Least Favorite"
	MostSuccessful        = "Most Successful"
	AudienceFavorite      = "Audience Favorite"
	CriticsFavorite       = "Critics Favorite"

	MysteryActor = "Mystery Actor"
)

// DefaultDescriptors is the row order used when the caller does not reorder categories
var DefaultDescriptors = []string{
	CriticsLeastFavorite,
	AudienceLeastFavorite,
	MostSuccessful,
	AudienceFavorite,
	CriticsFavorite,
}

var selectors = map[string]func(*Actor) *Movie{
	CriticsLeastFavorite:  (*Actor).WorstTomatometer,
	AudienceLeastFavorite: (*Actor).WorstPopcornmeter,
	MostSuccessful:        (*Actor).MostSuccessful,
	AudienceFavorite:      (*Actor).BestPopcornmeter,
	CriticsFavorite:       (*Actor).BestTomatometer,
}

// Pair is a movie together with the superlative it was picked for
type Pair struct {
	Movie      *Movie
	Descriptor string
}

// Pick selects one movie per descriptor in the given order
func Pick(actor *Actor, descriptors []string) ([]Pair, error) {
	pairs := make([]Pair, 0, len(descriptors))
	for _, d := range descriptors {
		sel, ok := selectors[d]
		if !ok {
			return nil, fmt.Errorf("unknown category %q", d)
		}
		m := sel(actor)
		if m == nil {
			return nil, fmt.Errorf("%s: no movie qualifies for %q", actor.Name, d)
		}
		pairs = append(pairs, Pair{Movie: m, Descriptor: d})
	}
	return pairs, nil
}

// Level is a quiz score band shown at the end of the video
type Level struct {
	Label string
	Min   int
	Max   int
}

var Levels = []Level{
	{"MOVIE BUFF (1-3 Clues)", 1, 3},
	{"FILM FAN (4-6 Clues)", 4, 6},
	{"CASUAL VIEWER (7-9 Clues)", 7, 9},
	{"MOVIE NOVICE (10+ Clues)", 10, 11},
}

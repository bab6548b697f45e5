package director

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivlev/actor2video/internal/frame"
	"github.com/ivlev/actor2video/internal/motion"
	"github.com/ivlev/actor2video/internal/movie"
	"github.com/ivlev/actor2video/internal/timeline"
)

func testBuilder(t *testing.T) *frame.Builder {
	t.Helper()
	s, err := timeline.Build(20, 5, timeline.Options{
		TitlePhasePercentage:     0.30,
		ActorRevealDuration:      1,
		PosterFullscreenFraction: 0.3,
		ActorStallFraction:       0.1,
	})
	require.NoError(t, err)

	pairs := make([]movie.Pair, 5)
	for i := range pairs {
		pairs[i] = movie.Pair{
			Movie:      &movie.Movie{Title: string(rune('A' + i))},
			Descriptor: movie.DefaultDescriptors[i],
		}
	}
	b, err := frame.NewBuilder(s, frame.Rows(pairs), frame.DefaultLayout(1080, 1920))
	require.NoError(t, err)
	return b
}

func TestNewStoryboard(t *testing.T) {
	b := testBuilder(t)
	sb := NewStoryboard(b.Schedule(), 20, 30)

	assert.Equal(t, "1.0", sb.Version)
	assert.Equal(t, 600, sb.Frames)
	require.Len(t, sb.Shots, 11)

	first := sb.Shots[0]
	assert.Equal(t, "title_reveal", first.Kind)
	assert.Equal(t, 0, first.Index)
	assert.InDelta(t, 1.2, first.End, 1e-9)
	assert.Equal(t, 0, first.StartFrame)
	assert.Equal(t, 36, first.EndFrame)

	poster := sb.Shots[5]
	assert.Equal(t, "poster", poster.Kind)
	assert.InDelta(t, 6.0, poster.Start, 1e-9)
	assert.InDelta(t, 8.6, poster.End, 1e-9)
	assert.Equal(t, 180, poster.StartFrame)
	assert.Equal(t, 258, poster.EndFrame)

	last := sb.Shots[10]
	assert.Equal(t, "actor_reveal", last.Kind)
	assert.Equal(t, -1, last.Index)
	assert.Equal(t, 570, last.StartFrame)
	assert.Equal(t, 600, last.EndFrame)

	for i := 1; i < len(sb.Shots); i++ {
		assert.Equal(t, sb.Shots[i-1].EndFrame, sb.Shots[i].StartFrame, "shot %d", i)
		assert.Equal(t, i+1, sb.Shots[i].ID)
	}
}

func TestDirectorKeyframes(t *testing.T) {
	d := NewDirector(testBuilder(t))
	sb := d.Storyboard("Jane Doe", 20, 30)

	assert.Equal(t, "Jane Doe", sb.Actor)
	assert.Equal(t, movie.CriticsLeastFavorite+": A", sb.Shots[0].Label)
	assert.Empty(t, sb.Shots[0].Keyframes)

	poster := sb.Shots[5]
	assert.Equal(t, movie.CriticsLeastFavorite+": A", poster.Label)
	require.Len(t, poster.Keyframes, 3)
	full := motion.Rect{X: 0, Y: 0, W: 1080, H: 1920}
	assert.Equal(t, full, poster.Keyframes[0].Rect)
	assert.Equal(t, full, poster.Keyframes[1].Rect)
	assert.Equal(t, motion.Rect{X: 0, Y: 353, W: 180, H: 320}, poster.Keyframes[2].Rect)
	assert.Equal(t, "slot_0", poster.Keyframes[2].Focus)
	assert.InDelta(t, 6.78, poster.Keyframes[1].Time, 1e-9)

	actor := sb.Shots[10]
	require.Len(t, actor.Keyframes, 3)
	assert.Equal(t, motion.Rect{X: 340, Y: 760, W: 400, H: 400}, actor.Keyframes[0].Rect)
	assert.Equal(t, motion.Rect{X: 0, Y: 420, W: 1080, H: 1080}, actor.Keyframes[2].Rect)
	assert.InDelta(t, 20.0, actor.Keyframes[2].Time, 1e-9)
}

func TestStoryboardWriteRead(t *testing.T) {
	sb := NewDirector(testBuilder(t)).Storyboard("Jane Doe", 20, 30)

	path := filepath.Join(t.TempDir(), "boards", "board.yaml")
	require.NoError(t, WriteStoryboard(sb, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "w: 180")
	assert.Contains(t, string(data), "h: 320")

	got, err := ReadStoryboard(path)
	require.NoError(t, err)
	if diff := cmp.Diff(sb, got); diff != "" {
		t.Errorf("storyboard mismatch (-want +got):\n%s", diff)
	}
}

func TestStoryboardSchedule(t *testing.T) {
	b := testBuilder(t)
	sb := NewStoryboard(b.Schedule(), 20, 30)

	s, err := sb.Schedule(b.Schedule().Options())
	require.NoError(t, err)
	want := b.Schedule().Phases()
	got := s.Phases()
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].Kind, got[i].Kind)
		assert.Equal(t, want[i].Index, got[i].Index)
		assert.InDelta(t, want[i].Start, got[i].Start, 1e-12)
		assert.InDelta(t, want[i].End, got[i].End, 1e-12)
	}

	// Удлиняем первый постер за счет второго
	sb.Shots[5].End = 9.6
	sb.Shots[6].Start = 9.6
	s, err = sb.Schedule(b.Schedule().Options())
	require.NoError(t, err)
	p, ok := s.Find(timeline.Poster, 0)
	require.True(t, ok)
	assert.InDelta(t, 0.48, p.End, 1e-12)

	sb.Shots[6].Start = 9.9
	_, err = sb.Schedule(b.Schedule().Options())
	var cfgErr *timeline.ConfigurationError
	assert.ErrorAs(t, err, &cfgErr)

	sb.Duration = 0
	_, err = sb.Schedule(b.Schedule().Options())
	assert.Error(t, err)
}

func TestReadStoryboardErrors(t *testing.T) {
	_, err := ReadStoryboard(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestStoryboardPath(t *testing.T) {
	path := StoryboardPath("output", "Jane Doe")
	assert.Equal(t, "output", filepath.Dir(path))
	assert.True(t, strings.HasPrefix(filepath.Base(path), "Jane_Doe_"))
	assert.Equal(t, ".yaml", filepath.Ext(path))

	assert.True(t, strings.HasPrefix(filepath.Base(StoryboardPath("out", "")), "storyboard_"))
}

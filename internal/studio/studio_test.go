package studio

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/BerylCAtieno/content-studio/internal/models"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func newStudio() *Studio {
	return New(InitialState(t0), WithClock(fixedClock(t0.Add(time.Hour))))
}

func TestInitialState(t *testing.T) {
	st := InitialState(t0)
	assert.Equal(t, "Glow Beauty", st.Brand.Name)
	require.Len(t, st.Contents, 2)
	assert.Equal(t, "content-1", st.Contents[0].ID)
	assert.Equal(t, models.StatusDraft, st.Contents[1].Status)
}

func TestAddContent_PrependsAndFillsDefaults(t *testing.T) {
	s := newStudio()

	saved, err := s.AddContent(models.StoredContent{
		Platform:    models.PlatformTwitter,
		ContentType: models.ContentCaption,
		Text:        "Summer sale starts now",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, saved.ID)
	assert.Equal(t, "brand-1", saved.BrandID)
	assert.Equal(t, models.StatusDraft, saved.Status)
	assert.Equal(t, t0.Add(time.Hour), saved.CreatedAt)
	assert.NotNil(t, saved.Hashtags)

	list := s.Contents(Filter{})
	require.Len(t, list, 3)
	assert.Equal(t, saved.ID, list[0].ID)
}

func TestAddContent_Rejects(t *testing.T) {
	s := newStudio()

	_, err := s.AddContent(models.StoredContent{Platform: "myspace", ContentType: models.ContentCaption})
	assert.Error(t, err)

	_, err = s.AddContent(models.StoredContent{ID: "content-1", Platform: models.PlatformTikTok, ContentType: models.ContentCaption})
	assert.Error(t, err)
}

func TestUpdateContent(t *testing.T) {
	s := newStudio()
	at := t0.Add(48 * time.Hour)
	status := models.StatusScheduled

	updated, err := s.UpdateContent("content-2", models.ContentUpdate{Status: &status, ScheduledAt: &at})
	require.NoError(t, err)
	assert.Equal(t, models.StatusScheduled, updated.Status)
	require.NotNil(t, updated.ScheduledAt)
	assert.Equal(t, at, *updated.ScheduledAt)

	bad := models.ContentStatus("archived")
	_, err = s.UpdateContent("content-2", models.ContentUpdate{Status: &bad})
	assert.Error(t, err)

	got, err := s.Content("content-2")
	require.NoError(t, err)
	assert.Equal(t, models.StatusScheduled, got.Status)

	_, err = s.UpdateContent("missing", models.ContentUpdate{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteContent(t *testing.T) {
	s := newStudio()
	require.NoError(t, s.DeleteContent("content-1"))
	assert.ErrorIs(t, s.DeleteContent("content-1"), ErrNotFound)

	_, err := s.Content("content-1")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Len(t, s.Contents(Filter{}), 1)
}

func TestContentsFilterAndStats(t *testing.T) {
	s := newStudio()

	insta := s.Contents(Filter{Platform: models.PlatformInstagram})
	require.Len(t, insta, 1)
	assert.Equal(t, "content-1", insta[0].ID)

	assert.Len(t, s.Contents(Filter{Status: models.StatusPublished}), 0)

	want := map[models.Platform]int{
		models.PlatformInstagram: 1,
		models.PlatformTikTok:    1,
		models.PlatformLinkedIn:  0,
		models.PlatformTwitter:   0,
	}
	if diff := cmp.Diff(want, s.Stats()); diff != "" {
		t.Errorf("stats mismatch (-want +got):\n%s", diff)
	}
}

func TestBrandEdits(t *testing.T) {
	s := newStudio()

	name := "Glow Lab"
	tone := models.TonePlayful
	b, err := s.UpdateBrand(models.BrandUpdate{Name: &name, Tone: &tone})
	require.NoError(t, err)
	assert.Equal(t, "Glow Lab", b.Name)
	assert.Equal(t, models.TonePlayful, b.Tone)
	assert.Equal(t, t0, b.CreatedAt)
	assert.Equal(t, t0.Add(time.Hour), b.UpdatedAt)

	badTone := models.Tone("grumpy")
	_, err = s.UpdateBrand(models.BrandUpdate{Tone: &badTone})
	assert.Error(t, err)
	assert.Equal(t, models.TonePlayful, s.Brand().Tone)

	replacement := models.DefaultBrand(time.Time{})
	replacement.ID = ""
	replacement.Industry = models.IndustryFashion
	b, err = s.SetBrand(replacement)
	require.NoError(t, err)
	assert.Equal(t, "brand-1", b.ID)
	assert.Equal(t, t0, b.CreatedAt)
	assert.Equal(t, models.IndustryFashion, s.Brand().Industry)
}

func TestReturnedValuesAreCopies(t *testing.T) {
	s := newStudio()

	b := s.Brand()
	b.Keywords[0] = "mutated"
	assert.NotEqual(t, "mutated", s.Brand().Keywords[0])

	c, err := s.Content("content-1")
	require.NoError(t, err)
	c.Hashtags[0] = "mutated"
	again, _ := s.Content("content-1")
	assert.NotEqual(t, "mutated", again.Hashtags[0])
}

func TestConcurrentMutations(t *testing.T) {
	s := New(State{Brand: models.DefaultBrand(t0)})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.AddContent(models.StoredContent{Platform: models.PlatformLinkedIn, ContentType: models.ContentFullPost})
			assert.NoError(t, err)
			_ = s.Stats()
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, s.Stats()[models.PlatformLinkedIn])
}

func TestSnapshotRoundTripThroughFile(t *testing.T) {
	snap := FileSnapshotter{Path: filepath.Join(t.TempDir(), "nested", "studio.json")}

	s, err := Open(snap, InitialState(t0))
	require.NoError(t, err)
	require.NoError(t, s.DeleteContent("content-2"))
	require.NoError(t, s.Save(snap))

	reopened, err := Open(snap, State{})
	require.NoError(t, err)
	if diff := cmp.Diff(s.Snapshot(), reopened.Snapshot()); diff != "" {
		t.Errorf("snapshot mismatch (-saved +loaded):\n%s", diff)
	}

	_, err = os.Stat(snap.Path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestOpen_CorruptSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "studio.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := Open(FileSnapshotter{Path: path}, InitialState(t0))
	assert.Error(t, err)
}

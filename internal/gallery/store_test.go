package gallery

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/icecube7035-art/ADAI/internal/domain"
)

func ad(id string, kind domain.AdKind) domain.Ad {
	return domain.Ad{ID: id, Kind: kind, Platform: domain.PlatformInstagram, Content: "c-" + id}
}

func TestPrependPutsNewestCampaignFirst(t *testing.T) {
	store := NewStore()

	store.Prepend([]domain.Ad{ad("text-1-0", domain.AdKindText), ad("img-1", domain.AdKindImage)})
	store.Prepend([]domain.Ad{ad("text-2-0", domain.AdKindText), ad("vid-2", domain.AdKindVideo)})

	got := store.List()
	require.Len(t, got, 4)
	ids := []string{got[0].ID, got[1].ID, got[2].ID, got[3].ID}
	assert.Equal(t, []string{"text-2-0", "vid-2", "text-1-0", "img-1"}, ids)
}

func TestPrependEmptyBatchIsNoop(t *testing.T) {
	store := NewStore()
	store.Prepend([]domain.Ad{ad("img-1", domain.AdKindImage)})
	store.Prepend(nil)
	assert.Equal(t, 1, store.Len())
}

func TestReplaceContentSwapsInPlace(t *testing.T) {
	store := NewStore()
	store.Prepend([]domain.Ad{
		ad("text-1-0", domain.AdKindText),
		ad("img-1", domain.AdKindImage),
		ad("vid-1", domain.AdKindVideo),
	})

	ok := store.ReplaceContent("img-1", "data:image/png;base64,cmV2aXNlZA==")
	require.True(t, ok)

	got := store.List()
	assert.Equal(t, "img-1", got[1].ID, "position must not change")
	assert.Equal(t, "data:image/png;base64,cmV2aXNlZA==", got[1].Content)
	assert.Equal(t, "c-text-1-0", got[0].Content, "siblings must be untouched")
	assert.Equal(t, "c-vid-1", got[2].Content)
}

func TestReplaceContentUnknownIDIsSilentNoop(t *testing.T) {
	store := NewStore()
	store.Prepend([]domain.Ad{ad("img-1", domain.AdKindImage)})

	ok := store.ReplaceContent("img-404", "whatever")
	assert.False(t, ok)
	got, found := store.Get("img-1")
	require.True(t, found)
	assert.Equal(t, "c-img-1", got.Content)
}

func TestGetUnknownID(t *testing.T) {
	store := NewStore()
	_, found := store.Get("missing")
	assert.False(t, found)
}

func TestListReturnsCopy(t *testing.T) {
	store := NewStore()
	store.Prepend([]domain.Ad{ad("img-1", domain.AdKindImage)})

	got := store.List()
	got[0].Content = "mutated"

	fresh, _ := store.Get("img-1")
	assert.Equal(t, "c-img-1", fresh.Content)
}

func TestConcurrentPrependAndList(t *testing.T) {
	store := NewStore()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			store.Prepend([]domain.Ad{ad(fmt.Sprintf("img-%d", i), domain.AdKindImage)})
		}(i)
		go func() {
			defer wg.Done()
			_ = store.List()
		}()
	}
	wg.Wait()
	assert.Equal(t, 20, store.Len())
}

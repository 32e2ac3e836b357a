package words

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/scythe504/imposter-backend/internal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSource struct {
	mock.Mock
}

func (m *MockSource) LoadWords(ctx context.Context) ([]internal.WordEntry, error) {
	args := m.Called(ctx)
	entries, _ := args.Get(0).([]internal.WordEntry)
	return entries, args.Error(1)
}

func TestDefault_HasSixCategories(t *testing.T) {
	b := Default()
	assert.Equal(t, 90, b.Len())
	assert.Equal(t, []string{"Animals", "Food", "Movies", "Occupations", "Places", "Sports"}, b.Categories())
}

func TestAll_TagsCategoryAndCopies(t *testing.T) {
	b := Default()
	all := b.All()
	require.Len(t, all, b.Len())
	for _, e := range all {
		assert.NotEmpty(t, e.Word)
		assert.NotEmpty(t, e.Category)
		assert.Empty(t, e.SubmittedBy)
		assert.Empty(t, e.SubmittedByName)
	}

	all[0].Word = "mutated"
	assert.NotEqual(t, "mutated", b.All()[0].Word)
}

func TestRandom_ReachesEveryWord(t *testing.T) {
	b, err := New([]internal.WordEntry{
		{Word: "Cat", Category: "Animals"},
		{Word: "Dog", Category: "Animals"},
		{Word: "Pizza", Category: "Food"},
		{Word: "Taco", Category: "Food"},
	})
	require.NoError(t, err)

	counts := map[string]int{}
	for i := 0; i < 4000; i++ {
		word, category := b.Random()
		counts[word+"/"+category]++
	}

	require.Len(t, counts, 4)
	for key, n := range counts {
		assert.Greater(t, n, 700, "word %s drawn too rarely", key)
		assert.Less(t, n, 1300, "word %s drawn too often", key)
	}
}

func TestNew_DropsBlanksAndDuplicates(t *testing.T) {
	b, err := New([]internal.WordEntry{
		{Word: " Cat ", Category: "Animals"},
		{Word: "cat", Category: "animals"},
		{Word: "", Category: "Animals"},
		{Word: "Cat", Category: "Movies"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, b.Len())
	assert.Equal(t, "Cat", b.All()[0].Word)
}

func TestNew_EmptyCatalog(t *testing.T) {
	_, err := New(nil)
	assert.ErrorIs(t, err, ErrEmptyCatalog)
}

func TestFromCSVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.csv")
	require.NoError(t, os.WriteFile(path, []byte("word,category\nRocket,Space\nComet,Space\nbroken\n"), 0o600))

	b, err := FromCSVFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, b.Len())
	assert.Equal(t, []string{"Space"}, b.Categories())

	_, err = FromCSVFile(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}

func TestLoad_UsesSource(t *testing.T) {
	ctx := context.Background()
	src := &MockSource{}
	src.On("LoadWords", ctx).Return([]internal.WordEntry{{Word: "Nebula", Category: "Space"}}, nil)

	b, err := Load(ctx, src)
	require.NoError(t, err)
	assert.Equal(t, 1, b.Len())
	word, category := b.Random()
	assert.Equal(t, "Nebula", word)
	assert.Equal(t, "Space", category)
	src.AssertExpectations(t)
}

func TestLoad_EmptySourceFallsBackToDefault(t *testing.T) {
	ctx := context.Background()
	src := &MockSource{}
	src.On("LoadWords", ctx).Return([]internal.WordEntry{}, nil)

	b, err := Load(ctx, src)
	require.NoError(t, err)
	assert.Equal(t, Default().Len(), b.Len())
}

func TestLoad_SourceError(t *testing.T) {
	ctx := context.Background()
	src := &MockSource{}
	src.On("LoadWords", ctx).Return(nil, errors.New("connection refused"))

	_, err := Load(ctx, src)
	assert.ErrorContains(t, err, "connection refused")
}

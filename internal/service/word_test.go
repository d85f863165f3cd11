package service

import (
	"errors"
	"slices"
	"testing"

	"dictioquiz/internal/domain"
	"dictioquiz/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newLoadedStore(t *testing.T, repo *testutil.MockWordRepository, list domain.WordList) *WordStore {
	t.Helper()
	repo.On("Load").Return(list, nil).Once()
	store := NewWordStore(repo, testutil.NewTestLogger())
	require.NoError(t, store.Load())
	return store
}

func TestWordStore_Load(t *testing.T) {
	tests := []struct {
		name          string
		mockList      domain.WordList
		mockError     error
		expected      domain.WordList
		expectedError bool
	}{
		{
			name:     "loads persisted list",
			mockList: testutil.NewTestWordList(),
			expected: testutil.NewTestWordList(),
		},
		{
			name:     "empty document",
			mockList: domain.WordList{},
			expected: domain.WordList{},
		},
		{
			name:          "malformed document keeps empty list",
			mockList:      nil,
			mockError:     &domain.StorageReadError{Source: "word_list.json", Err: errors.New("bad json")},
			expected:      domain.WordList{},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(testutil.MockWordRepository)
			if tt.mockList == nil {
				mockRepo.On("Load").Return(nil, tt.mockError)
			} else {
				mockRepo.On("Load").Return(tt.mockList, tt.mockError)
			}

			store := NewWordStore(mockRepo, testutil.NewTestLogger())
			err := store.Load()

			if tt.expectedError {
				var readErr *domain.StorageReadError
				assert.True(t, errors.As(err, &readErr))
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.expected, store.Entries())

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestWordStore_Add(t *testing.T) {
	tests := []struct {
		name          string
		word          string
		definition    string
		expectedSave  domain.WordList
		expectedError error
	}{
		{
			name:       "new word appended and saved",
			word:       "owl",
			definition: "a nocturnal bird",
			expectedSave: domain.WordList{
				{Word: "cat", Definition: "a small domesticated feline"},
				{Word: "dog", Definition: "a domesticated canine"},
				{Word: "owl", Definition: "a nocturnal bird"},
			},
		},
		{
			name:       "input is trimmed",
			word:       "  owl ",
			definition: "\ta nocturnal bird\n",
			expectedSave: domain.WordList{
				{Word: "cat", Definition: "a small domesticated feline"},
				{Word: "dog", Definition: "a domesticated canine"},
				{Word: "owl", Definition: "a nocturnal bird"},
			},
		},
		{
			name:          "duplicate word",
			word:          "cat",
			definition:    "x",
			expectedError: domain.ErrDuplicateWord,
		},
		{
			name:          "empty word",
			word:          "   ",
			definition:    "x",
			expectedError: domain.ErrEmptyField,
		},
		{
			name:          "empty definition",
			word:          "owl",
			definition:    "",
			expectedError: domain.ErrEmptyField,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(testutil.MockWordRepository)
			store := newLoadedStore(t, mockRepo, testutil.NewTestWordList())

			if tt.expectedSave != nil {
				mockRepo.On("Save", tt.expectedSave).Return(nil)
			}

			err := store.Add(tt.word, tt.definition)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Equal(t, testutil.NewTestWordList(), store.Entries())
				mockRepo.AssertNotCalled(t, "Save", mock.Anything)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedSave, store.Entries())
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestWordStore_Add_SaveFailureKeepsMemory(t *testing.T) {
	mockRepo := new(testutil.MockWordRepository)
	store := newLoadedStore(t, mockRepo, domain.WordList{})

	writeErr := &domain.StorageWriteError{Source: "word_list.json", Err: errors.New("permission denied")}
	mockRepo.On("Save", mock.Anything).Return(writeErr)

	err := store.Add("owl", "a nocturnal bird")

	var target *domain.StorageWriteError
	assert.True(t, errors.As(err, &target))
	assert.Equal(t, 1, store.Len())
	assert.True(t, store.Entries().Contains("owl"))
}

func TestWordStore_Remove(t *testing.T) {
	tests := []struct {
		name            string
		word            string
		expectedList    domain.WordList
		expectedRemoved int
		expectSave      bool
	}{
		{
			name:            "existing word",
			word:            "cat",
			expectedList:    domain.WordList{{Word: "dog", Definition: "a domesticated canine"}},
			expectedRemoved: 1,
			expectSave:      true,
		},
		{
			name:            "absent word is a no-op",
			word:            "owl",
			expectedList:    testutil.NewTestWordList(),
			expectedRemoved: 0,
			expectSave:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(testutil.MockWordRepository)
			store := newLoadedStore(t, mockRepo, testutil.NewTestWordList())

			if tt.expectSave {
				mockRepo.On("Save", tt.expectedList).Return(nil)
			}

			removed, err := store.Remove(tt.word)

			assert.NoError(t, err)
			assert.Equal(t, tt.expectedRemoved, removed)
			assert.Equal(t, tt.expectedList, store.Entries())
			if !tt.expectSave {
				mockRepo.AssertNotCalled(t, "Save", mock.Anything)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestWordStore_Remove_SaveError(t *testing.T) {
	mockRepo := new(testutil.MockWordRepository)
	store := newLoadedStore(t, mockRepo, testutil.NewTestWordList())

	mockRepo.On("Save", mock.Anything).Return(&domain.StorageWriteError{Source: "x", Err: errors.New("disk full")})

	removed, err := store.Remove("dog")

	assert.Error(t, err)
	assert.Equal(t, 1, removed)
	assert.False(t, store.Entries().Contains("dog"))
}

func TestWordStore_Search(t *testing.T) {
	mockRepo := new(testutil.MockWordRepository)
	store := newLoadedStore(t, mockRepo, testutil.NewTestWordList())

	all := slices.Collect(store.Search(""))
	assert.Equal(t, []domain.Entry(testutil.NewTestWordList()), all)

	cats := slices.Collect(store.Search("CAT"))
	assert.Equal(t, []domain.Entry{testutil.NewTestEntry("cat", "a small domesticated feline")}, cats)

	canine := slices.Collect(store.Search("canine"))
	assert.Len(t, canine, 1)
	assert.Equal(t, "dog", canine[0].Word)
}

func TestWordStore_Entries_IsSnapshot(t *testing.T) {
	mockRepo := new(testutil.MockWordRepository)
	store := newLoadedStore(t, mockRepo, testutil.NewTestWordList())

	entries := store.Entries()
	entries[0].Word = "changed"

	assert.Equal(t, "cat", store.Entries()[0].Word)
}

func TestWordStore_Scenario(t *testing.T) {
	repo := &testutil.MemoryWordRepository{List: testutil.NewTestWordList()}
	store := NewWordStore(repo, testutil.NewTestLogger())
	require.NoError(t, store.Load())

	assert.ErrorIs(t, store.Add("cat", "x"), domain.ErrDuplicateWord)
	assert.Equal(t, 0, repo.Saves)

	removed, err := store.Remove("cat")
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.Equal(t, domain.WordList{{Word: "dog", Definition: "a domesticated canine"}}, repo.List)

	require.NoError(t, store.Add("cat", "a small domesticated feline"))
	assert.Equal(t, 2, repo.Saves)
	assert.Equal(t, "cat", repo.List[1].Word)
}

package rhymer

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

const (
	testDictionary = "testdata/cmudict.txt"
	testPhones     = "testdata/phones.txt"
)

func loadTestRhymer(t *testing.T, opts ...Option) *Rhymer {
	t.Helper()
	r, err := Load(testDictionary, testPhones, opts...)
	require.NoError(t, err)
	return r
}

func TestLoad(t *testing.T) {
	r := loadTestRhymer(t)
	assert.Equal(t, 12, r.Len())
	assert.True(t, r.InDictionary("cat"))
	assert.True(t, r.InDictionary("café"))
	assert.False(t, r.InDictionary(";;;"))
	assert.Equal(t, 12, r.StartTrie().Size())
	assert.Equal(t, 12, r.EndTrie().Size())
	// SHH has no vowel
	assert.Equal(t, 11, r.StartRhymeTrie().Size())
	assert.Equal(t, 11, r.EndRhymeTrie().Size())
	assert.Equal(t, r.StartTrie().NodeCount()+r.EndTrie().NodeCount()+
		r.StartRhymeTrie().NodeCount()+r.EndRhymeTrie().NodeCount(), r.TrieSize())

	t.Run("Missing file", func(t *testing.T) {
		_, err := Load("testdata/missing.txt", testPhones)
		assert.Error(t, err)
	})
}

func TestTries(t *testing.T) {
	r := loadTestRhymer(t)

	words, err := r.EndTrie().Lookup(seq("T AE1 K"))
	require.NoError(t, err)
	assert.Equal(t, []string{"CAT"}, words)

	words, err = r.StartRhymeTrie().Lookup(seq("K AE1"))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"CAT", "CATS"}, words)

	words, err = r.EndRhymeTrie().Lookup(seq("AE1 T"))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"AT", "BAT", "CAT", "HAT"}, words)

	assert.False(t, r.StartRhymeTrie().Contains(seq("SH")))
}

func TestNewMalformed(t *testing.T) {
	phones := "AE vowel\nT stop\n"

	t.Run("Word without phonemes", func(t *testing.T) {
		_, err := New(strings.NewReader("CAT K AE1 T\nDOG\n"), strings.NewReader(phones))
		assert.ErrorIs(t, err, ErrMalformedInput)
		assert.Contains(t, err.Error(), "line 2")
	})

	t.Run("Phone line with three fields", func(t *testing.T) {
		_, err := New(strings.NewReader("AT AE1 T\n"), strings.NewReader("AE vowel extra\n"))
		assert.ErrorIs(t, err, ErrMalformedInput)
	})

	t.Run("Line longer than the scanner buffer", func(t *testing.T) {
		long := "CAT " + strings.Repeat("A", 1<<20+10) + "\n"
		_, err := New(strings.NewReader(long), strings.NewReader(phones))
		assert.ErrorIs(t, err, ErrMalformedInput)
		assert.Contains(t, err.Error(), "dictionary line 1")

		_, err = New(strings.NewReader("AT AE1 T\n"), strings.NewReader(long))
		assert.ErrorIs(t, err, ErrMalformedInput)
		assert.Contains(t, err.Error(), "phones line 1")
	})

	t.Run("Blank lines and custom comments", func(t *testing.T) {
		r, err := New(strings.NewReader("# comment\n\nAT AE1 T\n"), strings.NewReader("\n"+phones),
			WithCommentPrefix("#"))
		require.NoError(t, err)
		assert.Equal(t, 1, r.Len())
	})
}

func TestIsVowel(t *testing.T) {
	r := loadTestRhymer(t)
	assert.True(t, r.IsVowel("AE1"))
	assert.True(t, r.IsVowel("AE"))
	assert.False(t, r.IsVowel("T"))
	assert.True(t, r.IsConsonant("T"))
	assert.False(t, r.IsConsonant("OW2"))
}

func TestRhymes(t *testing.T) {
	r := loadTestRhymer(t)

	t.Run("Stress matched", func(t *testing.T) {
		rhymes, err := r.Rhymes("cat", true)
		require.NoError(t, err)
		assert.Contains(t, rhymes, "BAT")
		assert.NotContains(t, rhymes, "BAIT")
		assert.NotContains(t, rhymes, "CAT")
		assert.Equal(t, []string{"AT", "BAT", "CATS", "HAT"}, rhymes)
	})

	t.Run("Stress ignored", func(t *testing.T) {
		rhymes, err := r.Rhymes("CAT", false)
		require.NoError(t, err)
		assert.Equal(t, []string{"AT", "BAT", "CATS", "HAT"}, rhymes)
	})

	t.Run("Tail tokens compared with their stress", func(t *testing.T) {
		// COMBAT ends in AE0 T, which is not the AE1 T tail of CAT
		for _, stress := range []bool{true, false} {
			rhymes, err := r.Rhymes("CAT", stress)
			require.NoError(t, err)
			assert.NotContains(t, rhymes, "COMBAT")
		}
	})

	t.Run("Unstressed query", func(t *testing.T) {
		rhymes, err := r.Rhymes("COMBAT", true)
		require.NoError(t, err)
		assert.Empty(t, rhymes)
		rhymes, err = r.Rhymes("COMBAT", false)
		require.NoError(t, err)
		assert.Empty(t, rhymes)
	})

	t.Run("Longer keys match the query tail", func(t *testing.T) {
		rhymes, err := r.Rhymes("CATS", true)
		require.NoError(t, err)
		assert.Empty(t, rhymes)
	})

	t.Run("Alternate pronunciations", func(t *testing.T) {
		rhymes, err := r.Rhymes("tomato", true)
		require.NoError(t, err)
		assert.Equal(t, []string{"TOMATO(1)"}, rhymes)
	})

	t.Run("No vowel", func(t *testing.T) {
		rhymes, err := r.Rhymes("SHH", true)
		require.NoError(t, err)
		assert.Empty(t, rhymes)
	})

	t.Run("Unknown word", func(t *testing.T) {
		_, err := r.Rhymes("ZEBRA", true)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Never contains the query", func(t *testing.T) {
		for _, w := range []string{"AT", "BAIT", "BAT", "CAT", "HAT", "HATE", "TOMATO"} {
			for _, stress := range []bool{true, false} {
				rhymes, err := r.Rhymes(w, stress)
				require.NoError(t, err)
				assert.NotContains(t, rhymes, w)
			}
		}
	})
}

func TestRhymesStressAlignment(t *testing.T) {
	phones := "AE vowel\nEY vowel\nT stop\nS fricative\nK stop\n"
	// later lines replace the dictionary entry while both stay in the tries,
	// so KATS and KAT sit under AE1 keys with differently stressed entries
	dict := strings.Join([]string{
		"CAT K AE1 T",
		"CATS K AE1 T S",
		"KATS K AE1 T S",
		"KATS K AE2 T S",
		"KAT K AE1 T",
		"KAT K AE1 T S",
		"AT AE0 T",
	}, "\n")
	r, err := New(strings.NewReader(dict), strings.NewReader(phones))
	require.NoError(t, err)

	strict, err := r.Rhymes("CAT", true)
	require.NoError(t, err)
	assert.Equal(t, []string{"CATS", "KAT"}, strict)

	loose, err := r.Rhymes("CAT", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"CATS", "KAT", "KATS"}, loose)
}

func TestAlliterations(t *testing.T) {
	r := loadTestRhymer(t)
	words, err := r.Alliterations("cat")
	require.NoError(t, err)
	assert.Equal(t, []string{"CATS"}, words)

	words, err = r.Alliterations("SHH")
	require.NoError(t, err)
	assert.Empty(t, words)

	_, err = r.Alliterations("ZEBRA")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDictionaryAccessors(t *testing.T) {
	r := loadTestRhymer(t)
	assert.Equal(t, seq("K AE1 T"), r.Pronunciation("Cat"))
	assert.Nil(t, r.Pronunciation("ZEBRA"))
	assert.Equal(t, []string{"TOMATO(1)"}, r.Alternates("tomato"))
	assert.Empty(t, r.Alternates("CAT"))
	assert.Empty(t, r.Alternates("ZEBRA"))
	assert.False(t, r.InDictionary("ZEBRA"))

	p := r.Pronunciation("CAT")
	p[0] = "G"
	assert.Equal(t, seq("K AE1 T"), r.Pronunciation("CAT"))
}

func TestNormalisation(t *testing.T) {
	plain := loadTestRhymer(t)
	assert.False(t, plain.InDictionary("cafe"))

	r := loadTestRhymer(t, WithNormalisation())
	assert.True(t, r.InDictionary("cafe"))
	assert.True(t, r.InDictionary("Café"))
	assert.Equal(t, seq("K AE0 F EY1"), r.Pronunciation("CAFE"))
}

func TestCanonical(t *testing.T) {
	plain := loadTestRhymer(t)
	assert.Equal(t, "CAFÉ", plain.Canonical("café"))
	assert.Equal(t, "CAT", plain.Canonical("cat"))

	r := loadTestRhymer(t, WithNormalisation())
	assert.Equal(t, "CAFE", r.Canonical("café"))
	assert.Equal(t, "CAFE", r.Canonical("Café"))
}

func TestConcurrentQueries(t *testing.T) {
	r := loadTestRhymer(t)
	want, err := r.Rhymes("CAT", true)
	require.NoError(t, err)
	keys := len(r.EndRhymeTrie().Keys())

	var wg sync.WaitGroup
	errs := make(chan error, 32)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				got, err := r.Rhymes("CAT", true)
				if err != nil {
					errs <- err
					return
				}
				if !assert.Equal(t, want, got) {
					return
				}
				if _, err := r.Alliterations("CAT"); err != nil {
					errs <- err
					return
				}
				assert.Len(t, r.EndRhymeTrie().Keys(), keys)
				if _, err := r.StartTrie().Lookup(seq("K AE1 T")); err != nil {
					errs <- err
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		assert.NoError(t, err)
	}
}

func TestLogging(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	loadTestRhymer(t, WithLogger(zap.New(core)))
	entries := logs.FilterMessage("rhymer loaded").All()
	require.Len(t, entries, 1)
	assert.EqualValues(t, 12, entries[0].ContextMap()["entries"])
}

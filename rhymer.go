package rhymer

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"go.uber.org/zap"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const vowelClass = "vowel"

// Rhymer indexes a pronunciation dictionary in four phoneme tries and answers
// rhyme queries over it. A built Rhymer is safe for concurrent queries as long
// as none of its tries is mutated.
type Rhymer struct {
	// dictionary maps an uppercased word to its pronunciation.
	dictionary map[string][]string
	// vowels holds vowel phonemes with stress digits stripped.
	vowels map[string]struct{}

	start      *Trie // full pronunciation, forward
	end        *Trie // full pronunciation, reversed
	startRhyme *Trie // start of pronunciation through the first vowel
	endRhyme   *Trie // last vowel through the end of pronunciation

	logger        *zap.Logger
	commentPrefix string
	normalised    bool
}

// New builds a Rhymer from a dictionary of "WORD PHONEME..." lines and a phone
// table of "PHONEME CLASS" lines. Both inputs are decoded as ISO-8859-1.
// Any malformed line fails the whole load with ErrMalformedInput.
func New(dictionary, phones io.Reader, opts ...Option) (*Rhymer, error) {
	r := &Rhymer{
		dictionary:    make(map[string][]string),
		vowels:        make(map[string]struct{}),
		start:         NewTrie(),
		end:           NewTrie(),
		startRhyme:    NewTrie(),
		endRhyme:      NewTrie(),
		logger:        zap.NewNop(),
		commentPrefix: DefaultCommentPrefix,
	}
	for _, opt := range opts {
		opt(r)
	}
	if err := r.loadPhones(phones); err != nil {
		return nil, err
	}
	if err := r.loadDictionary(dictionary); err != nil {
		return nil, err
	}
	r.logger.Info("rhymer loaded",
		zap.Int("entries", len(r.dictionary)),
		zap.Int("vowels", len(r.vowels)),
		zap.Int("start_nodes", r.start.NodeCount()),
		zap.Int("end_nodes", r.end.NodeCount()),
		zap.Int("start_rhyme_nodes", r.startRhyme.NodeCount()),
		zap.Int("end_rhyme_nodes", r.endRhyme.NodeCount()))
	return r, nil
}

func (r *Rhymer) loadPhones(phones io.Reader) error {
	scanner := latinScanner(phones)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 2 {
			return fmt.Errorf("%w: phones line %d: %q", ErrMalformedInput, lineNo, scanner.Text())
		}
		if fields[1] == vowelClass {
			r.vowels[StripStress(fields[0])] = struct{}{}
		}
	}
	if err := scanErr(scanner, "phones", lineNo); err != nil {
		return err
	}
	return nil
}

func (r *Rhymer) loadDictionary(dictionary io.Reader) error {
	scanner := latinScanner(dictionary)
	lineNo, comments := 0, 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.HasPrefix(line, r.commentPrefix) {
			comments++
			continue
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if len(fields) < 2 {
			return fmt.Errorf("%w: dictionary line %d: %q", ErrMalformedInput, lineNo, line)
		}
		r.index(r.Canonical(fields[0]), fields[1:])
	}
	if err := scanErr(scanner, "dictionary", lineNo); err != nil {
		return err
	}
	r.logger.Debug("dictionary scanned", zap.Int("lines", lineNo), zap.Int("comments", comments))
	return nil
}

// index records one dictionary entry in the dictionary and the four tries.
func (r *Rhymer) index(word string, pronunciation []string) {
	r.dictionary[word] = pronunciation
	r.start.Insert(pronunciation, word)
	r.end.Insert(Reverse(pronunciation), word)
	if first := r.firstVowel(pronunciation); first >= 0 {
		r.startRhyme.Insert(pronunciation[:first+1], word)
	}
	if last := r.lastVowel(pronunciation); last >= 0 {
		r.endRhyme.Insert(pronunciation[last:], word)
	}
}

// scanErr reports the scanner failure for input, classing an overlong line
// as malformed.
func scanErr(scanner *bufio.Scanner, input string, lineNo int) error {
	err := scanner.Err()
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bufio.ErrTooLong):
		return fmt.Errorf("%w: %s line %d: %v", ErrMalformedInput, input, lineNo+1, err)
	default:
		return fmt.Errorf("rhymer: reading %s: %w", input, err)
	}
}

func latinScanner(in io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(charmap.ISO8859_1.NewDecoder().Reader(in))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return scanner
}

// IsVowel reports whether phoneme, ignoring its stress digits, is a vowel.
func (r *Rhymer) IsVowel(phoneme string) bool {
	_, ok := r.vowels[StripStress(phoneme)]
	return ok
}

// IsConsonant reports whether phoneme is not a vowel.
func (r *Rhymer) IsConsonant(phoneme string) bool {
	return !r.IsVowel(phoneme)
}

func (r *Rhymer) firstVowel(pronunciation []string) int {
	for i, p := range pronunciation {
		if r.IsVowel(p) {
			return i
		}
	}
	return -1
}

func (r *Rhymer) lastVowel(pronunciation []string) int {
	for i := len(pronunciation) - 1; i >= 0; i-- {
		if r.IsVowel(pronunciation[i]) {
			return i
		}
	}
	return -1
}

// Rhymes returns the words whose rhyme tail matches that of word. A key matches
// when its first len(tail) tokens equal the tail exactly; with matchStress the
// candidate's token aligned by key length must also carry the query's last
// vowel stress. The result is sorted and never contains word itself.
func (r *Rhymer) Rhymes(word string, matchStress bool) ([]string, error) {
	word = r.Canonical(word)
	pronunciation, ok := r.dictionary[word]
	if !ok {
		return nil, fmt.Errorf("%w: word %q", ErrNotFound, word)
	}
	last := r.lastVowel(pronunciation)
	if last < 0 {
		return []string{}, nil
	}
	tail := pronunciation[last:]
	stress, _ := Stress(tail[0])

	matches := make(map[string]struct{})
	for _, e := range r.endRhyme.Keys() {
		if len(e.Sequence) < len(tail) || !sameTail(tail, e.Sequence[:len(tail)]) {
			continue
		}
		for _, w := range e.Words {
			if matchStress && !r.stressAt(w, len(e.Sequence), stress) {
				continue
			}
			matches[w] = struct{}{}
		}
	}
	delete(matches, word)
	return sortedSet(matches), nil
}

// stressAt reports whether the token of word aligned keyLen phonemes from the
// end of its pronunciation carries the given stress digits.
func (r *Rhymer) stressAt(word string, keyLen int, stress string) bool {
	pronunciation := r.dictionary[word]
	i := len(pronunciation) - keyLen
	if i < 0 || i >= len(pronunciation) {
		return false
	}
	s, _ := Stress(pronunciation[i])
	return s == stress
}

func sameTail(a, b []string) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Alliterations returns the words that share the pronunciation of word from
// its start through its first vowel, stress included.
func (r *Rhymer) Alliterations(word string) ([]string, error) {
	word = r.Canonical(word)
	pronunciation, ok := r.dictionary[word]
	if !ok {
		return nil, fmt.Errorf("%w: word %q", ErrNotFound, word)
	}
	first := r.firstVowel(pronunciation)
	if first < 0 {
		return []string{}, nil
	}
	matches := make(map[string]struct{})
	for _, w := range r.startRhyme.Get(pronunciation[:first+1], nil) {
		matches[w] = struct{}{}
	}
	delete(matches, word)
	return sortedSet(matches), nil
}

// Pronunciation returns the main pronunciation of word, or nil.
func (r *Rhymer) Pronunciation(word string) []string {
	pronunciation, ok := r.dictionary[r.Canonical(word)]
	if !ok {
		return nil
	}
	return append([]string(nil), pronunciation...)
}

// Alternates returns the dictionary keys WORD(1), WORD(2), ... holding
// alternate pronunciations of word, stopping at the first gap.
func (r *Rhymer) Alternates(word string) []string {
	word = r.Canonical(word)
	var alternates []string
	for n := 1; ; n++ {
		alternate := word + "(" + strconv.Itoa(n) + ")"
		if _, ok := r.dictionary[alternate]; !ok {
			return alternates
		}
		alternates = append(alternates, alternate)
	}
}

// InDictionary reports whether word has a pronunciation.
func (r *Rhymer) InDictionary(word string) bool {
	_, ok := r.dictionary[r.Canonical(word)]
	return ok
}

// Len returns the number of dictionary entries.
func (r *Rhymer) Len() int {
	return len(r.dictionary)
}

// TrieSize returns the total number of nodes in the four tries.
func (r *Rhymer) TrieSize() int {
	return r.start.NodeCount() + r.end.NodeCount() +
		r.startRhyme.NodeCount() + r.endRhyme.NodeCount()
}

// StartTrie returns the trie of full pronunciations in forward order.
func (r *Rhymer) StartTrie() *Trie { return r.start }

// EndTrie returns the trie of full pronunciations in reverse order.
func (r *Rhymer) EndTrie() *Trie { return r.end }

// StartRhymeTrie returns the trie of pronunciation prefixes through the first vowel.
func (r *Rhymer) StartRhymeTrie() *Trie { return r.startRhyme }

// EndRhymeTrie returns the trie of rhyme tails.
func (r *Rhymer) EndRhymeTrie() *Trie { return r.endRhyme }

// Canonical maps a word onto the dictionary key space: diacritics stripped
// when normalisation is on, then uppercased.
func (r *Rhymer) Canonical(word string) string {
	if r.normalised {
		transformer := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
		if normal, _, err := transform.String(transformer, word); err == nil {
			word = normal
		}
	}
	return strings.ToUpper(word)
}

func sortedSet(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for w := range set {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	rhymer "github.com/sarthakjha889/go-rhymer"
	"github.com/sarthakjha889/go-rhymer/graph"
)

type app struct {
	dictPath   string
	phonesPath string
	verbose    bool
	normalise  bool
	workers    int

	logger *zap.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}
	rootCmd := &cobra.Command{
		Use:   "rhymer",
		Short: "Query rhymes and phonetic paths over a pronunciation dictionary",
		Long: `Rhymer indexes a CMU style pronunciation dictionary in phoneme tries and
answers rhyme, alliteration and pronunciation queries. The path command
builds similarity graphs from the tries and finds the shortest chain of
one-edit word changes between two words.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(a.verbose)
			if err != nil {
				return err
			}
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.dictPath, "dict", "cmudict-0.7b", "Pronunciation dictionary file")
	flags.StringVar(&a.phonesPath, "phones", "cmudict-0.7b.phones", "Phoneme class file")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")
	flags.BoolVar(&a.normalise, "normalise", false, "Strip diacritics from words")

	rhymesCmd := &cobra.Command{
		Use:   "rhymes <word>",
		Short: "List words that rhyme with a word",
		Args:  cobra.ExactArgs(1),
		RunE:  a.runRhymes,
	}
	rhymesCmd.Flags().Bool("ignore-stress", false, "Do not require the last vowel stress to match")

	alliterationsCmd := &cobra.Command{
		Use:   "alliterations <word>",
		Short: "List words that share a word's onset through its first vowel",
		Args:  cobra.ExactArgs(1),
		RunE:  a.runAlliterations,
	}

	pronounceCmd := &cobra.Command{
		Use:   "pronounce <word>...",
		Short: "Print the pronunciations of words, alternates included",
		Args:  cobra.MinimumNArgs(1),
		RunE:  a.runPronounce,
	}

	pathCmd := &cobra.Command{
		Use:   "path <word1> <word2>",
		Short: "Find the shortest path between two words in the similarity graphs",
		Args:  cobra.ExactArgs(2),
		RunE:  a.runPath,
	}
	pathCmd.Flags().String("trie", "both", "Trie to build the graph from: start|end|both")
	pathCmd.Flags().IntVar(&a.workers, "workers", 0, "Goroutines comparing word pairs (default GOMAXPROCS)")

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Print dictionary and trie sizes",
		Args:  cobra.NoArgs,
		RunE:  a.runStats,
	}

	rootCmd.AddCommand(rhymesCmd, alliterationsCmd, pronounceCmd, pathCmd, statsCmd)
	return rootCmd
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}

func (a *app) load() (*rhymer.Rhymer, error) {
	opts := []rhymer.Option{rhymer.WithLogger(a.logger)}
	if a.normalise {
		opts = append(opts, rhymer.WithNormalisation())
	}
	r, err := rhymer.Load(a.dictPath, a.phonesPath, opts...)
	if err != nil {
		a.logger.Error("load failed", zap.String("dict", a.dictPath), zap.String("phones", a.phonesPath), zap.Error(err))
		return nil, err
	}
	return r, nil
}

func (a *app) runRhymes(cmd *cobra.Command, args []string) error {
	ignoreStress, _ := cmd.Flags().GetBool("ignore-stress")
	r, err := a.load()
	if err != nil {
		return err
	}
	rhymes, err := r.Rhymes(args[0], !ignoreStress)
	if err != nil {
		return err
	}
	printWords(cmd.OutOrStdout(), rhymes)
	return nil
}

func (a *app) runAlliterations(cmd *cobra.Command, args []string) error {
	r, err := a.load()
	if err != nil {
		return err
	}
	words, err := r.Alliterations(args[0])
	if err != nil {
		return err
	}
	printWords(cmd.OutOrStdout(), words)
	return nil
}

func (a *app) runPronounce(cmd *cobra.Command, args []string) error {
	r, err := a.load()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, word := range args {
		if !r.InDictionary(word) {
			fmt.Fprintf(out, "%s: not in dictionary\n", strings.ToUpper(word))
			continue
		}
		for _, key := range append([]string{word}, r.Alternates(word)...) {
			fmt.Fprintf(out, "%s: %s\n", strings.ToUpper(key), strings.Join(r.Pronunciation(key), " "))
		}
	}
	return nil
}

func (a *app) runPath(cmd *cobra.Command, args []string) error {
	which, _ := cmd.Flags().GetString("trie")
	r, err := a.load()
	if err != nil {
		return err
	}
	tries := map[string]*rhymer.Trie{"start": r.StartTrie(), "end": r.EndTrie()}
	var names []string
	switch which {
	case "start", "end":
		names = []string{which}
	case "both":
		names = []string{"start", "end"}
	default:
		return fmt.Errorf("unknown trie %q: want start, end or both", which)
	}

	word1, word2 := r.Canonical(args[0]), r.Canonical(args[1])
	out := cmd.OutOrStdout()
	for _, name := range names {
		g := a.similarityGraph(name, tries[name])
		path, err := graph.ShortestPath(g, word1, word2)
		switch {
		case errors.Is(err, rhymer.ErrNotFound), errors.Is(err, rhymer.ErrNoPath):
			fmt.Fprintf(out, "%s: %v\n", name, err)
			continue
		case err != nil:
			return err
		}
		steps := make([]string, len(path))
		for i, id := range path {
			steps[i] = fmt.Sprintf("%s %v", id, g.Node(id).Words)
		}
		fmt.Fprintf(out, "%s: %s\n", name, strings.Join(steps, " -> "))
	}
	return nil
}

// similarityGraph builds the graph of t stage by stage, logging its size
// after each one.
func (a *app) similarityGraph(name string, t *rhymer.Trie) *graph.Graph {
	g := graph.Build(t)
	a.logStage(name, "initial", g)
	graph.ConnectByEditDistance(g, graph.WithWorkers(a.workers))
	a.logStage(name, "connected", g)
	graph.PruneWordless(g)
	a.logStage(name, "pruned", g)
	return g
}

func (a *app) logStage(name, stage string, g *graph.Graph) {
	a.logger.Info("similarity graph",
		zap.String("trie", name),
		zap.String("stage", stage),
		zap.Int("nodes", g.NodeCount()),
		zap.Int("edges", g.EdgeCount()))
}

func (a *app) runStats(cmd *cobra.Command, args []string) error {
	r, err := a.load()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "entries: %d\n", r.Len())
	for _, row := range []struct {
		name string
		trie *rhymer.Trie
	}{
		{"start", r.StartTrie()},
		{"end", r.EndTrie()},
		{"start-rhyme", r.StartRhymeTrie()},
		{"end-rhyme", r.EndRhymeTrie()},
	} {
		fmt.Fprintf(out, "%s trie: %d nodes, %d words\n", row.name, row.trie.NodeCount(), row.trie.Size())
	}
	fmt.Fprintf(out, "total nodes: %d\n", r.TrieSize())
	return nil
}

func printWords(w io.Writer, words []string) {
	for _, word := range words {
		fmt.Fprintln(w, word)
	}
}

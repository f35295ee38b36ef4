package rhymer

import "go.uber.org/zap"

// DefaultCommentPrefix marks comment lines in CMU style dictionaries.
const DefaultCommentPrefix = ";;;"

// Option configures a Rhymer before its dictionary is loaded.
type Option func(*Rhymer)

// WithLogger sets the logger used to report load statistics.
// A nil logger is ignored.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Rhymer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithCommentPrefix sets the prefix of dictionary lines that are skipped.
// An empty prefix is ignored.
func WithCommentPrefix(prefix string) Option {
	return func(r *Rhymer) {
		if prefix != "" {
			r.commentPrefix = prefix
		}
	}
}

// WithNormalisation strips diacritics from query words before they are
// uppercased. For example, Café will find CAFE.
func WithNormalisation() Option {
	return func(r *Rhymer) { r.normalised = true }
}

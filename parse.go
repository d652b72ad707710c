package formula

// Builder parses expressions with a fixed classifier and node factory. A
// Builder is safe for concurrent use if its classifier and factory are.
type Builder[T any] struct {
	cl Classifier
	f  Factory[T]
}

// New creates a Builder.
func New[T any](cl Classifier, f Factory[T]) *Builder[T] {
	if cl == nil {
		panic("formula: nil Classifier")
	}
	if f == nil {
		panic("formula: nil Factory")
	}
	return &Builder[T]{cl: cl, f: f}
}

// Parse builds the tree for an infix expression. Error positions are indices
// into words.
func (b *Builder[T]) Parse(words []string) (T, error) {
	order, err := postfix(words, b.cl)
	if err != nil {
		var zero T
		return zero, err
	}
	return reduce(words, order, b.cl, b.f)
}

// Postfix reorders an infix expression into postfix order using the
// builder's classifier.
func (b *Builder[T]) Postfix(words []string) ([]string, error) {
	return Postfix(words, b.cl)
}

// Classifier returns the builder's classifier.
func (b *Builder[T]) Classifier() Classifier {
	return b.cl
}

// Parse is a shortcut to build the tree for an infix expression without
// creating a Builder.
func Parse[T any](words []string, cl Classifier, f Factory[T]) (T, error) {
	return New(cl, f).Parse(words)
}

package finder

// IFinder defines the interface for subset word finders
type IFinder interface {
	// FindAllWords returns every dictionary word spelled by a subset of input, grouped by length
	FindAllWords(input string) (Result, error)

	// Stats returns counters about the cache and the loaded dictionary
	Stats() map[string]int
}

var _ IFinder = (*Finder)(nil)

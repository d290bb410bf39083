package fix

// NormalizedFixer normalizes text before the wrapped Fixer sees it. The
// rules must have been loaded with the same normalization.
type NormalizedFixer struct {
	fixer     Fixer
	normalize func(string) string
}

// Normalized wraps fixer so input is normalized first. A nil normalize
// returns fixer as is.
func Normalized(fixer Fixer, normalize func(string) string) Fixer {
	if normalize == nil {
		return fixer
	}
	return &NormalizedFixer{fixer: fixer, normalize: normalize}
}

// Apply implements Fixer.
func (f *NormalizedFixer) Apply(text string) string {
	fixed, _ := f.Correct(text)
	return fixed
}

// Correct returns the corrected normalized text and whether a rule changed it.
func (f *NormalizedFixer) Correct(text string) (string, bool) {
	normalized := f.normalize(text)
	fixed := f.fixer.Apply(normalized)
	return fixed, fixed != normalized
}

// Correct applies fixer to text and reports whether a rule changed it.
// Changes made by normalization alone do not count.
func Correct(fixer Fixer, text string) (string, bool) {
	if c, ok := fixer.(interface{ Correct(string) (string, bool) }); ok {
		return c.Correct(text)
	}
	fixed := fixer.Apply(text)
	return fixed, fixed != text
}

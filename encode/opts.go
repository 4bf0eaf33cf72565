package encode

type EncodeOption func(*encState)

// EncodeComments controls emission of the inline /* ... */ labels.
// They are on by default; consuming editors expect them.
func EncodeComments(v bool) EncodeOption {
	return func(es *encState) { es.comments = v }
}

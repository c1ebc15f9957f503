package domain

// Person ("usuario") is the individual a protocol refers to — typically the
// subject of the paper document. Created lazily on first reference by name
// and never deleted; the name is the natural key, matched exactly with no
// case folding. Operator typos therefore create duplicate identities; this
// is a known data-quality limitation of the source system, kept on purpose.
type Person struct {
	ID           int64
	Name         string
	RecordNumber *string
}

// Recipient ("recebedor") is the individual who picked the document up.
// Same lazy-create, never-delete lifecycle as Person, in its own namespace.
type Recipient struct {
	ID   int64
	Name string
}

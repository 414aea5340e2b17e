package ast

// AnnotationValue is the value of an annotation: either a text value
// ("sp:rose") or a bare flag ("irregular").
type AnnotationValue struct {
	text string
	flag bool
}

// Flag returns the value stored for a bare annotation key.
func Flag() AnnotationValue {
	return AnnotationValue{flag: true}
}

// Text returns a text annotation value.
func Text(s string) AnnotationValue {
	return AnnotationValue{text: s}
}

// IsFlag reports whether the value is a bare flag.
func (v AnnotationValue) IsFlag() bool {
	return v.flag
}

// String returns the text value, or "true" for a flag.
func (v AnnotationValue) String() string {
	if v.flag {
		return "true"
	}
	return v.text
}

// Annotation is one key/value pair of an entry's annotation block.
type Annotation struct {
	Key   string
	Value AnnotationValue
}

// String renders the annotation as "key" for flags and "key:value" otherwise.
func (a Annotation) String() string {
	if a.Value.IsFlag() {
		return a.Key
	}
	return a.Key + ":" + a.Value.text
}

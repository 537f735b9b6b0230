package types

// Field is a single required input: its name and the primitive type the API
// declares for it (string, integer, number, boolean).
type Field struct {
	Name string
	Type string
}

// Descriptor is the resolved request shape for one endpoint path. A zero
// Descriptor (empty Method) means the endpoint is unknown or declares no
// operations.
type Descriptor struct {
	Path        string
	Method      string
	Fields      []Field
	ContentType string
	Headers     []Field
}

// HasBody reports whether the endpoint declares required body fields.
func (d Descriptor) HasBody() bool {
	return len(d.Fields) > 0
}

// Payload is an insertion-ordered set of field values collected for a request.
// Setting an existing key overwrites the value in place; order is preserved so
// form-encoded bodies serialize in collection order.
type Payload struct {
	keys   []string
	values map[string]string
}

// NewPayload returns an empty payload.
func NewPayload() *Payload {
	return &Payload{values: make(map[string]string)}
}

// Set stores a value, keeping the key's original position on overwrite.
func (p *Payload) Set(key, value string) {
	if _, ok := p.values[key]; !ok {
		p.keys = append(p.keys, key)
	}
	p.values[key] = value
}

// Get returns the value for key and whether it is present.
func (p *Payload) Get(key string) (string, bool) {
	v, ok := p.values[key]
	return v, ok
}

// Len returns the number of stored fields.
func (p *Payload) Len() int {
	return len(p.keys)
}

// Keys returns the field names in insertion order.
func (p *Payload) Keys() []string {
	out := make([]string, len(p.keys))
	copy(out, p.keys)
	return out
}

// Map returns the payload as a plain map for JSON bodies.
func (p *Payload) Map() map[string]string {
	out := make(map[string]string, len(p.keys))
	for k, v := range p.values {
		out[k] = v
	}
	return out
}

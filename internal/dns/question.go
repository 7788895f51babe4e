package dns

import "fmt"

// Question represents a DNS question section entry (RFC 1035 Section 4.1.2).
type Question struct {
	Name  string
	Type  uint16
	Class uint16
}

// Marshal serializes the question to DNS wire format.
func (q Question) Marshal() ([]byte, error) {
	w := NewWriter(maxNameWireLen + 4)
	if err := q.write(w); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

func (q Question) write(w *Writer) error {
	if err := WriteName(w, q.Name); err != nil {
		return err
	}
	if err := w.WriteUint16(q.Type); err != nil {
		return err
	}
	return w.WriteUint16(q.Class)
}

// ReadQuestion reads one question entry at the cursor.
func ReadQuestion(r *Reader) (Question, error) {
	name, err := ReadName(r)
	if err != nil {
		return Question{}, err
	}
	if r.Remaining() < 4 {
		return Question{}, fmt.Errorf("reading DNS question: %w", ErrTruncated)
	}
	qtype, _ := r.ReadUint16()
	qclass, _ := r.ReadUint16()
	return Question{Name: name, Type: qtype, Class: qclass}, nil
}

// Matches reports whether two questions ask the same thing (name compared
// case-insensitively).
func (q Question) Matches(o Question) bool {
	return q.Type == o.Type && q.Class == o.Class && EqualNames(q.Name, o.Name)
}

package dns

import "github.com/jroosing/hydrakey/internal/helpers"

// Packet represents a complete DNS message (RFC 1035 Section 4.1).
//
// DNS messages are composed of five sections:
//   - Header: Transaction ID, flags, section counts
//   - Questions: What is being asked (1+ questions per message)
//   - Answers: Resource records answering the question
//   - Authorities: Name servers authoritative for the domain
//   - Additionals: Extra records, including the EDNS OPT pseudo-record
type Packet struct {
	Header      Header
	Questions   []Question
	Answers     []Record
	Authorities []Record
	Additionals []Record
}

// Marshal serializes the packet to DNS wire format (big-endian).
// Section counts are taken from the slices, not from p.Header.
func (p Packet) Marshal() ([]byte, error) {
	h := Header{
		ID:      p.Header.ID,
		Flags:   p.Header.Flags,
		QDCount: helpers.ClampIntToUint16(len(p.Questions)),
		ANCount: helpers.ClampIntToUint16(len(p.Answers)),
		NSCount: helpers.ClampIntToUint16(len(p.Authorities)),
		ARCount: helpers.ClampIntToUint16(len(p.Additionals)),
	}

	w := NewWriter(MaxMessageSize)
	if err := h.write(w); err != nil {
		return nil, err
	}
	for _, q := range p.Questions {
		if err := q.write(w); err != nil {
			return nil, err
		}
	}
	for _, section := range [][]Record{p.Answers, p.Authorities, p.Additionals} {
		for _, rec := range section {
			if err := WriteRecord(w, rec); err != nil {
				return nil, err
			}
		}
	}
	return w.Bytes(), nil
}

// ParsePacket parses a complete DNS message.
func ParsePacket(msg []byte) (Packet, error) {
	r := NewReader(msg)
	h, err := ReadHeader(r)
	if err != nil {
		return Packet{}, err
	}

	p := Packet{Header: h}

	// Cap initial allocation to avoid DoS with large counts in header
	// but small actual packet size.
	p.Questions = make([]Question, 0, min(int(h.QDCount), MaxQuestions))
	for range h.QDCount {
		q, err := ReadQuestion(r)
		if err != nil {
			return Packet{}, err
		}
		p.Questions = append(p.Questions, q)
	}

	if p.Answers, err = readSection(r, h.ANCount); err != nil {
		return Packet{}, err
	}
	if p.Authorities, err = readSection(r, h.NSCount); err != nil {
		return Packet{}, err
	}
	if p.Additionals, err = readSection(r, h.ARCount); err != nil {
		return Packet{}, err
	}
	return p, nil
}

func readSection(r *Reader, count uint16) ([]Record, error) {
	out := make([]Record, 0, min(int(count), MaxRRPerSection))
	for range count {
		rec, err := ReadRecord(r)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

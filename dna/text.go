package dna

import "fmt"

// Enums travel as their upper-case names

func (s Structure) MarshalText() ([]byte, error) {
	if s >= structureCount {
		return nil, fmt.Errorf("invalid structure %d", s)
	}
	return []byte(s.String()), nil
}

func (s *Structure) UnmarshalText(b []byte) error {
	for i, name := range structureNames {
		if name == string(b) {
			*s = Structure(i)
			return nil
		}
	}
	return fmt.Errorf("unknown structure %q", b)
}

func (p Physics) MarshalText() ([]byte, error) {
	if p >= physicsCount {
		return nil, fmt.Errorf("invalid physics %d", p)
	}
	return []byte(p.String()), nil
}

func (p *Physics) UnmarshalText(b []byte) error {
	for i, name := range physicsNames {
		if name == string(b) {
			*p = Physics(i)
			return nil
		}
	}
	return fmt.Errorf("unknown physics %q", b)
}

func (m ScaleMode) MarshalText() ([]byte, error) {
	if m >= scaleCount {
		return nil, fmt.Errorf("invalid scale mode %d", m)
	}
	return []byte(m.String()), nil
}

func (m *ScaleMode) UnmarshalText(b []byte) error {
	for i, name := range scaleNames {
		if name == string(b) {
			*m = ScaleMode(i)
			return nil
		}
	}
	return fmt.Errorf("unknown scale mode %q", b)
}

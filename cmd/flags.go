package cmd

import (
	"fmt"
	"strings"

	"cxxtags/pkg/config"
	"cxxtags/pkg/tag"

	"github.com/spf13/pflag"
)

type kindChange struct {
	kind    tag.Kind
	enabled bool
}

// kindsValue collects --kinds arguments. Two spellings are accepted: a
// letter string such as "+lz-p" where each sign applies to the letters
// after it, and a comma list of names such as "local,-prototype".
type kindsValue struct {
	changes []kindChange
}

var _ pflag.Value = (*kindsValue)(nil)

func newKindsValue() *kindsValue {
	return &kindsValue{}
}

func (v *kindsValue) String() string {
	var b strings.Builder
	for _, c := range v.changes {
		if c.enabled {
			b.WriteByte('+')
		} else {
			b.WriteByte('-')
		}
		b.WriteByte(c.kind.Letter())
	}
	return b.String()
}

func (v *kindsValue) Type() string {
	return "kinds"
}

func (v *kindsValue) Set(s string) error {
	if s == "" {
		return nil
	}
	if strings.Contains(s, ",") || isWord(strings.TrimLeft(s, "+-")) {
		return v.setNames(s)
	}
	return v.setLetters(s)
}

func isWord(s string) bool {
	_, ok := tag.ParseKind(s)
	return ok && len(s) > 1
}

func (v *kindsValue) setLetters(s string) error {
	enabled := true
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '+':
			enabled = true
		case '-':
			enabled = false
		default:
			k, ok := tag.ParseKind(string(c))
			if !ok {
				return fmt.Errorf("unknown kind letter %q", c)
			}
			v.changes = append(v.changes, kindChange{k, enabled})
		}
	}
	return nil
}

func (v *kindsValue) setNames(s string) error {
	for _, name := range strings.Split(s, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		enabled := true
		switch name[0] {
		case '-':
			enabled = false
			name = name[1:]
		case '+':
			name = name[1:]
		}
		k, ok := tag.ParseKind(name)
		if !ok {
			return fmt.Errorf("unknown kind %q", name)
		}
		v.changes = append(v.changes, kindChange{k, enabled})
	}
	return nil
}

// apply records the changes in cfg, later changes winning
func (v *kindsValue) apply(cfg *config.Config) error {
	for _, c := range v.changes {
		if err := cfg.SetKind(c.kind.String(), c.enabled); err != nil {
			return err
		}
	}
	return nil
}

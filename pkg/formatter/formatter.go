// Package formatter writes tag records in the ctags, etags and JSON lines
// output formats.
package formatter

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"cxxtags/pkg/source"
	"cxxtags/pkg/tag"
)

// Format selects the output format
type Format int

const (
	FormatCtags Format = iota
	FormatEtags
	FormatJSON
)

func (f Format) String() string {
	switch f {
	case FormatEtags:
		return "etags"
	case FormatJSON:
		return "json"
	default:
		return "ctags"
	}
}

// ParseFormat resolves a format by name
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "ctags", "u-ctags":
		return FormatCtags, nil
	case "etags", "emacs":
		return FormatEtags, nil
	case "json":
		return FormatJSON, nil
	}
	return FormatCtags, fmt.Errorf("unknown output format %q", s)
}

// File is the output of one input file
type File struct {
	Path   string
	Source *source.Source // raw text for etags line prefixes; may be nil
	Tags   []*tag.Tag
}

// Options configures a Formatter
type Options struct {
	Format  Format
	Sort    bool // order ctags output by name
	Header  bool // emit the !_TAG_ pseudo tags in ctags output
	Fields  bool // emit extension fields in ctags output
	Program string
	Version string
}

// Formatter renders tag records
type Formatter struct {
	opts Options
}

// New creates a new formatter
func New(opts Options) *Formatter {
	if opts.Program == "" {
		opts.Program = "cxxtags"
	}
	return &Formatter{opts: opts}
}

// Write renders the records of files to w in the configured format.
func (f *Formatter) Write(w io.Writer, files []File) error {
	bw := bufio.NewWriter(w)
	var err error
	switch f.opts.Format {
	case FormatEtags:
		err = f.writeEtags(bw, files)
	case FormatJSON:
		err = f.writeJSON(bw, files)
	default:
		err = f.writeCtags(bw, files)
	}
	if err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write tags: %w", err)
	}
	return nil
}

func collect(files []File) []*tag.Tag {
	var all []*tag.Tag
	for _, file := range files {
		for _, t := range file.Tags {
			if t.Path == "" {
				t.Path = file.Path
			}
			all = append(all, t)
		}
	}
	return all
}

func (f *Formatter) writeCtags(w *bufio.Writer, files []File) error {
	tags := collect(files)
	if f.opts.Sort {
		tag.SortByName(tags)
	}

	if f.opts.Header {
		sorted := "0"
		if f.opts.Sort {
			sorted = "1"
		}
		fmt.Fprintf(w, "!_TAG_FILE_FORMAT\t2\t/extended format/\n")
		fmt.Fprintf(w, "!_TAG_FILE_SORTED\t%s\t/0=unsorted, 1=sorted/\n", sorted)
		fmt.Fprintf(w, "!_TAG_PROGRAM_NAME\t%s\t//\n", f.opts.Program)
		if f.opts.Version != "" {
			fmt.Fprintf(w, "!_TAG_PROGRAM_VERSION\t%s\t//\n", f.opts.Version)
		}
	}

	for _, t := range tags {
		if _, err := w.WriteString(f.CtagsLine(t)); err != nil {
			return fmt.Errorf("failed to write tags: %w", err)
		}
		w.WriteByte('\n')
	}
	return nil
}

// CtagsLine renders one record as a tags file line without terminator.
func (f *Formatter) CtagsLine(t *tag.Tag) string {
	var b strings.Builder
	b.WriteString(t.Name)
	b.WriteByte('\t')
	b.WriteString(t.Path)
	b.WriteByte('\t')
	b.WriteString(strconv.Itoa(t.Position.Line))
	b.WriteString(`;"`)
	b.WriteByte('\t')
	b.WriteByte(t.Kind.Letter())

	if !f.opts.Fields {
		return b.String()
	}
	for _, field := range Fields(t) {
		b.WriteByte('\t')
		b.WriteString(field.Name)
		b.WriteByte(':')
		b.WriteString(escapeField(field.Value))
	}
	return b.String()
}

// Field is one extension field of a record
type Field struct {
	Name  string
	Value string
}

// Fields returns the extension fields of t in output order. The scope
// field is named after the kind of the enclosing scope.
func Fields(t *tag.Tag) []Field {
	var fields []Field
	add := func(name, value string) {
		fields = append(fields, Field{Name: name, Value: value})
	}

	if t.Scope != "" {
		add(t.ScopeKind.String(), t.Scope)
	}
	if t.Access != tag.AccessUnknown {
		add("access", t.Access.String())
	}
	if t.FileScope {
		add("file", "")
	}
	if t.Signature != "" {
		add("signature", t.Signature)
	}
	if ref := t.TypeRef.String(); ref != "" {
		add("typeref", ref)
	}
	if t.Inheritance != "" {
		add("inherits", t.Inheritance)
	}
	if t.Template != "" {
		add("template", t.Template)
	}
	if t.Properties != 0 {
		add("properties", t.Properties.String())
	}
	if t.IsReference() {
		add("roles", t.Role.String())
	}
	if t.End > 0 {
		add("end", strconv.Itoa(t.End))
	}
	return fields
}

func escapeField(s string) string {
	if !strings.ContainsAny(s, "\\\t\n") {
		return s
	}
	r := strings.NewReplacer(`\`, `\\`, "\t", `\t`, "\n", `\n`)
	return r.Replace(s)
}

// writeEtags writes one section per file: a header with the byte size of
// the section followed by the entries.
func (f *Formatter) writeEtags(w *bufio.Writer, files []File) error {
	for _, file := range files {
		var section strings.Builder
		for _, t := range file.Tags {
			section.WriteString(etagsEntry(file, t))
		}
		if _, err := fmt.Fprintf(w, "\f\n%s,%d\n%s", file.Path, section.Len(), section.String()); err != nil {
			return fmt.Errorf("failed to write tags: %w", err)
		}
	}
	return nil
}

func etagsEntry(file File, t *tag.Tag) string {
	if t.Kind == tag.KindFile {
		return fmt.Sprintf("\x7f%s\x01%d,0\n", t.Name, t.Position.Line)
	}
	var line string
	if file.Source != nil {
		line = file.Source.LineText(t.Position.Offset)
	}
	return fmt.Sprintf("%s\x7f%s\x01%d,%d\n", line, t.Name, t.Position.Line, t.Position.Offset)
}

// jsonTag is the JSON lines rendering of a record
type jsonTag struct {
	Type       string `json:"_type"`
	Name       string `json:"name"`
	Path       string `json:"path"`
	Line       int    `json:"line"`
	Kind       string `json:"kind"`
	Scope      string `json:"scope,omitempty"`
	ScopeKind  string `json:"scopeKind,omitempty"`
	Access     string `json:"access,omitempty"`
	File       bool   `json:"file,omitempty"`
	Signature  string `json:"signature,omitempty"`
	TypeRef    string `json:"typeref,omitempty"`
	Inherits   string `json:"inherits,omitempty"`
	Template   string `json:"template,omitempty"`
	Properties string `json:"properties,omitempty"`
	Roles      string `json:"roles,omitempty"`
	End        int    `json:"end,omitempty"`
}

func (f *Formatter) writeJSON(w *bufio.Writer, files []File) error {
	tags := collect(files)
	if f.opts.Sort {
		tag.SortByName(tags)
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for _, t := range tags {
		if err := enc.Encode(toJSON(t)); err != nil {
			return fmt.Errorf("failed to encode tag %s: %w", t.Name, err)
		}
	}
	return nil
}

func toJSON(t *tag.Tag) jsonTag {
	j := jsonTag{
		Type:       "tag",
		Name:       t.Name,
		Path:       t.Path,
		Line:       t.Position.Line,
		Kind:       t.Kind.String(),
		Scope:      t.Scope,
		File:       t.FileScope,
		Signature:  t.Signature,
		TypeRef:    t.TypeRef.String(),
		Inherits:   t.Inheritance,
		Template:   t.Template,
		Properties: t.Properties.String(),
		End:        t.End,
	}
	if t.Scope != "" {
		j.ScopeKind = t.ScopeKind.String()
	}
	if t.Access != tag.AccessUnknown {
		j.Access = t.Access.String()
	}
	if t.IsReference() {
		j.Roles = t.Role.String()
	}
	return j
}

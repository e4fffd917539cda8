// Package ctags ties the recognizers together: it detects the language of
// each input, runs the matching recognizer into a record queue and collects
// the results for the formatters.
package ctags

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"cxxtags/pkg/config"
	"cxxtags/pkg/cpp"
	"cxxtags/pkg/formatter"
	"cxxtags/pkg/makefile"
	"cxxtags/pkg/parser"
	"cxxtags/pkg/source"
	"cxxtags/pkg/tag"
)

// Result holds the records of one input
type Result struct {
	Path     string
	Language config.Detection
	Source   *source.Source
	Tags     []*tag.Tag
	Parse    parser.Result // zero for Makefiles
}

// File converts the result for the formatters
func (r *Result) File() formatter.File {
	return formatter.File{Path: r.Path, Source: r.Source, Tags: r.Tags}
}

// Extractor runs the recognizers with one configuration
type Extractor struct {
	cfg    *config.Config
	macros *cpp.MacroTable
	opts   tag.Options
}

// New creates an extractor. The macro table of the configuration is built
// once and shared by every input.
func New(cfg *config.Config) (*Extractor, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	macros, err := cfg.MacroTable()
	if err != nil {
		return nil, fmt.Errorf("failed to build macro table: %w", err)
	}
	return &Extractor{cfg: cfg, macros: macros, opts: cfg.QueueOptions()}, nil
}

// Config returns the configuration of the extractor.
func (e *Extractor) Config() *config.Config {
	return e.cfg
}

// Supported reports whether path has a recognizer.
func (e *Extractor) Supported(path string) bool {
	return e.cfg.Detect(path).Language != config.LanguageNone
}

// File reads and recognizes the file at path.
func (e *Extractor) File(path string) (*Result, error) {
	detection := e.cfg.Detect(path)
	if detection.Language == config.LanguageNone {
		return nil, fmt.Errorf("unsupported language for %s", path)
	}

	src, err := source.Open(path)
	if err != nil {
		return nil, err
	}
	return e.extract(path, src, detection), nil
}

// Content recognizes in-memory content as if read from path.
func (e *Extractor) Content(path string, content []byte) (*Result, error) {
	detection := e.cfg.Detect(path)
	if detection.Language == config.LanguageNone {
		return nil, fmt.Errorf("unsupported language for %s", path)
	}
	return e.extract(path, source.New(path, content), detection), nil
}

func (e *Extractor) extract(path string, src *source.Source, detection config.Detection) *Result {
	q := tag.NewQueue(e.opts)
	res := &Result{Path: path, Language: detection, Source: src}

	if e.cfg.ExtraFileTags {
		if rec := q.Begin(tag.KindFile, path, tag.Position{Line: 1}); rec != nil {
			q.Commit(rec)
		}
	}

	switch detection.Language {
	case config.LanguageMake:
		makefile.Parse(src, q)
	default:
		lang := parser.LanguageC
		if detection.Language == config.LanguageCPlusPlus {
			lang = parser.LanguageCPlusPlus
		}
		res.Parse = parser.Parse(src, q, parser.Options{
			Language:         lang,
			Header:           detection.Header,
			Macros:           e.macros,
			ExamineIf0:       e.cfg.If0,
			ExpandFileMacros: e.cfg.ExpandMacros,
		})
	}

	res.Tags = q.Tags()
	for _, t := range res.Tags {
		t.Path = path
	}
	return res
}

// Collect expands directories among paths into the supported files below
// them, skipping excluded directories. Files named explicitly are kept
// even when their language is unknown so that File reports the problem.
func (e *Extractor) Collect(paths []string) ([]string, error) {
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("failed to access %s: %w", p, err)
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}

		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != p && e.cfg.IsExcluded(path) {
					return filepath.SkipDir
				}
				return nil
			}
			if e.Supported(path) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk %s: %w", p, err)
		}
	}
	return files, nil
}

// Run recognizes every file in paths, expanding directories. It stops at
// the first read error or when ctx is done.
func (e *Extractor) Run(ctx context.Context, paths []string) ([]*Result, error) {
	files, err := e.Collect(paths)
	if err != nil {
		return nil, err
	}

	results := make([]*Result, 0, len(files))
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		res, err := e.File(path)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

// Files converts results for the formatters
func Files(results []*Result) []formatter.File {
	files := make([]formatter.File, len(results))
	for i, r := range results {
		files[i] = r.File()
	}
	return files
}

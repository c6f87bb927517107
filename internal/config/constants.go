package config

// SourceFileExt is the extension of template files the expander processes.
const SourceFileExt = ".gocomp"

// SourceFileExtensions are all recognized template file extensions
var SourceFileExtensions = []string{".gocomp"}

// ConfigFileName is the per-project expander configuration file.
const ConfigFileName = "gocomp.yaml"

// Comprehension marker delimiters in template files
const (
	MarkerPrefix = "comp!["
	MarkerClose  = ']'
)

// Defaults for the emitted expression surface
const (
	RuntimeImportPath = "github.com/ShihHsuanChen/gocomp/pkg/seq"
	RuntimeAlias      = "seq"
	DefaultElemType   = "any"
)

// GeneratedHeaderFormat is stamped at the top of every expanded file; the
// argument is the template file name. The wording matches the convention
// go tooling recognizes for generated files.
const GeneratedHeaderFormat = "// Code generated by gocomp from %s. DO NOT EDIT."
